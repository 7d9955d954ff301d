package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/notekeeper/notesweb/pkg/routepath"
)

// Server serves the application shell over HTTP and bridges each tab's
// history to a server-side router over a WebSocket.
type Server struct {
	config   Config
	upgrader websocket.Upgrader
	handler  http.Handler
	logger   *slog.Logger

	mu         sync.Mutex
	sessions   map[*Session]struct{}
	httpServer *http.Server
	closing    bool
}

// New creates a Server from config.
func New(config Config) (*Server, error) {
	config = config.withDefaults()
	if err := config.validate(); err != nil {
		return nil, err
	}

	s := &Server{
		config:   config,
		logger:   config.Logger.With("component", "server"),
		sessions: make(map[*Session]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
	}
	s.handler = s.routes()
	return s, nil
}

// routes builds the HTTP routing tree.
func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(s.requestLogger)
	if s.config.Metrics != nil {
		r.Use(s.config.Metrics.HTTP)
	}

	r.Get("/healthz", s.handleHealth)
	if s.config.MetricsPath != "" && s.config.Gatherer != nil {
		r.Handle(s.config.MetricsPath, promhttp.HandlerFor(s.config.Gatherer, promhttp.HandlerOpts{}))
	}

	app := func(r chi.Router) {
		r.Get("/_nav/client.js", s.serveClient)
		r.Head("/_nav/client.js", s.serveClient)
		r.Get("/_nav/ws", s.HandleWebSocket)
		if s.config.Assets != nil {
			prefix := routepath.JoinBase(s.config.Base, "/assets")
			r.Handle("/assets/*", http.StripPrefix(prefix, s.config.Assets))
		}
		r.Get("/*", s.servePage)
		r.Head("/*", s.servePage)
	}

	base := s.config.Base
	if base == "/" {
		app(r)
		return r
	}
	r.Route(base, app)
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, routepath.JoinBase(base, "/"), http.StatusFound)
	})
	return r
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// Run starts the server and blocks until ctx is done, a shutdown signal
// arrives or the listener fails.
func (s *Server) Run(ctx context.Context) error {
	s.mu.Lock()
	s.httpServer = &http.Server{
		Addr:              s.config.Address,
		Handler:           s.handler,
		ReadHeaderTimeout: s.config.HandshakeTimeout,
	}
	srv := s.httpServer
	s.mu.Unlock()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", s.config.Address, "base", s.config.Base,
			"history", string(s.config.HistoryMode))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil

	case <-shutdown:
		s.logger.Info("shutting down...")
		return s.Shutdown(context.Background())

	case <-ctx.Done():
		s.logger.Info("shutting down...")
		return s.Shutdown(context.Background())
	}
}

// Shutdown closes all sessions and gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	s.mu.Lock()
	s.closing = true
	sessions := make([]*Session, 0, len(s.sessions))
	for sess := range s.sessions {
		sessions = append(sessions, sess)
	}
	srv := s.httpServer
	s.mu.Unlock()

	for _, sess := range sessions {
		sess.Close(websocket.CloseGoingAway, "server shutdown")
	}

	if srv != nil {
		if err := srv.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}

	s.logger.Info("server shutdown complete", "closed_sessions", len(sessions))
	return nil
}

// SessionCount returns the number of open sessions.
func (s *Server) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Config returns the effective configuration.
func (s *Server) Config() Config {
	return s.config
}

// Logger returns the server logger.
func (s *Server) Logger() *slog.Logger {
	return s.logger
}

func (s *Server) track(sess *Session) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closing {
		return false
	}
	s.sessions[sess] = struct{}{}
	if s.config.Metrics != nil {
		s.config.Metrics.RecordSessionOpen()
	}
	return true
}

func (s *Server) untrack(sess *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sess]; !ok {
		return
	}
	delete(s.sessions, sess)
	if s.config.Metrics != nil {
		s.config.Metrics.RecordSessionClose()
	}
}
