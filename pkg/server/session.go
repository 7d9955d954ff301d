package server

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/notekeeper/notesweb/pkg/history"
	"github.com/notekeeper/notesweb/pkg/protocol"
	"github.com/notekeeper/notesweb/pkg/router"
	"github.com/notekeeper/notesweb/pkg/routepath"
)

// Session bridges one browser tab to its own router.
//
// The tab reports link clicks and popstate events; the session resolves
// them, drives the tab's history through push, replace and go commands,
// and sends the rendered view after every committed navigation.
type Session struct {
	ID string

	server *Server
	conn   *websocket.Conn
	logger *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	writeMu sync.Mutex

	router *router.Router
	web    *history.Web // nil in memory mode

	done      chan struct{}
	closeOnce sync.Once
}

// generateSessionID generates a random session ID.
func generateSessionID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("crypto/rand failed: %v", err))
	}
	return hex.EncodeToString(b)
}

func newSession(ctx context.Context, s *Server, conn *websocket.Conn) *Session {
	id := generateSessionID()
	ctx, cancel := context.WithCancel(ctx)
	return &Session{
		ID:     id,
		server: s,
		conn:   conn,
		logger: s.logger.With("session_id", id),
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
}

// HandleWebSocket upgrades the request and runs a session until the tab
// disconnects.
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied with an HTTP error.
		s.logger.Warn("websocket upgrade failed", "error", err)
		s.recordWebSocketError("upgrade")
		return
	}

	sess := newSession(r.Context(), s, conn)
	if !s.track(sess) {
		sess.Close(websocket.CloseGoingAway, "server shutdown")
		return
	}
	defer s.untrack(sess)

	sess.serve()
}

// serve runs the handshake and the read loop.
func (sess *Session) serve() {
	defer sess.Close(websocket.CloseNormalClosure, "")

	cfg := sess.server.config
	sess.conn.SetReadLimit(protocol.MaxFrameSize)

	hello, err := sess.readHello()
	if err != nil {
		sess.logger.Warn("handshake failed", "error", err)
		sess.server.recordWebSocketError("handshake")
		cmd := protocol.NewErrorCommand(protocol.ErrInvalidEvent, err.Error())
		cmd.Error.Fatal = true
		sess.send(cmd)
		return
	}

	var h history.History
	if cfg.HistoryMode == HistoryWeb {
		sess.web = history.NewWebAt(cfg.Base, hello.Path, hello.Position, sess.send)
		h = sess.web
	} else {
		h = history.NewMemoryAt(cfg.Base, hello.Path)
	}

	sess.router = router.NewRouter(cfg.Resolver, h,
		router.WithMiddleware(cfg.NavMiddleware...),
		router.WithContext(sess.ctx),
		router.WithLogger(cfg.Logger.With("component", "router", "session_id", sess.ID)),
	)
	defer sess.router.Close()
	sess.router.OnChange(sess.render)

	sess.logger.Info("session started",
		"path", hello.Path,
		"route", sess.router.CurrentRoute().Name(),
		"history", string(cfg.HistoryMode))

	go sess.heartbeat()
	sess.readLoop()
}

// readHello waits for the hello event that opens every session.
func (sess *Session) readHello() (*protocol.Event, error) {
	_ = sess.conn.SetReadDeadline(time.Now().Add(sess.server.config.HandshakeTimeout))
	_, msg, err := sess.conn.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("read hello: %w", err)
	}
	ev, err := protocol.DecodeEvent(msg)
	if err != nil {
		return nil, err
	}
	if ev.Type != protocol.EventHello {
		return nil, fmt.Errorf("expected hello event, got %q", ev.Type)
	}
	return ev, nil
}

// readLoop reads client events until the connection closes.
func (sess *Session) readLoop() {
	timeout := sess.server.config.ReadTimeout
	_ = sess.conn.SetReadDeadline(time.Now().Add(timeout))
	sess.conn.SetPongHandler(func(string) error {
		return sess.conn.SetReadDeadline(time.Now().Add(timeout))
	})

	for {
		_, msg, err := sess.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				sess.logger.Error("read error", "error", err)
				sess.server.recordWebSocketError("read")
			}
			return
		}
		_ = sess.conn.SetReadDeadline(time.Now().Add(timeout))

		ev, err := protocol.DecodeEvent(msg)
		if err != nil {
			sess.logger.Warn("event decode error", "error", err)
			sess.server.recordWebSocketError("decode")
			sess.send(protocol.NewErrorCommand(protocol.ErrInvalidEvent, err.Error()))
			continue
		}
		if m := sess.server.config.Metrics; m != nil {
			m.RecordEvent(string(ev.Type))
		}
		sess.handleEvent(ev)
	}
}

func (sess *Session) handleEvent(ev *protocol.Event) {
	switch ev.Type {
	case protocol.EventNavigate:
		sess.navigate(ev)

	case protocol.EventPopState:
		if sess.web == nil {
			sess.logger.Debug("popstate ignored in memory history", "path", ev.Path)
			return
		}
		sess.web.HandlePopState(ev.Path, ev.Position)

	case protocol.EventHello:
		sess.logger.Debug("duplicate hello ignored")
	}
}

// navigate resolves a navigate event and commits it.
func (sess *Session) navigate(ev *protocol.Event) {
	var target router.Target
	if ev.Name != "" {
		target = router.Named(ev.Name, nil)
	} else {
		p, ok := routepath.StripBase(sess.server.config.Base, ev.Path)
		if !ok {
			sess.send(protocol.NewErrorCommand(protocol.ErrInvalidPath,
				fmt.Sprintf("path %q is outside base %q", ev.Path, sess.server.config.Base)))
			return
		}
		target = router.Path(p)
	}

	var opts []router.NavigateOption
	if ev.Replace {
		opts = append(opts, router.WithReplace())
	}

	err := sess.router.NavigateTo(sess.ctx, target, opts...)
	switch {
	case err == nil:
	case router.IsNotFound(err):
		// Path misses were committed and rendered with the not-found view.
		if ev.Name != "" {
			sess.send(protocol.NewErrorCommand(protocol.ErrRouteNotFound, err.Error()))
		}
	default:
		sess.send(protocol.NewErrorCommand(protocol.ErrInvalidPath, err.Error()))
	}
}

// render sends the view of a committed navigation.
func (sess *Session) render(change router.Change) {
	res := change.To
	html, err := sess.server.config.Renderer.Render(sess.ctx, res)
	if err != nil {
		sess.logger.Error("render failed", "route", res.Name(), "error", err)
		sess.send(protocol.NewErrorCommand(protocol.ErrServerError, "render failed"))
		return
	}

	status := http.StatusOK
	if !res.Matched {
		status = http.StatusNotFound
	}
	sess.send(protocol.NewRenderCommand(res.Name(), string(res.View()), html, status))
}

// send writes a command to the tab. Write errors end the session through
// the read loop.
func (sess *Session) send(cmd protocol.Command) {
	select {
	case <-sess.done:
		return
	default:
	}

	sess.writeMu.Lock()
	defer sess.writeMu.Unlock()

	_ = sess.conn.SetWriteDeadline(time.Now().Add(sess.server.config.WriteTimeout))
	if err := sess.conn.WriteJSON(cmd); err != nil {
		sess.logger.Warn("write error", "op", string(cmd.Op), "error", err)
		sess.server.recordWebSocketError("write")
	}
}

// heartbeat pings the tab until the session closes.
func (sess *Session) heartbeat() {
	ticker := time.NewTicker(sess.server.config.HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			deadline := time.Now().Add(sess.server.config.WriteTimeout)
			if err := sess.conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				sess.logger.Debug("ping failed", "error", err)
				return
			}
		case <-sess.done:
			return
		}
	}
}

// Router returns the session's router. It is nil until the handshake
// completes.
func (sess *Session) Router() *router.Router {
	return sess.router
}

// Close sends a close frame and closes the connection. It is safe to call
// more than once.
func (sess *Session) Close(code int, reason string) {
	sess.closeOnce.Do(func() {
		close(sess.done)
		sess.cancel()
		deadline := time.Now().Add(time.Second)
		_ = sess.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), deadline)
		_ = sess.conn.Close()
		sess.logger.Debug("session closed", "code", code)
	})
}

func (s *Server) recordWebSocketError(kind string) {
	if s.config.Metrics != nil {
		s.config.Metrics.RecordWebSocketError(kind)
	}
}
