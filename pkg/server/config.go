package server

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/notekeeper/notesweb/pkg/middleware"
	"github.com/notekeeper/notesweb/pkg/router"
	"github.com/notekeeper/notesweb/pkg/routepath"
)

// HistoryMode selects where a tab's history lives.
type HistoryMode string

const (
	// HistoryWeb mirrors the browser history: navigations push entries in
	// the tab and back/forward are reported as popstate events.
	HistoryWeb HistoryMode = "web"

	// HistoryMemory keeps the history on the server. The address bar does
	// not change and browser traversals are ignored.
	HistoryMemory HistoryMode = "memory"
)

// Renderer turns resolved routes into HTML.
type Renderer interface {
	// Render renders the view alone, for swapping into a live page.
	Render(ctx context.Context, res router.Resolved) (string, error)

	// Page renders a complete document for a first page load.
	Page(ctx context.Context, w io.Writer, res router.Resolved) error
}

// Config holds the server configuration.
type Config struct {
	// Address is the address to listen on.
	// Default: ":5173".
	Address string

	// Base is the deployment base every application URL lives under.
	// Default: "/".
	Base string

	// Resolver resolves paths and names against the route table. Required.
	Resolver *router.Resolver

	// Renderer renders resolved routes. Required.
	Renderer Renderer

	// Assets serves "{base}/assets/*" with the prefix stripped. Optional.
	Assets http.Handler

	// ClientJS is the navigation client served at "{base}/_nav/client.js".
	ClientJS []byte

	// ClientVersion is the content version of ClientJS, used as its ETag.
	ClientVersion string

	// HistoryMode selects how navigations reach the browser.
	// Default: HistoryWeb.
	HistoryMode HistoryMode

	// NavMiddleware observes every navigation of every session.
	NavMiddleware []router.Middleware

	// Metrics records HTTP and WebSocket metrics when set.
	Metrics *middleware.Metrics

	// MetricsPath exposes Gatherer when both are set.
	MetricsPath string

	// Gatherer is the Prometheus registry served at MetricsPath.
	Gatherer prometheus.Gatherer

	// CheckOrigin validates the Origin header of WebSocket upgrades.
	// Default: same-origin check.
	CheckOrigin func(r *http.Request) bool

	// ReadBufferSize and WriteBufferSize size the WebSocket buffers.
	// Default: 4096.
	ReadBufferSize  int
	WriteBufferSize int

	// HandshakeTimeout bounds the wait for the client's hello event.
	// Default: 10 seconds.
	HandshakeTimeout time.Duration

	// ReadTimeout is the maximum time between two client frames or pongs.
	// Default: 60 seconds.
	ReadTimeout time.Duration

	// WriteTimeout is the maximum time for writing a frame.
	// Default: 10 seconds.
	WriteTimeout time.Duration

	// HeartbeatInterval is the time between pings.
	// Default: 30 seconds.
	HeartbeatInterval time.Duration

	// ShutdownTimeout is the maximum time to wait for graceful shutdown.
	// Default: 30 seconds.
	ShutdownTimeout time.Duration

	// Logger is the structured logger.
	// Default: slog.Default().
	Logger *slog.Logger
}

// withDefaults returns a copy of c with empty fields set to defaults.
func (c Config) withDefaults() Config {
	if c.Address == "" {
		c.Address = ":5173"
	}
	c.Base = routepath.NormalizeBase(c.Base)
	if c.HistoryMode == "" {
		c.HistoryMode = HistoryWeb
	}
	if c.CheckOrigin == nil {
		c.CheckOrigin = SameOrigin
	}
	if c.ReadBufferSize == 0 {
		c.ReadBufferSize = 4096
	}
	if c.WriteBufferSize == 0 {
		c.WriteBufferSize = 4096
	}
	if c.HandshakeTimeout == 0 {
		c.HandshakeTimeout = 10 * time.Second
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 60 * time.Second
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 10 * time.Second
	}
	if c.HeartbeatInterval == 0 {
		c.HeartbeatInterval = 30 * time.Second
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = 30 * time.Second
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

// validate checks the fields New cannot default.
func (c Config) validate() error {
	if c.Resolver == nil {
		return fmt.Errorf("server: config requires a Resolver")
	}
	if c.Renderer == nil {
		return fmt.Errorf("server: config requires a Renderer")
	}
	switch c.HistoryMode {
	case HistoryWeb, HistoryMemory:
	default:
		return fmt.Errorf("server: unknown history mode %q", c.HistoryMode)
	}
	if c.Resolver.Base() != c.Base {
		return fmt.Errorf("server: resolver base %q does not match %q", c.Resolver.Base(), c.Base)
	}
	return nil
}

// SameOrigin accepts upgrades without an Origin header or whose Origin
// host equals the request host.
func SameOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return u.Host == r.Host
}
