package middleware

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/notekeeper/notesweb/pkg/router"
)

// MetricsConfig configures the Prometheus metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "notesweb").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for durations.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "notesweb",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the Prometheus collectors of the navigation server.
// Create one per registry with NewMetrics and share it between sessions.
type Metrics struct {
	navigationsTotal   *prometheus.CounterVec
	navigationDuration *prometheus.HistogramVec
	routeMisses        *prometheus.CounterVec
	eventsTotal        *prometheus.CounterVec
	activeSessions     prometheus.Gauge
	wsErrors           *prometheus.CounterVec
	httpRequests       *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
}

// NewMetrics registers the collectors with the configured registry.
//
// Metrics collected:
//   - notesweb_navigations_total: navigations by route, kind and status
//   - notesweb_navigation_duration_seconds: navigation commit duration by route
//   - notesweb_route_misses_total: navigations that showed the not-found view
//   - notesweb_events_total: client events received over the history bridge
//   - notesweb_active_sessions: open history bridge connections
//   - notesweb_websocket_errors_total: WebSocket errors by type
//   - notesweb_http_requests_total: HTTP requests by code and method
//   - notesweb_http_request_duration_seconds: HTTP request duration
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		navigationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigations_total",
			Help:        "Total number of committed navigations",
			ConstLabels: config.ConstLabels,
		}, []string{"route", "kind", "status"}),

		navigationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigation_duration_seconds",
			Help:        "Navigation commit duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"route"}),

		routeMisses: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "route_misses_total",
			Help:        "Total number of navigations to paths without a route",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),

		eventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "events_total",
			Help:        "Total number of client events received",
			ConstLabels: config.ConstLabels,
		}, []string{"type"}),

		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "active_sessions",
			Help:        "Number of open history bridge connections",
			ConstLabels: config.ConstLabels,
		}),

		wsErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "websocket_errors_total",
			Help:        "Total WebSocket errors by type",
			ConstLabels: config.ConstLabels,
		}, []string{"type"}),

		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "http_requests_total",
			Help:        "Total HTTP requests by status code and method",
			ConstLabels: config.ConstLabels,
		}, []string{"code", "method"}),

		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"code", "method"}),
	}
}

// Prometheus returns router middleware recording every committed navigation.
// Misses are labeled with the not-found route name and status "not_found";
// an error from a later middleware is labeled "error".
func (m *Metrics) Prometheus() router.Middleware {
	return router.MiddlewareFunc(func(nav *router.Navigation, next func() error) error {
		route := nav.To.Name()
		kind := nav.Kind.String()

		start := time.Now()
		err := next()
		m.navigationDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())

		status := "ok"
		switch {
		case err != nil:
			status = "error"
		case !nav.To.Matched:
			status = "not_found"
			m.routeMisses.WithLabelValues(kind).Inc()
		}
		m.navigationsTotal.WithLabelValues(route, kind, status).Inc()

		return err
	})
}

// HTTP instruments an HTTP handler with request counters and durations.
func (m *Metrics) HTTP(next http.Handler) http.Handler {
	return promhttp.InstrumentHandlerDuration(m.httpDuration,
		promhttp.InstrumentHandlerCounter(m.httpRequests, next))
}

// RecordEvent counts a client event of the given type.
func (m *Metrics) RecordEvent(eventType string) {
	m.eventsTotal.WithLabelValues(eventType).Inc()
}

// RecordSessionOpen records a new history bridge connection.
func (m *Metrics) RecordSessionOpen() {
	m.activeSessions.Inc()
}

// RecordSessionClose records a closed history bridge connection.
func (m *Metrics) RecordSessionClose() {
	m.activeSessions.Dec()
}

// RecordWebSocketError records a WebSocket error.
func (m *Metrics) RecordWebSocketError(errorType string) {
	m.wsErrors.WithLabelValues(errorType).Inc()
}
