// Package middleware provides observability for the navigation server.
//
// This package includes:
//   - Prometheus metrics for navigations, history bridge sessions and HTTP
//   - OpenTelemetry tracing middleware for navigations
//
// # Prometheus Metrics
//
// Metrics are registered once per registry and shared by every session:
//
//	metrics := middleware.NewMetrics(middleware.WithRegistry(reg))
//	r.Use(metrics.Prometheus())
//	handler := metrics.HTTP(mux)
//
// Expose them with promhttp:
//
//	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
//
// # OpenTelemetry Middleware
//
// The OpenTelemetry middleware starts a span for each committed navigation:
//
//	r.Use(middleware.OpenTelemetry(
//	    middleware.WithTracerName("notesweb"),
//	    middleware.WithNavigationFilter(func(nav *router.Navigation) bool {
//	        return nav.Kind != router.KindInitial
//	    }),
//	))
//
// Middleware further down the chain sees the span in nav.Context.
package middleware
