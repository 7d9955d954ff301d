package middleware

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/notekeeper/notesweb/pkg/router"
)

// Default tracer name.
const defaultTracerName = "notesweb"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "notesweb").
	TracerName string

	// TracerProvider provides the tracer.
	// Default: the global provider from otel.GetTracerProvider.
	TracerProvider trace.TracerProvider

	// Filter determines which navigations to trace.
	// Return true to trace the navigation, false to skip.
	// If nil, all navigations are traced.
	Filter func(nav *router.Navigation) bool

	// AttributeExtractor adds custom attributes to each span.
	AttributeExtractor func(nav *router.Navigation) []attribute.KeyValue
}

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) OTelOption {
	return func(c *OTelConfig) {
		c.TracerProvider = tp
	}
}

// WithNavigationFilter sets a filter function for navigations.
func WithNavigationFilter(filter func(nav *router.Navigation) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(nav *router.Navigation) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

// OpenTelemetry creates middleware that traces every committed navigation.
//
// Each navigation gets a span named "navigate <route>" carrying the
// requested path, the route name, the navigation kind and whether a route
// matched. The span context replaces nav.Context for the rest of the chain.
//
// The tracer uses the global provider unless WithTracerProvider is given.
// Configure it in main() before starting the server:
//
//	otel.SetTracerProvider(tp)
func OpenTelemetry(opts ...OTelOption) router.Middleware {
	config := OTelConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}

	var tracer trace.Tracer
	if config.TracerProvider != nil {
		tracer = config.TracerProvider.Tracer(config.TracerName)
	} else {
		tracer = otel.Tracer(config.TracerName)
	}

	return router.MiddlewareFunc(func(nav *router.Navigation, next func() error) error {
		if config.Filter != nil && !config.Filter(nav) {
			return next()
		}

		attrs := []attribute.KeyValue{
			attribute.String("notesweb.path", nav.To.Location.Path),
			attribute.String("notesweb.route", nav.To.Name()),
			attribute.String("notesweb.kind", nav.Kind.String()),
			attribute.Bool("notesweb.matched", nav.To.Matched),
		}
		if nav.From.Name() != "" {
			attrs = append(attrs, attribute.String("notesweb.from", nav.From.Name()))
		}
		if config.AttributeExtractor != nil {
			attrs = append(attrs, config.AttributeExtractor(nav)...)
		}

		parent := nav.Context
		if parent == nil {
			parent = context.Background()
		}
		spanCtx, span := tracer.Start(parent,
			fmt.Sprintf("navigate %s", nav.To.Name()),
			trace.WithSpanKind(trace.SpanKindInternal),
			trace.WithAttributes(attrs...),
		)
		defer span.End()

		nav.Context = spanCtx
		defer func() { nav.Context = parent }()

		err := next()

		switch {
		case err != nil:
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		case !nav.To.Matched:
			span.AddEvent("route not found")
			span.SetStatus(codes.Ok, "")
		default:
			span.SetStatus(codes.Ok, "")
		}
		return err
	})
}

// SpanFromNavigation returns the span of a traced navigation, or a
// non-recording span when none is active.
func SpanFromNavigation(nav *router.Navigation) trace.Span {
	if nav.Context == nil {
		return trace.SpanFromContext(context.Background())
	}
	return trace.SpanFromContext(nav.Context)
}
