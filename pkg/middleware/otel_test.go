package middleware

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/notekeeper/notesweb/pkg/router"
)

type recordedSpan struct {
	noop.Span
	name   string
	attrs  []attribute.KeyValue
	events []string
	status codes.Code
	err    error
	ended  bool
}

func (s *recordedSpan) SetAttributes(kv ...attribute.KeyValue) { s.attrs = append(s.attrs, kv...) }
func (s *recordedSpan) AddEvent(name string, _ ...trace.EventOption) {
	s.events = append(s.events, name)
}
func (s *recordedSpan) RecordError(err error, _ ...trace.EventOption) { s.err = err }
func (s *recordedSpan) SetStatus(code codes.Code, _ string)           { s.status = code }
func (s *recordedSpan) End(...trace.SpanEndOption)                    { s.ended = true }
func (s *recordedSpan) IsRecording() bool                             { return true }

func (s *recordedSpan) attr(key string) (attribute.Value, bool) {
	for _, kv := range s.attrs {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

type recordingTracer struct {
	noop.Tracer
	spans []*recordedSpan
}

func (t *recordingTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	cfg := trace.NewSpanStartConfig(opts...)
	span := &recordedSpan{name: name, attrs: cfg.Attributes()}
	t.spans = append(t.spans, span)
	return trace.ContextWithSpan(ctx, span), span
}

type recordingProvider struct {
	noop.TracerProvider
	tracer *recordingTracer
}

func (p *recordingProvider) Tracer(string, ...trace.TracerOption) trace.Tracer { return p.tracer }

func newRecordingProvider() *recordingProvider {
	return &recordingProvider{tracer: &recordingTracer{}}
}

func TestOpenTelemetryStartsNavigationSpan(t *testing.T) {
	tp := newRecordingProvider()
	mw := OpenTelemetry(WithTracerProvider(tp), WithAttributeExtractor(func(*router.Navigation) []attribute.KeyValue {
		return []attribute.KeyValue{attribute.String("test.attr", "ok")}
	}))

	parent := context.Background()
	nav := &router.Navigation{Context: parent, Kind: router.KindPush, From: resolved("note", true), To: resolved("signup", true)}
	err := mw.Handle(nav, func() error {
		if !SpanFromNavigation(nav).IsRecording() {
			t.Error("span is not visible in nav.Context during next()")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if nav.Context != parent {
		t.Error("nav.Context was not restored")
	}

	if len(tp.tracer.spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(tp.tracer.spans))
	}
	span := tp.tracer.spans[0]
	if span.name != "navigate signup" {
		t.Errorf("span name = %q, want %q", span.name, "navigate signup")
	}
	if !span.ended || span.status != codes.Ok {
		t.Errorf("span ended = %v, status = %v", span.ended, span.status)
	}

	wantStrings := map[string]string{
		"notesweb.path":  "/signup",
		"notesweb.route": "signup",
		"notesweb.kind":  "push",
		"notesweb.from":  "note",
		"test.attr":      "ok",
	}
	for key, want := range wantStrings {
		if v, ok := span.attr(key); !ok || v.AsString() != want {
			t.Errorf("attribute %s = %q, want %q", key, v.AsString(), want)
		}
	}
	if v, ok := span.attr("notesweb.matched"); !ok || !v.AsBool() {
		t.Error("notesweb.matched is not true")
	}
}

func TestOpenTelemetryRecordsMissAndError(t *testing.T) {
	tp := newRecordingProvider()
	mw := OpenTelemetry(WithTracerProvider(tp))

	_ = mw.Handle(&router.Navigation{Kind: router.KindPush, To: resolved("not-found", false)}, func() error { return nil })

	want := errors.New("render failed")
	err := mw.Handle(&router.Navigation{Kind: router.KindPop, To: resolved("signin", true)}, func() error { return want })
	if !errors.Is(err, want) {
		t.Fatalf("Handle() error = %v, want %v", err, want)
	}

	miss, failed := tp.tracer.spans[0], tp.tracer.spans[1]
	if len(miss.events) != 1 || miss.events[0] != "route not found" {
		t.Errorf("miss events = %v", miss.events)
	}
	if failed.status != codes.Error || !errors.Is(failed.err, want) {
		t.Errorf("failed span status = %v, err = %v", failed.status, failed.err)
	}
}

func TestOpenTelemetryFilter(t *testing.T) {
	tp := newRecordingProvider()
	mw := OpenTelemetry(WithTracerProvider(tp), WithNavigationFilter(func(nav *router.Navigation) bool {
		return nav.Kind != router.KindInitial
	}))

	called := false
	_ = mw.Handle(&router.Navigation{Kind: router.KindInitial, To: resolved("note", true)}, func() error {
		called = true
		return nil
	})
	if !called {
		t.Error("next was not called for a filtered navigation")
	}
	if len(tp.tracer.spans) != 0 {
		t.Errorf("got %d spans, want 0", len(tp.tracer.spans))
	}
}

func TestSpanFromNavigationWithoutContext(t *testing.T) {
	if SpanFromNavigation(&router.Navigation{}).IsRecording() {
		t.Error("expected a non-recording span")
	}
}
