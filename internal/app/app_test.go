package app

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/notekeeper/notesweb/internal/config"
	"github.com/notekeeper/notesweb/internal/errors"
	"github.com/notekeeper/notesweb/internal/views"
	"github.com/notekeeper/notesweb/pkg/router"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig(t *testing.T, base string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "app.css"), []byte("body{margin:0}"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := config.New()
	cfg.Base = base
	cfg.Assets.Dir = dir
	return cfg
}

func newTestApp(t *testing.T, cfg *config.Config, opts Options) *App {
	t.Helper()
	if opts.Logger == nil {
		opts.Logger = quietLogger()
	}
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}
	a, err := New(cfg, opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return a
}

func get(h http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestRoutes(t *testing.T) {
	table, err := router.NewTable(Routes()...)
	if err != nil {
		t.Fatalf("NewTable(Routes()) error = %v", err)
	}
	for path, name := range map[string]string{"/": "note", "/signup": "signup", "/signin": "signin"} {
		route, ok := table.ByPath(path)
		if !ok || route.Name != name {
			t.Errorf("ByPath(%q) = %+v, %v; want %q", path, route, ok, name)
		}
	}
}

func TestNewResolverErrors(t *testing.T) {
	dup := []router.Route{
		{Path: "/", Name: "note", View: views.Note},
		{Path: "/", Name: "home", View: views.Note},
	}
	_, err := NewResolver("/", dup, views.Default())
	var e *errors.Error
	if !stderrors.As(err, &e) || e.Code != "E201" {
		t.Errorf("duplicate error = %v, want E201", err)
	}
	if !router.IsDuplicate(err) {
		t.Error("E201 should wrap the *router.DuplicateRouteError")
	}
	errors.DisableColors()
	defer errors.EnableColors()
	if cause := stderrors.Unwrap(e).Error(); strings.Count(e.Format(), cause) != 1 {
		t.Errorf("Format() should show the cause once:\n%s", e.Format())
	}

	missingView := []router.Route{{Path: "/", Name: "note", View: "dashboard"}}
	_, err = NewResolver("/", missingView, views.Default())
	if !stderrors.As(err, &e) || e.Code != "E203" {
		t.Errorf("unregistered view error = %v, want E203", err)
	}

	invalid := []router.Route{{Path: "signup", Name: "signup", View: views.SignUp}}
	_, err = NewResolver("/", invalid, views.Default())
	if !stderrors.As(err, &e) || e.Code != "E203" {
		t.Errorf("invalid route error = %v, want E203", err)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.New()
	cfg.History = "hash"
	_, err := New(cfg, Options{Logger: quietLogger()})
	var e *errors.Error
	if !stderrors.As(err, &e) || e.Code != "E123" {
		t.Errorf("New() error = %v, want E123", err)
	}
}

func TestAppServesPages(t *testing.T) {
	a := newTestApp(t, testConfig(t, "/notes/"), Options{})
	h := a.Handler()

	tests := []struct {
		path   string
		status int
		want   string
	}{
		{"/notes/", http.StatusOK, `data-route="note"`},
		{"/notes/signup", http.StatusOK, `data-route="signup"`},
		{"/notes/signin", http.StatusOK, "<title>Sign in</title>"},
		{"/notes/nope", http.StatusNotFound, "Page not found"},
		{"/notes/_nav/client.js", http.StatusOK, "_nav/ws"},
		{"/notes/assets/app.css", http.StatusOK, "body{margin:0}"},
		{"/metrics", http.StatusOK, "notesweb_http_requests_total"},
		{"/healthz", http.StatusOK, "ok"},
	}
	for _, tt := range tests {
		rec := get(h, tt.path)
		if rec.Code != tt.status {
			t.Errorf("GET %s status = %d, want %d", tt.path, rec.Code, tt.status)
			continue
		}
		if !strings.Contains(rec.Body.String(), tt.want) {
			t.Errorf("GET %s body does not contain %q", tt.path, tt.want)
		}
	}
}

func TestAppLinksUseBase(t *testing.T) {
	a := newTestApp(t, testConfig(t, "/notes"), Options{})
	body := get(a.Handler(), "/notes/signin").Body.String()

	for _, want := range []string{
		`href="/notes/signup"`,
		`src="/notes/_nav/client.js?v=`,
		`href="/notes/assets/app.css"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("page does not contain %s", want)
		}
	}
}

func TestAppFormsSubmitToRoutedPages(t *testing.T) {
	a := newTestApp(t, testConfig(t, "/notes"), Options{})
	h := a.Handler()

	for _, path := range []string{"/notes/", "/notes/signup", "/notes/signin"} {
		body := get(h, path).Body.String()
		if strings.Contains(body, "method=") || strings.Contains(body, "action=") {
			t.Errorf("GET %s renders a form with its own method or action", path)
		}
		// Without the client, submitting a form reloads the page with a query.
		if rec := get(h, path+"?title=x"); rec.Code != http.StatusOK {
			t.Errorf("fallback submit of %s status = %d, want %d", path, rec.Code, http.StatusOK)
		}
	}

	if js := get(h, "/notes/_nav/client.js").Body.String(); !strings.Contains(js, "data-nav-form") {
		t.Error("client script does not handle nav forms")
	}
}

func TestAppMetricsDisabled(t *testing.T) {
	cfg := testConfig(t, "/")
	cfg.Metrics.Enabled = false
	a := newTestApp(t, cfg, Options{})

	if a.Metrics != nil {
		t.Error("Metrics should be nil when disabled")
	}
	if rec := get(a.Handler(), "/metrics"); rec.Code != http.StatusNotFound {
		t.Errorf("GET /metrics status = %d, want 404", rec.Code)
	}
}

type fakeS3 struct {
	objects map[string]string
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	body, ok := f.objects[*in.Bucket+"/"+*in.Key]
	if !ok {
		return nil, stderrors.New("unexpected key " + *in.Key)
	}
	size := int64(len(body))
	return &s3.GetObjectOutput{
		Body:          io.NopCloser(bytes.NewReader([]byte(body))),
		ContentLength: &size,
	}, nil
}

func TestAppServesAssetsFromS3(t *testing.T) {
	cfg := testConfig(t, "/")
	cfg.Assets.S3.Bucket = "notes-assets"
	cfg.Assets.S3.Prefix = "web"
	client := &fakeS3{objects: map[string]string{"notes-assets/web/app.css": "main{}"}}

	a := newTestApp(t, cfg, Options{S3Client: client})
	rec := get(a.Handler(), "/assets/app.css")
	if rec.Code != http.StatusOK || rec.Body.String() != "main{}" {
		t.Errorf("GET /assets/app.css = %d %q, want 200 %q", rec.Code, rec.Body.String(), "main{}")
	}
}
