package views

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/a-h/templ"

	"github.com/notekeeper/notesweb/pkg/router"
)

func newResolver(t *testing.T, base string) *router.Resolver {
	t.Helper()
	table, err := router.NewTable(
		router.Route{Path: "/", Name: "note", View: Note},
		router.Route{Path: "/signup", Name: "signup", View: SignUp},
		router.Route{Path: "/signin", Name: "signin", View: SignIn},
	)
	if err != nil {
		t.Fatal(err)
	}
	return router.NewResolver(table, router.WithBase(base))
}

func resolve(t *testing.T, r *router.Resolver, path string) router.Resolved {
	t.Helper()
	res, err := r.Resolve(router.Path(path))
	if err != nil && !router.IsNotFound(err) {
		t.Fatal(err)
	}
	return res
}

func TestRenderViews(t *testing.T) {
	resolver := newResolver(t, "/")
	renderer := NewRenderer(Default(), resolver)

	tests := []struct {
		path string
		want []string
	}{
		{"/", []string{`data-view="note"`, `<h1>Notes</h1>`, `href="/signin"`}},
		{"/signup", []string{`data-view="signup"`, `data-nav-form="true" data-route="signin" data-href="/signin"`, `href="/signin" data-link="true" data-route="signin"`}},
		{"/signin", []string{`data-view="signin"`, `<button type="submit">Sign in</button>`, `href="/signup"`}},
		{"/nope", []string{`data-view="not-found"`, `<code>/nope</code>`, `href="/"`}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			html, err := renderer.Render(context.Background(), resolve(t, resolver, tt.path))
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(html, want) {
					t.Errorf("Render(%s) missing %q in:\n%s", tt.path, want, html)
				}
			}
		})
	}
}

func TestFormsDoNotPost(t *testing.T) {
	resolver := newResolver(t, "/notes")
	renderer := NewRenderer(Default(), resolver)

	tests := []struct {
		path string
		href string
	}{
		{"/", "/notes/"},
		{"/signup", "/notes/signin"},
		{"/signin", "/notes/"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			html, err := renderer.Render(context.Background(), resolve(t, resolver, tt.path))
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			if strings.Count(html, "<form") != 1 {
				t.Fatalf("Render(%s) want one form in:\n%s", tt.path, html)
			}
			// The server routes only GET and HEAD for pages.
			for _, bad := range []string{"method=", "action=", `name="password"`} {
				if strings.Contains(html, bad) {
					t.Errorf("Render(%s) contains %q:\n%s", tt.path, bad, html)
				}
			}
			if want := `data-href="` + tt.href + `"`; !strings.Contains(html, want) {
				t.Errorf("Render(%s) missing %q:\n%s", tt.path, want, html)
			}
		})
	}
}

func TestRenderEscapesPath(t *testing.T) {
	resolver := newResolver(t, "/")
	renderer := NewRenderer(Default(), resolver)

	html, err := renderer.Render(context.Background(), resolve(t, resolver, "/<script>"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(html, "<script>") {
		t.Errorf("path was not escaped:\n%s", html)
	}
}

func TestPageUsesBase(t *testing.T) {
	resolver := newResolver(t, "/notes/")
	renderer := NewRenderer(Default(), resolver, WithClientVersion("abc"))

	var b strings.Builder
	if err := renderer.Page(context.Background(), &b, resolve(t, resolver, "/signup")); err != nil {
		t.Fatal(err)
	}
	html := b.String()

	for _, want := range []string{
		`<title>Sign up</title>`,
		`<main id="app" data-route="signup">`,
		`<script src="/notes/_nav/client.js?v=abc" defer>`,
		`href="/notes/assets/app.css"`,
		`data-base="/notes"`,
		`href="/notes/signin"`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("Page() missing %q", want)
		}
	}
}

func TestNavLinkActive(t *testing.T) {
	resolver := newResolver(t, "/")
	c := Context{Resolved: resolve(t, resolver, "/signin"), Resolver: resolver}

	var b strings.Builder
	_ = NavLink(c, router.Named("signin", nil), "Sign in").Render(context.Background(), &b)
	if !strings.Contains(b.String(), `class="active"`) {
		t.Errorf("active link = %s", b.String())
	}

	b.Reset()
	_ = NavLink(c, router.Named("signup", nil), "Sign up").Render(context.Background(), &b)
	if strings.Contains(b.String(), "active") {
		t.Errorf("inactive link = %s", b.String())
	}
}

func TestLinkToUnknownName(t *testing.T) {
	resolver := newResolver(t, "/")
	c := Context{Resolver: resolver}
	var b strings.Builder
	_ = Link(c, router.Named("settings", nil), "Settings").Render(context.Background(), &b)
	if !strings.Contains(b.String(), `href="#"`) {
		t.Errorf("link = %s", b.String())
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	fn := func(Context) templ.Component { return templ.NopComponent }

	if err := r.Register("x", fn); err != nil {
		t.Fatal(err)
	}
	if err := r.Register("x", fn); err == nil {
		t.Error("duplicate Register() succeeded")
	}
	if err := r.Register("", fn); err == nil {
		t.Error("Register with empty ref succeeded")
	}
	if !r.Has("x") || r.Has("y") {
		t.Error("Has() mismatch")
	}

	// Without a not-found view, unknown refs render nothing.
	var b strings.Builder
	res := router.Resolved{Route: router.Route{View: "y"}}
	if err := r.Component(Context{Resolved: res}).Render(context.Background(), &b); err != nil || b.Len() != 0 {
		t.Errorf("Component() rendered %q, %v", b.String(), err)
	}
}

func TestRenderPropagatesErrors(t *testing.T) {
	want := errors.New("boom")
	r := NewRegistry()
	r.MustRegister(Note, func(Context) templ.Component {
		return templ.ComponentFunc(func(context.Context, io.Writer) error { return want })
	})
	resolver := newResolver(t, "/")
	_, err := NewRenderer(r, resolver).Render(context.Background(), resolve(t, resolver, "/"))
	if !errors.Is(err, want) {
		t.Errorf("Render() error = %v, want %v", err, want)
	}
}

func TestTitle(t *testing.T) {
	if got := Title(router.Resolved{Route: router.Route{Name: "custom", View: "custom"}}); got != "custom" {
		t.Errorf("Title() = %q", got)
	}
	if got := Title(router.Resolved{}); got != "Page not found" {
		t.Errorf("Title() = %q", got)
	}
}
