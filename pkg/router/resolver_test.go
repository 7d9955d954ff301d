package router

import (
	"errors"
	"net/url"
	"testing"

	"github.com/notekeeper/notesweb/pkg/routepath"
)

func TestResolveByPathAndName(t *testing.T) {
	r := NewResolver(notesTable(t))

	tests := []struct {
		path string
		name string
		view ViewRef
	}{
		{"/", "note", "note"},
		{"/signup", "signup", "signup"},
		{"/signin", "signin", "signin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			byPath, err := r.Resolve(Path(tt.path))
			if err != nil {
				t.Fatalf("Resolve(Path(%q)) error = %v", tt.path, err)
			}
			byName, err := r.Resolve(Named(tt.name, nil))
			if err != nil {
				t.Fatalf("Resolve(Named(%q)) error = %v", tt.name, err)
			}

			if byPath.View() != tt.view {
				t.Errorf("view = %q, want %q", byPath.View(), tt.view)
			}
			if byPath != byName {
				t.Errorf("by path = %+v, by name = %+v", byPath, byName)
			}
			if byName.FullPath() != tt.path {
				t.Errorf("FullPath() = %q, want %q", byName.FullPath(), tt.path)
			}
			if !byPath.Matched {
				t.Error("Matched = false")
			}
		})
	}
}

func TestResolveUnknownPath(t *testing.T) {
	r := NewResolver(notesTable(t))

	for i := 0; i < 3; i++ {
		res, err := r.Resolve(Path("/does-not-exist"))
		var nf *RouteNotFoundError
		if !errors.As(err, &nf) {
			t.Fatalf("Resolve() error = %v, want *RouteNotFoundError", err)
		}
		if nf.Path != "/does-not-exist" || nf.Name != "" {
			t.Errorf("RouteNotFoundError = %+v", nf)
		}
		if res.Matched || res.Route != DefaultNotFound {
			t.Errorf("Resolve() = %+v, want not-found route", res)
		}
		if res.FullPath() != "/does-not-exist" || res.Href != "/does-not-exist" {
			t.Errorf("FullPath() = %q, Href = %q", res.FullPath(), res.Href)
		}
	}
}

func TestResolveUnknownName(t *testing.T) {
	r := NewResolver(notesTable(t))

	res, err := r.Resolve(Named("settings", nil))
	if !IsNotFound(err) {
		t.Fatalf("Resolve() error = %v, want not found", err)
	}
	if res != (Resolved{}) {
		t.Errorf("Resolve() = %+v, want zero", res)
	}
	if _, err := r.Href(Named("settings", nil)); !IsNotFound(err) {
		t.Errorf("Href() error = %v, want not found", err)
	}
}

func TestResolveInvalidPath(t *testing.T) {
	r := NewResolver(notesTable(t))

	for _, p := range []string{"signup", "https://evil.test/", "/sign\\up"} {
		_, err := r.Resolve(Path(p))
		if err == nil || IsNotFound(err) {
			t.Errorf("Resolve(%q) error = %v, want invalid path", p, err)
		}
	}
	if _, err := r.Resolve(Path("//evil.test")); !errors.Is(err, routepath.ErrInvalidPath) {
		t.Errorf("Resolve(//evil.test) error = %v", err)
	}
}

func TestResolveIsCaseSensitiveAndExact(t *testing.T) {
	r := NewResolver(notesTable(t))
	for _, p := range []string{"/SignUp", "/signup/", "/signup/extra"} {
		res, err := r.Resolve(Path(p))
		if !IsNotFound(err) || res.Matched {
			t.Errorf("Resolve(%q) = %+v, %v; want miss", p, res, err)
		}
	}
}

func TestResolveQueryAndHash(t *testing.T) {
	r := NewResolver(notesTable(t), WithBase("/app/"))

	res, err := r.Resolve(Path("/signin?next=%2F#form"))
	if err != nil {
		t.Fatal(err)
	}
	if res.Name() != "signin" {
		t.Errorf("Name() = %q", res.Name())
	}
	if res.Location != (Location{Path: "/signin", Query: "next=%2F", Hash: "form"}) {
		t.Errorf("Location = %+v", res.Location)
	}
	if res.Href != "/app/signin?next=%2F#form" {
		t.Errorf("Href = %q", res.Href)
	}

	res, err = r.Resolve(Target{Name: "signup", Query: url.Values{"ref": {"nav"}}, Hash: "top"})
	if err != nil {
		t.Fatal(err)
	}
	if res.FullPath() != "/signup?ref=nav#top" {
		t.Errorf("FullPath() = %q", res.FullPath())
	}

	res, _ = r.Resolve(Target{Path: "/signup?a=1", Query: url.Values{"b": {"2"}}})
	if res.Location.Query != "a=1&b=2" {
		t.Errorf("merged query = %q", res.Location.Query)
	}
}

func TestResolveKeepsUnparsableQuery(t *testing.T) {
	r := NewResolver(notesTable(t))

	res, err := r.Resolve(Target{Path: "/signup?ref=a;b&x=%zz", Query: url.Values{"y": {"1"}}})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := res.FullPath(), "/signup?ref=a;b&x=%zz&y=1"; got != want {
		t.Errorf("FullPath() = %q, want %q", got, want)
	}

	res, _ = r.Resolve(Path("/signup?ref=a;b"))
	if res.Location.Query != "ref=a;b" {
		t.Errorf("query without extra values = %q", res.Location.Query)
	}
}

func TestResolveNamedIgnoresParams(t *testing.T) {
	r := NewResolver(notesTable(t))
	res, err := r.Resolve(Named("note", map[string]string{"id": "42"}))
	if err != nil {
		t.Fatal(err)
	}
	if res.FullPath() != "/" {
		t.Errorf("FullPath() = %q, want %q", res.FullPath(), "/")
	}
}

func TestResolverBaseAndNotFoundOptions(t *testing.T) {
	custom := Route{Name: "missing", View: "missing"}
	r := NewResolver(notesTable(t), WithBase("/notes"), WithNotFound(custom))

	if r.Base() != "/notes" {
		t.Errorf("Base() = %q", r.Base())
	}
	href, err := r.Href(Named("note", nil))
	if err != nil || href != "/notes/" {
		t.Errorf("Href(note) = %q, %v", href, err)
	}
	res, _ := r.Resolve(Path("/nope"))
	if res.Route != custom {
		t.Errorf("fallback route = %+v, want %+v", res.Route, custom)
	}
	if href, err := r.Href(Path("/nope")); err != nil || href != "/notes/nope" {
		t.Errorf("Href(/nope) = %q, %v", href, err)
	}
}

func TestParseTarget(t *testing.T) {
	if got := ParseTarget("name:signup"); got.Name != "signup" || got.Path != "" {
		t.Errorf("ParseTarget(name:signup) = %+v", got)
	}
	if got := ParseTarget("/signin"); got.Path != "/signin" || got.Name != "" {
		t.Errorf("ParseTarget(/signin) = %+v", got)
	}
	if got := Named("note", nil).String(); got != "name:note" {
		t.Errorf("String() = %q", got)
	}
}
