package router

import (
	"context"
	"errors"
	"testing"

	"github.com/notekeeper/notesweb/pkg/history"
)

func TestComposeMiddlewareOrder(t *testing.T) {
	var order []string
	mw := func(name string) Middleware {
		return MiddlewareFunc(func(nav *Navigation, next func() error) error {
			order = append(order, name+":before")
			err := next()
			order = append(order, name+":after")
			return err
		})
	}

	err := ComposeMiddleware(&Navigation{}, []Middleware{mw("a"), mw("b")}, func() {
		order = append(order, "commit")
	})
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"a:before", "b:before", "commit", "b:after", "a:after"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestComposeMiddlewareCommitsOnce(t *testing.T) {
	skip := MiddlewareFunc(func(*Navigation, func() error) error {
		return errors.New("skipped")
	})
	twice := MiddlewareFunc(func(_ *Navigation, next func() error) error {
		_ = next()
		return next()
	})

	for name, mw := range map[string]Middleware{"skip": skip, "twice": twice} {
		t.Run(name, func(t *testing.T) {
			commits := 0
			_ = ComposeMiddleware(&Navigation{}, []Middleware{mw}, func() { commits++ })
			if commits != 1 {
				t.Errorf("commits = %d, want 1", commits)
			}
		})
	}
}

func TestChain(t *testing.T) {
	var seen []NavigationKind
	record := MiddlewareFunc(func(nav *Navigation, next func() error) error {
		seen = append(seen, nav.Kind)
		return next()
	})

	commits := 0
	err := ComposeMiddleware(&Navigation{Kind: KindPush}, []Middleware{Chain(record, record)}, func() { commits++ })
	if err != nil {
		t.Fatal(err)
	}
	if len(seen) != 2 || commits != 1 {
		t.Errorf("seen = %v, commits = %d", seen, commits)
	}
}

func TestRouterMiddlewareObservesNavigations(t *testing.T) {
	h := history.NewMemory("/")

	type seen struct {
		kind     NavigationKind
		from, to string
	}
	var got []seen
	mw := MiddlewareFunc(func(nav *Navigation, next func() error) error {
		if nav.Context == nil {
			t.Error("navigation without context")
		}
		got = append(got, seen{nav.Kind, nav.From.Name(), nav.To.Name()})
		return next()
	})

	r := newTestRouter(t, h, WithMiddleware(mw))
	_ = r.NavigateTo(context.Background(), Path("/signin"))
	r.Back()

	want := []seen{
		{KindInitial, "", "note"},
		{KindPush, "note", "signin"},
		{KindPop, "signin", "note"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("navigation %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestRouterMiddlewareErrorDoesNotBlock(t *testing.T) {
	h := history.NewMemory("/")
	r := newTestRouter(t, h)
	r.Use(MiddlewareFunc(func(*Navigation, func() error) error {
		return errors.New("boom")
	}))

	if err := r.NavigateTo(context.Background(), Path("/signup")); err != nil {
		t.Fatalf("NavigateTo() error = %v, want nil", err)
	}
	if r.CurrentRoute().Name() != "signup" || h.Location() != "/signup" {
		t.Errorf("navigation was not committed: %q at %q", r.CurrentRoute().Name(), h.Location())
	}
}
