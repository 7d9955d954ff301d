package router

import (
	"net/url"
	"testing"
)

func TestNavigateOptionsApply(t *testing.T) {
	var opts NavigateOptions
	for _, opt := range []NavigateOption{
		WithReplace(),
		WithQuery(url.Values{"a": {"1"}}),
		WithQuery(url.Values{"a": {"2"}, "b": {"3"}}),
		WithHash("top"),
	} {
		opt(&opts)
	}

	if !opts.Replace {
		t.Error("Replace = false")
	}
	if got := opts.Query.Encode(); got != "a=1&a=2&b=3" {
		t.Errorf("Query = %q", got)
	}

	target := opts.apply(Target{Path: "/signup", Query: url.Values{"c": {"4"}}, Hash: "x"})
	if got := target.Query.Encode(); got != "a=1&a=2&b=3&c=4" {
		t.Errorf("target query = %q", got)
	}
	if target.Hash != "top" {
		t.Errorf("target hash = %q", target.Hash)
	}
}

func TestNavigateOptionsZero(t *testing.T) {
	target := NavigateOptions{}.apply(Path("/signin#a"))
	if target.Query != nil || target.Hash != "" || target.Path != "/signin#a" {
		t.Errorf("apply() = %+v", target)
	}
}
