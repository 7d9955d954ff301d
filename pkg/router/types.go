package router

import (
	"net/url"
	"strings"

	"github.com/notekeeper/notesweb/pkg/routepath"
)

// ViewRef is an opaque handle to a view. The host resolves it into a
// renderable unit; the router only carries it.
type ViewRef string

// Route binds a literal path and a symbolic name to a view.
type Route struct {
	// Path is the literal URL path (e.g., "/signup").
	Path string

	// Name is the unique symbolic identifier (e.g., "signup").
	Name string

	// View is the view shown at Path.
	View ViewRef
}

// Location is an application location: path, raw query and fragment.
type Location struct {
	Path  string
	Query string
	Hash  string
}

// String returns the full path, e.g. "/signup?ref=nav#form".
func (l Location) String() string {
	return routepath.Join(l.Path, l.Query, l.Hash)
}

// ParseLocation splits a full path into a Location.
func ParseLocation(fullPath string) Location {
	path, query, hash := routepath.Split(fullPath)
	return Location{Path: path, Query: query, Hash: hash}
}

// Target is a navigation request: a literal path, or a route name.
type Target struct {
	// Path is an application path, optionally with query and fragment.
	Path string

	// Name selects a route by name when set. Path is ignored.
	Name string

	// Params are route parameters for named targets. No route path has
	// dynamic segments, so they are accepted and ignored.
	Params map[string]string

	// Query values are merged into the resolved query string.
	Query url.Values

	// Hash replaces the fragment when set.
	Hash string
}

// Path returns a target for a literal application path.
func Path(path string) Target {
	return Target{Path: path}
}

// Named returns a target for a route name.
func Named(name string, params map[string]string) Target {
	return Target{Name: name, Params: params}
}

// ParseTarget parses the textual form used by the CLI and by links:
// "name:<route>" selects by name, anything else is a path.
func ParseTarget(s string) Target {
	if name, ok := strings.CutPrefix(s, "name:"); ok {
		return Named(name, nil)
	}
	return Path(s)
}

// String returns a readable form of the target for logs.
func (t Target) String() string {
	if t.Name != "" {
		return "name:" + t.Name
	}
	return t.Path
}

// Resolved is the outcome of resolving a target.
type Resolved struct {
	// Route is the matched route, or the not-found route on a miss.
	Route Route

	// Location is the resolved application location.
	Location Location

	// Href is Location prefixed with the deployment base, as shown in the
	// address bar.
	Href string

	// Matched reports whether Route came from the table.
	Matched bool
}

// Name returns the resolved route name.
func (r Resolved) Name() string { return r.Route.Name }

// View returns the resolved view.
func (r Resolved) View() ViewRef { return r.Route.View }

// FullPath returns the application path with query and fragment.
func (r Resolved) FullPath() string { return r.Location.String() }

// NavigationKind tells how a navigation was triggered.
type NavigationKind uint8

const (
	KindInitial NavigationKind = iota // First resolution of the current location
	KindPush                          // New history entry
	KindReplace                       // Current history entry replaced
	KindPop                           // Back/forward traversal
)

// String returns the string representation of the kind.
func (k NavigationKind) String() string {
	switch k {
	case KindInitial:
		return "initial"
	case KindPush:
		return "push"
	case KindReplace:
		return "replace"
	case KindPop:
		return "pop"
	default:
		return "unknown"
	}
}

// Change describes a committed navigation.
type Change struct {
	Kind NavigationKind
	From Resolved
	To   Resolved

	// Delta is the traversal distance for KindPop.
	Delta int
}
