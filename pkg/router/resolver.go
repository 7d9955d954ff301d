package router

import (
	"fmt"
	"net/url"

	"github.com/notekeeper/notesweb/pkg/routepath"
)

// DefaultNotFound is the fallback route used when no route matches a path.
// Its Path is empty because it is never matched; the requested path is kept
// in the resolved Location.
var DefaultNotFound = Route{Name: "not-found", View: "not-found"}

// Resolver matches navigation targets against a Table.
// It holds no mutable state and is safe for concurrent use.
type Resolver struct {
	table    *Table
	base     string
	notFound Route
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithBase sets the deployment base prefixed to every Href.
func WithBase(base string) ResolverOption {
	return func(r *Resolver) {
		r.base = routepath.NormalizeBase(base)
	}
}

// WithNotFound sets the fallback route for unmatched paths.
func WithNotFound(route Route) ResolverOption {
	return func(r *Resolver) {
		r.notFound = route
	}
}

// NewResolver creates a resolver over table.
func NewResolver(table *Table, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		table:    table,
		base:     "/",
		notFound: DefaultNotFound,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Table returns the route table.
func (r *Resolver) Table() *Table { return r.table }

// Base returns the normalized deployment base.
func (r *Resolver) Base() string { return r.base }

// NotFound returns the fallback route.
func (r *Resolver) NotFound() Route { return r.notFound }

// Resolve matches target against the table.
//
// For a path target that matches nothing, the returned Resolved holds the
// not-found route with Matched false, and the error is a *RouteNotFoundError.
// For an unknown name the Resolved is zero. Invalid paths fail with a
// routepath error.
func (r *Resolver) Resolve(target Target) (Resolved, error) {
	if target.Name != "" {
		return r.resolveNamed(target)
	}
	return r.resolvePath(target)
}

func (r *Resolver) resolvePath(target Target) (Resolved, error) {
	p, err := routepath.ValidateNavPath(target.Path)
	if err != nil {
		return Resolved{}, fmt.Errorf("resolve %q: %w", target.Path, err)
	}

	loc := ParseLocation(p)
	loc.Query = mergeQuery(loc.Query, target.Query)
	if target.Hash != "" {
		loc.Hash = target.Hash
	}

	route, ok := r.table.ByPath(loc.Path)
	if !ok {
		return r.Fallback(loc), &RouteNotFoundError{Path: loc.Path}
	}
	return r.resolved(route, loc, true), nil
}

func (r *Resolver) resolveNamed(target Target) (Resolved, error) {
	route, ok := r.table.ByName(target.Name)
	if !ok {
		return Resolved{}, &RouteNotFoundError{Name: target.Name}
	}
	loc := Location{
		Path:  route.Path,
		Query: mergeQuery("", target.Query),
		Hash:  target.Hash,
	}
	return r.resolved(route, loc, true), nil
}

// Fallback returns the not-found resolution for loc.
func (r *Resolver) Fallback(loc Location) Resolved {
	return r.resolved(r.notFound, loc, false)
}

// Href resolves target and returns its address-bar form.
func (r *Resolver) Href(target Target) (string, error) {
	res, err := r.Resolve(target)
	if err != nil && !res.hasLocation() {
		return "", err
	}
	return res.Href, nil
}

func (r *Resolver) resolved(route Route, loc Location, matched bool) Resolved {
	return Resolved{
		Route:    route,
		Location: loc,
		Href:     routepath.JoinBase(r.base, loc.String()),
		Matched:  matched,
	}
}

func (r Resolved) hasLocation() bool {
	return r.Location.Path != ""
}

// mergeQuery adds values to a raw query string. The raw string is kept as is
// when there is nothing to merge, and values are appended to it verbatim
// when it does not parse.
func mergeQuery(raw string, values url.Values) string {
	if len(values) == 0 {
		return raw
	}
	merged, err := url.ParseQuery(raw)
	if err != nil {
		return raw + "&" + values.Encode()
	}
	for k, vs := range values {
		merged[k] = append([]string(nil), vs...)
	}
	return merged.Encode()
}
