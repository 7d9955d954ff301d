package router

import "fmt"

// Table is an ordered, immutable collection of routes.
// It is safe for concurrent use.
type Table struct {
	routes []Route
	byName map[string]int
}

// NewTable validates routes and builds a table in the given order.
// It fails with a *DuplicateRouteError when two routes share a name or a
// path, and with ErrInvalidRoute for malformed definitions.
func NewTable(routes ...Route) (*Table, error) {
	if err := validateRoutes(routes); err != nil {
		return nil, err
	}

	t := &Table{
		routes: append([]Route(nil), routes...),
		byName: make(map[string]int, len(routes)),
	}
	for i, route := range t.routes {
		t.byName[route.Name] = i
	}
	return t, nil
}

// MustNewTable is like NewTable but panics on error.
func MustNewTable(routes ...Route) *Table {
	t, err := NewTable(routes...)
	if err != nil {
		panic(fmt.Sprintf("router: %v", err))
	}
	return t
}

// Routes returns a copy of the routes in table order.
func (t *Table) Routes() []Route {
	return append([]Route(nil), t.routes...)
}

// Len returns the number of routes.
func (t *Table) Len() int {
	return len(t.routes)
}

// ByName looks a route up by its exact name.
func (t *Table) ByName(name string) (Route, bool) {
	i, ok := t.byName[name]
	if !ok {
		return Route{}, false
	}
	return t.routes[i], true
}

// ByPath returns the first route, in table order, whose path equals path.
// The comparison is exact and case-sensitive.
func (t *Table) ByPath(path string) (Route, bool) {
	for _, route := range t.routes {
		if route.Path == path {
			return route, true
		}
	}
	return Route{}, false
}
