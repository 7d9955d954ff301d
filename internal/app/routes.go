package app

import (
	"fmt"

	"github.com/notekeeper/notesweb/internal/errors"
	"github.com/notekeeper/notesweb/internal/views"
	"github.com/notekeeper/notesweb/pkg/router"
)

// Routes returns the route table of the notes web client.
func Routes() []router.Route {
	return []router.Route{
		{Path: "/", Name: "note", View: views.Note},
		{Path: "/signup", Name: "signup", View: views.SignUp},
		{Path: "/signin", Name: "signin", View: views.SignIn},
	}
}

// NotFoundRoute is shown for paths no route matches.
var NotFoundRoute = router.Route{Name: "not-found", View: views.NotFound}

// NewResolver validates routes and builds a resolver for base.
// Every view must be registered in registry.
func NewResolver(base string, routes []router.Route, registry *views.Registry) (*router.Resolver, error) {
	table, err := router.NewTable(routes...)
	if err != nil {
		if router.IsDuplicate(err) {
			return nil, errors.New("E201").Wrap(err)
		}
		return nil, errors.New("E203").Wrap(err)
	}

	for _, route := range table.Routes() {
		if !registry.Has(route.View) {
			return nil, errors.New("E203").
				WithDetail(fmt.Sprintf("route %q shows view %q, which is not registered", route.Name, route.View))
		}
	}

	return router.NewResolver(table,
		router.WithBase(base),
		router.WithNotFound(NotFoundRoute),
	), nil
}
