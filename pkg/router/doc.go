// Package router implements the navigation table of the notes application.
//
// The router provides:
//   - An ordered, immutable route table of literal paths bound to named views
//   - Resolution of a navigation target, by path or by name, to a view
//   - A history binding exposing NavigateTo, CurrentRoute, Back and Forward
//   - Observational middleware around every committed navigation
//
// # Route Table
//
// Each route binds a literal path and a unique name to an opaque view
// reference. The host application turns view references into renderable
// units; the router never renders anything.
//
//	table, err := router.NewTable(
//	    router.Route{Path: "/", Name: "note", View: "note"},
//	    router.Route{Path: "/signup", Name: "signup", View: "signup"},
//	    router.Route{Path: "/signin", Name: "signin", View: "signin"},
//	)
//
// Two routes sharing a name or a path make NewTable fail with a
// *DuplicateRouteError.
//
// # Matching
//
// Paths match by exact, case-sensitive comparison; the first route in table
// order wins. Names match exactly, independent of order. A path that matches
// nothing resolves to the not-found route and reports a *RouteNotFoundError.
//
// # Navigation
//
//	r := router.NewRouter(router.NewResolver(table), history.NewMemory("/"))
//	r.NavigateTo(ctx, router.Path("/signup"))
//	r.NavigateTo(ctx, router.Named("note", nil), router.WithReplace())
//	r.Back()
//	current := r.CurrentRoute()
//
// Navigating to the current location is a no-op. An unknown path is
// committed and shows the not-found view, so the address bar and the view
// stay consistent. An unknown name is rejected and nothing changes.
package router
