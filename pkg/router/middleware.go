package router

import "context"

// Navigation is what middleware sees of a navigation being committed.
type Navigation struct {
	// Context carries deadlines and trace spans for the navigation.
	Context context.Context

	Kind NavigationKind
	From Resolved
	To   Resolved
}

// Middleware observes committed navigations.
//
// Middleware cannot block or redirect a navigation: the commit runs exactly
// once whether or not next is called, and errors returned by middleware are
// logged, not propagated.
type Middleware interface {
	Handle(nav *Navigation, next func() error) error
}

// MiddlewareFunc is a function adapter for Middleware.
type MiddlewareFunc func(nav *Navigation, next func() error) error

// Handle implements Middleware.
func (f MiddlewareFunc) Handle(nav *Navigation, next func() error) error {
	return f(nav, next)
}

// ComposeMiddleware runs mw in order (first to last) around commit.
// commit runs exactly once.
func ComposeMiddleware(nav *Navigation, mw []Middleware, commit func()) error {
	committed := false
	handler := func() error {
		if !committed {
			committed = true
			commit()
		}
		return nil
	}

	chain := handler
	for i := len(mw) - 1; i >= 0; i-- {
		m := mw[i]
		next := chain
		chain = func() error {
			return m.Handle(nav, next)
		}
	}

	err := chain()
	if !committed {
		handler()
	}
	return err
}

// Chain creates a middleware that combines multiple middleware in order.
func Chain(middleware ...Middleware) Middleware {
	return MiddlewareFunc(func(nav *Navigation, next func() error) error {
		var nextErr error
		err := ComposeMiddleware(nav, middleware, func() { nextErr = next() })
		if err != nil {
			return err
		}
		return nextErr
	})
}
