package router

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/notekeeper/notesweb/pkg/history"
)

// Router binds a Resolver to a History and tracks the current route.
//
// A Router serves a single history (one browser tab). Its methods are safe
// for concurrent use; navigations are committed one at a time in call order.
type Router struct {
	mu         sync.Mutex
	resolver   *Resolver
	history    history.History
	current    Resolved
	middleware []Middleware
	baseCtx    context.Context
	logger     *slog.Logger

	listenersMu sync.Mutex
	listeners   map[int]func(Change)
	nextID      int

	unlisten func()
}

// Option configures a Router.
type Option func(*Router)

// WithMiddleware adds middleware, including for the initial resolution.
func WithMiddleware(mw ...Middleware) Option {
	return func(r *Router) {
		r.middleware = append(r.middleware, mw...)
	}
}

// WithContext sets the context used for navigations that have none of their
// own, such as the initial resolution and back/forward traversals.
func WithContext(ctx context.Context) Option {
	return func(r *Router) {
		r.baseCtx = ctx
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		r.logger = logger
	}
}

// NewRouter creates a router over h, resolves h's current location and
// subscribes to its traversals.
func NewRouter(resolver *Resolver, h history.History, opts ...Option) *Router {
	r := &Router{
		resolver:  resolver,
		history:   h,
		baseCtx:   context.Background(),
		logger:    slog.Default().With("component", "router"),
		listeners: make(map[int]func(Change)),
	}
	for _, opt := range opts {
		opt(r)
	}

	initial := r.resolveLocation(h.Location())
	nav := &Navigation{Context: r.baseCtx, Kind: KindInitial, To: initial}
	if err := ComposeMiddleware(nav, r.middleware, func() { r.current = initial }); err != nil {
		r.logger.Warn("navigation middleware error", "kind", KindInitial.String(), "error", err)
	}
	if !initial.Matched {
		r.logger.Warn("route not found", "path", initial.Location.Path, "kind", KindInitial.String())
	}

	r.unlisten = h.Listen(r.handlePop)
	return r
}

// Resolver returns the router's resolver.
func (r *Router) Resolver() *Resolver { return r.resolver }

// History returns the router's history.
func (r *Router) History() history.History { return r.history }

// Use adds middleware for subsequent navigations.
func (r *Router) Use(mw ...Middleware) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.middleware = append(r.middleware, mw...)
}

// CurrentRoute returns the current resolution.
func (r *Router) CurrentRoute() Resolved {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// NavigateTo resolves target and moves the history to it.
//
// The history entry is pushed unless WithReplace is given. Navigating to the
// current location changes nothing. A path that matches no route is still
// committed and shows the not-found route; the *RouteNotFoundError is
// returned for information. An unknown name or an invalid path is rejected:
// the error is returned and nothing changes.
func (r *Router) NavigateTo(ctx context.Context, target Target, opts ...NavigateOption) error {
	var options NavigateOptions
	for _, opt := range opts {
		opt(&options)
	}
	target = options.apply(target)

	resolved, err := r.resolver.Resolve(target)
	if err != nil && !isPathMiss(err) {
		r.logger.Warn("navigation rejected", "target", target.String(), "error", err)
		return err
	}

	kind := KindPush
	if options.Replace {
		kind = KindReplace
	}

	if ctx == nil {
		ctx = r.baseCtx
	}

	var (
		from      Resolved
		unchanged bool
		mwErr     error
	)
	func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		from = r.current
		if from.FullPath() == resolved.FullPath() && r.history.Location() == resolved.FullPath() {
			unchanged = true
			return
		}
		nav := &Navigation{Context: ctx, Kind: kind, From: from, To: resolved}
		mwErr = ComposeMiddleware(nav, r.middleware, func() {
			if kind == KindReplace {
				r.history.Replace(resolved.FullPath(), history.State{})
			} else {
				r.history.Push(resolved.FullPath(), history.State{})
			}
			r.current = resolved
		})
	}()
	if unchanged {
		return err
	}

	if mwErr != nil {
		r.logger.Warn("navigation middleware error", "kind", kind.String(), "error", mwErr)
	}
	if !resolved.Matched {
		r.logger.Warn("route not found", "path", resolved.Location.Path, "kind", kind.String())
	}

	r.emit(Change{Kind: kind, From: from, To: resolved})
	return err
}

// Back asks the history to go back one entry.
func (r *Router) Back() { r.Go(-1) }

// Forward asks the history to go forward one entry.
func (r *Router) Forward() { r.Go(1) }

// Go asks the history to traverse by delta entries. The current route
// follows once the history reports the traversal.
func (r *Router) Go(delta int) {
	r.history.Go(delta)
}

// OnChange registers fn to be called after every committed navigation.
// It returns a function that removes the registration.
func (r *Router) OnChange(fn func(Change)) (remove func()) {
	r.listenersMu.Lock()
	id := r.nextID
	r.nextID++
	r.listeners[id] = fn
	r.listenersMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			r.listenersMu.Lock()
			delete(r.listeners, id)
			r.listenersMu.Unlock()
		})
	}
}

// Close detaches the router from its history.
func (r *Router) Close() {
	if r.unlisten != nil {
		r.unlisten()
	}
}

// handlePop follows a traversal reported by the history.
func (r *Router) handlePop(to, _ string, info history.PopInfo) {
	resolved := r.resolveLocation(to)

	var (
		from  Resolved
		mwErr error
	)
	func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		from = r.current
		nav := &Navigation{Context: r.baseCtx, Kind: KindPop, From: from, To: resolved}
		mwErr = ComposeMiddleware(nav, r.middleware, func() { r.current = resolved })
	}()

	if mwErr != nil {
		r.logger.Warn("navigation middleware error", "kind", KindPop.String(), "error", mwErr)
	}
	if !resolved.Matched {
		r.logger.Warn("route not found", "path", resolved.Location.Path, "kind", KindPop.String())
	}

	r.emit(Change{Kind: KindPop, From: from, To: resolved, Delta: info.Delta})
}

// resolveLocation resolves a location reported by the history. Locations
// that cannot even be parsed as paths show the not-found route.
func (r *Router) resolveLocation(fullPath string) Resolved {
	resolved, err := r.resolver.Resolve(Path(fullPath))
	if err != nil && !isPathMiss(err) {
		r.logger.Warn("invalid history location", "location", fullPath, "error", err)
		return r.resolver.Fallback(ParseLocation(fullPath))
	}
	return resolved
}

func (r *Router) emit(change Change) {
	r.listenersMu.Lock()
	fns := make([]func(Change), 0, len(r.listeners))
	for id := 0; id < r.nextID; id++ {
		if fn, ok := r.listeners[id]; ok {
			fns = append(fns, fn)
		}
	}
	r.listenersMu.Unlock()

	for _, fn := range fns {
		fn(change)
	}
}

// isPathMiss reports whether err is a path (not name) resolution miss.
func isPathMiss(err error) bool {
	var nf *RouteNotFoundError
	return errors.As(err, &nf) && nf.Name == ""
}
