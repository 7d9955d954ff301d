package views

import (
	"fmt"
	"sync"

	"github.com/a-h/templ"

	"github.com/notekeeper/notesweb/pkg/router"
)

// View references of the application.
const (
	Note     router.ViewRef = "note"
	SignUp   router.ViewRef = "signup"
	SignIn   router.ViewRef = "signin"
	NotFound router.ViewRef = "not-found"
)

// Context is what a view is rendered with.
type Context struct {
	// Resolved is the route being shown.
	Resolved router.Resolved

	// Resolver builds hrefs for links inside the view.
	Resolver *router.Resolver
}

// Href returns the href of target, or "#" when it cannot be resolved.
func (c Context) Href(target router.Target) string {
	if c.Resolver == nil {
		return "#"
	}
	href, err := c.Resolver.Href(target)
	if err != nil {
		return "#"
	}
	return href
}

// ViewFunc builds the component of a view.
type ViewFunc func(c Context) templ.Component

// Registry maps view references to view functions.
// It is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	views map[router.ViewRef]ViewFunc
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{views: make(map[router.ViewRef]ViewFunc)}
}

// Default returns a registry holding the application views.
func Default() *Registry {
	r := NewRegistry()
	r.MustRegister(Note, NoteView)
	r.MustRegister(SignUp, SignUpView)
	r.MustRegister(SignIn, SignInView)
	r.MustRegister(NotFound, NotFoundView)
	return r
}

// Register binds ref to fn. Registering a reference twice is an error.
func (r *Registry) Register(ref router.ViewRef, fn ViewFunc) error {
	if ref == "" || fn == nil {
		return fmt.Errorf("views: invalid registration for %q", ref)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.views[ref]; ok {
		return fmt.Errorf("views: view %q already registered", ref)
	}
	r.views[ref] = fn
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(ref router.ViewRef, fn ViewFunc) {
	if err := r.Register(ref, fn); err != nil {
		panic(err)
	}
}

// Lookup returns the view function bound to ref.
func (r *Registry) Lookup(ref router.ViewRef) (ViewFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.views[ref]
	return fn, ok
}

// Has reports whether ref is registered.
func (r *Registry) Has(ref router.ViewRef) bool {
	_, ok := r.Lookup(ref)
	return ok
}

// Component returns the component for c.Resolved. Unknown references
// render the not-found view, or an empty component if there is none.
func (r *Registry) Component(c Context) templ.Component {
	if fn, ok := r.Lookup(c.Resolved.View()); ok {
		return fn(c)
	}
	if fn, ok := r.Lookup(NotFound); ok {
		return fn(c)
	}
	return templ.NopComponent
}
