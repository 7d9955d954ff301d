package views

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/notekeeper/notesweb/pkg/router"
)

// titles maps views to document titles.
var titles = map[router.ViewRef]string{
	Note:     "Notes",
	SignUp:   "Sign up",
	SignIn:   "Sign in",
	NotFound: "Page not found",
}

// Renderer renders resolved routes to HTML.
type Renderer struct {
	registry      *Registry
	resolver      *router.Resolver
	clientVersion string
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithClientVersion sets the cache-busting version of the client script.
func WithClientVersion(version string) RendererOption {
	return func(r *Renderer) {
		r.clientVersion = version
	}
}

// NewRenderer creates a renderer over registry. resolver builds link hrefs.
func NewRenderer(registry *Registry, resolver *router.Resolver, opts ...RendererOption) *Renderer {
	r := &Renderer{registry: registry, resolver: resolver}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render renders the view of res alone.
func (r *Renderer) Render(ctx context.Context, res router.Resolved) (string, error) {
	var b strings.Builder
	c := Context{Resolved: res, Resolver: r.resolver}
	if err := r.registry.Component(c).Render(ctx, &b); err != nil {
		return "", fmt.Errorf("render view %q: %w", res.View(), err)
	}
	return b.String(), nil
}

// Page renders the view of res inside the page shell.
func (r *Renderer) Page(ctx context.Context, w io.Writer, res router.Resolved) error {
	c := Context{Resolved: res, Resolver: r.resolver}
	data := ShellData{
		Base:          r.resolver.Base(),
		Title:         Title(res),
		Route:         res.Name(),
		ClientVersion: r.clientVersion,
	}
	if err := Shell(data, r.registry.Component(c)).Render(ctx, w); err != nil {
		return fmt.Errorf("render page %q: %w", res.View(), err)
	}
	return nil
}

// Title returns the document title for res.
func Title(res router.Resolved) string {
	if t, ok := titles[res.View()]; ok {
		return t
	}
	if res.Name() != "" {
		return res.Name()
	}
	return titles[NotFound]
}
