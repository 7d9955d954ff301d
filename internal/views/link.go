package views

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/notekeeper/notesweb/pkg/router"
)

// Link creates an anchor navigating to target without a page reload.
// The client script intercepts clicks on anchors carrying data-link and
// sends a navigate event instead.
func Link(c Context, target router.Target, text string) templ.Component {
	return link(c, target, text, "")
}

// NavLink is a Link that carries the "active" class when target is the
// current route.
func NavLink(c Context, target router.Target, text string) templ.Component {
	class := ""
	if isActive(c, target) {
		class = "active"
	}
	return link(c, target, text, class)
}

func link(c Context, target router.Target, text, class string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var p page
		p.raw(`<a href="`)
		p.attr(c.Href(target))
		p.raw(`" data-link="true"`)
		if target.Name != "" {
			p.raw(` data-route="`)
			p.attr(target.Name)
			p.raw(`"`)
		}
		if class != "" {
			p.raw(` class="`)
			p.attr(class)
			p.raw(`" aria-current="page"`)
		}
		p.raw(`>`)
		p.text(text)
		p.raw(`</a>`)
		return p.flush(w)
	})
}

// isActive reports whether target resolves to the route being shown.
func isActive(c Context, target router.Target) bool {
	if !c.Resolved.Matched || c.Resolver == nil {
		return false
	}
	res, err := c.Resolver.Resolve(target)
	if err != nil {
		return false
	}
	return res.Name() == c.Resolved.Name()
}
