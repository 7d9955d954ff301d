package views

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/notekeeper/notesweb/pkg/routepath"
)

// ShellData is what the page shell needs besides the view.
type ShellData struct {
	// Base is the normalized deployment base.
	Base string

	// Title is the document title.
	Title string

	// Route is the name of the route being shown.
	Route string

	// ClientVersion is appended to the client script URL to bust caches.
	ClientVersion string
}

// Shell wraps a view in the document served on full page loads.
// The view is rendered inside #app, which the client script swaps on
// every render command.
func Shell(data ShellData, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		script := routepath.JoinBase(data.Base, "/_nav/client.js")
		if data.ClientVersion != "" {
			script += "?v=" + data.ClientVersion
		}

		var p page
		p.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		p.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		p.raw(`<title>`)
		p.text(data.Title)
		p.raw(`</title><link rel="stylesheet" href="`)
		p.attr(routepath.JoinBase(data.Base, "/assets/app.css"))
		p.raw(`"></head><body data-base="`)
		p.attr(data.Base)
		p.raw(`"><main id="app" data-route="`)
		p.attr(data.Route)
		p.raw(`">`)
		p.child(ctx, body)
		p.raw(`</main><script src="`)
		p.attr(script)
		p.raw(`" defer></script></body></html>`)
		return p.flush(w)
	})
}
