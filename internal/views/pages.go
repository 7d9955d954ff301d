package views

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/notekeeper/notesweb/pkg/router"
)

// NoteView lists the notes of the signed-in user.
func NoteView(c Context) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var p page
		p.raw(`<section class="view view-note" data-view="note">`)
		p.raw(`<header><h1>Notes</h1><nav>`)
		p.child(ctx, NavLink(c, router.Named("signin", nil), "Sign in"))
		p.child(ctx, NavLink(c, router.Named("signup", nil), "Sign up"))
		p.raw(`</nav></header>`)
		formOpen(&p, c, "note-editor", "note")
		p.raw(`<label for="note-title">Title</label>`)
		p.raw(`<input id="note-title" name="title" type="text" required>`)
		p.raw(`<label for="note-body">Note</label>`)
		p.raw(`<textarea id="note-body" name="body" rows="8"></textarea>`)
		p.raw(`<button type="submit">Save</button></form>`)
		p.raw(`<ul class="note-list" aria-live="polite"></ul></section>`)
		return p.flush(w)
	})
}

// SignUpView is the account creation form.
func SignUpView(c Context) templ.Component {
	return credentialsForm(c, "signup", "Sign up", "Create account", "signin",
		router.Named("signin", nil), "Already have an account? Sign in")
}

// SignInView is the sign-in form.
func SignInView(c Context) templ.Component {
	return credentialsForm(c, "signin", "Sign in", "Sign in", "note",
		router.Named("signup", nil), "No account yet? Sign up")
}

// formOpen starts a form that never issues a request of its own. The
// navigation client intercepts submit and moves to the route named next.
// Without the client the browser falls back to a GET of the current page.
func formOpen(p *page, c Context, class, next string) {
	p.raw(`<form class="`)
	p.attr(class)
	p.raw(`" data-nav-form="true" data-route="`)
	p.attr(next)
	p.raw(`" data-href="`)
	p.attr(c.Href(router.Named(next, nil)))
	p.raw(`">`)
}

func credentialsForm(c Context, view, title, submit, next string, alt router.Target, altText string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var p page
		p.raw(`<section class="view view-`)
		p.attr(view)
		p.raw(`" data-view="`)
		p.attr(view)
		p.raw(`"><h1>`)
		p.text(title)
		p.raw(`</h1>`)
		formOpen(&p, c, "credentials", next)
		// Unnamed inputs keep credentials out of a fallback GET's query.
		p.raw(`<label for="name">User ID</label>`)
		p.raw(`<input id="name" type="text" autocomplete="username" required>`)
		p.raw(`<label for="password">Password</label>`)
		p.raw(`<input id="password" type="password" required>`)
		p.raw(`<button type="submit">`)
		p.text(submit)
		p.raw(`</button></form><p>`)
		p.child(ctx, Link(c, alt, altText))
		p.raw(`</p></section>`)
		return p.flush(w)
	})
}

// NotFoundView is shown for paths without a route.
func NotFoundView(c Context) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var p page
		p.raw(`<section class="view view-not-found" data-view="not-found"><h1>Page not found</h1><p>Nothing lives at <code>`)
		p.text(c.Resolved.Location.Path)
		p.raw(`</code>.</p><p>`)
		p.child(ctx, Link(c, router.Named("note", nil), "Back to your notes"))
		p.raw(`</p></section>`)
		return p.flush(w)
	})
}
