// Package history models the browser's session history as seen by the router.
//
// The router never owns the history stack. It reads the current location and
// asks for changes through the History interface:
//
//	Push(to, state)     add an entry (history.pushState)
//	Replace(to, state)  overwrite the current entry (history.replaceState)
//	Go(delta)           traverse (history.back/forward/go)
//	Listen(fn)          be told when a traversal lands on another entry
//
// Two implementations are provided. Memory keeps the stack in process and is
// used by tests and the CLI. Web mirrors a real browser tab: mutations are sent
// to the tab as protocol commands, and the tab reports popstate events back
// through HandlePopState.
//
// All locations handled by this package are application paths: the
// deployment base is stripped on the way in and added back by CreateHref.
package history
