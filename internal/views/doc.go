// Package views renders the views bound to the route table.
//
// Routes carry an opaque router.ViewRef. A Registry maps each reference to a
// function building a templ.Component for the resolved route; references
// without an entry render the not-found view. The Renderer renders a view
// alone, for the history bridge, or wrapped in the page shell for full page
// loads.
package views
