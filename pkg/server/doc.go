// Package server serves the notes web client.
//
// A first page load is rendered on the server: the request path is
// canonicalized (non-canonical paths get a 308 redirect), resolved against
// the route table and rendered inside the page shell, with a 404 status for
// paths no route matches.
//
// The shell loads the navigation client from "{base}/_nav/client.js",
// which opens a WebSocket at "{base}/_nav/ws". Each connection is a
// Session owning one router. The protocol is JSON:
//
//	client → server  {"type":"hello","path":"/notes/","position":0}
//	                 {"type":"navigate","path":"/notes/signup"}
//	                 {"type":"navigate","name":"signin","replace":true}
//	                 {"type":"popstate","path":"/notes/","position":0}
//
//	server → client  {"op":"push","url":"/notes/signup"}
//	                 {"op":"render","route":"signup","view":"signup","html":"...","status":200}
//	                 {"op":"error","error":{"code":"route_not_found","message":"..."}}
//
// In HistoryWeb mode navigations are mirrored into the browser history and
// back/forward arrive as popstate events. In HistoryMemory mode the history
// lives in the session and the address bar does not change.
//
// Other endpoints: "/healthz", the Prometheus endpoint when configured, and
// "{base}/assets/*" for static files.
package server
