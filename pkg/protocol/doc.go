// Package protocol defines the frames exchanged between the server and the
// browser thin client over the navigation WebSocket.
//
// The browser owns the real history stack. The server never touches it
// directly: it sends commands asking the client to push, replace or traverse,
// and the client reports what actually happened with events.
//
// # Events (client → server)
//
//	{"seq":1,"type":"hello","path":"/app/signup"}     initial page load
//	{"seq":2,"type":"navigate","path":"/app/signin"}  link click
//	{"seq":3,"type":"navigate","name":"note"}         named navigation
//	{"seq":4,"type":"popstate","path":"/app/signup","position":1}  back / forward
//
// Paths in events are browser paths and include the deployment base.
//
// # Commands (server → client)
//
//	{"op":"push","url":"/app/signin"}
//	{"op":"replace","url":"/app/"}
//	{"op":"go","delta":-1}
//	{"op":"render","route":"signin","view":"signin","html":"...","status":200}
//	{"op":"error","error":{"code":"route_not_found","message":"..."}}
//
// Frames are JSON text messages, one frame per WebSocket message.
package protocol
