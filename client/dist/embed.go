package clientdist

import (
	"crypto/sha256"
	_ "embed"
	"fmt"
)

// NavJS is the navigation client served at "{base}/_nav/client.js".
//
//go:embed nav.js
var NavJS []byte

// Version is a short content hash of NavJS, used to bust caches.
var Version = func() string {
	sum := sha256.Sum256(NavJS)
	return fmt.Sprintf("%x", sum[:6])
}()
