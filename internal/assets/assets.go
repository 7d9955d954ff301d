// Package assets serves the static files of the application from a local
// directory or an S3 bucket.
package assets

import (
	"context"
	"errors"
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// Errors returned by sources.
var (
	ErrNotFound    = errors.New("asset not found")
	ErrInvalidName = errors.New("invalid asset name")
)

// Object is an opened asset. Callers must close Body.
type Object struct {
	Body        io.ReadCloser
	Size        int64
	ModTime     time.Time
	ContentType string
	ETag        string
}

// Source opens assets by their slash-separated relative name.
type Source interface {
	Open(ctx context.Context, name string) (*Object, error)
}

// CleanName validates a requested asset name and returns its clean form.
// Traversal, absolute names, NUL bytes and backslashes are rejected instead
// of being cleaned away, so a request can never change meaning.
func CleanName(name string) (string, error) {
	if name == "" {
		return "", ErrInvalidName
	}
	if strings.IndexByte(name, 0) != -1 || strings.Contains(name, "\\") {
		return "", ErrInvalidName
	}
	if strings.HasPrefix(name, "/") {
		return "", ErrInvalidName
	}
	for _, seg := range strings.Split(name, "/") {
		if seg == "." || seg == ".." {
			return "", ErrInvalidName
		}
	}

	clean := path.Clean(name)
	if clean == "." || strings.HasPrefix(clean, "../") || strings.HasPrefix(clean, "/") {
		return "", ErrInvalidName
	}

	osPath := filepath.FromSlash(clean)
	if filepath.IsAbs(osPath) || filepath.VolumeName(osPath) != "" {
		return "", ErrInvalidName
	}
	return clean, nil
}

// isFingerprinted reports whether a file name carries a content hash,
// e.g. "app.a1b2c3d4.css".
func isFingerprinted(name string) bool {
	parts := strings.Split(path.Base(name), ".")
	if len(parts) < 3 {
		return false
	}
	hash := parts[len(parts)-2]
	if len(hash) < 8 {
		return false
	}
	for _, c := range hash {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')) {
			return false
		}
	}
	return true
}
