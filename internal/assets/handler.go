package assets

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
)

// CacheMode selects the Cache-Control policy of served assets.
type CacheMode int

const (
	// CacheProduction caches fingerprinted files for a year and revalidates
	// the rest hourly.
	CacheProduction CacheMode = iota

	// CacheNone disables caching, for development.
	CacheNone
)

// Handler serves assets from src. The request path, without its leading
// slash, is the asset name; mount it behind http.StripPrefix.
func Handler(src Source, mode CacheMode) http.Handler {
	logger := slog.Default().With("component", "assets")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}

		obj, err := src.Open(r.Context(), strings.TrimPrefix(r.URL.Path, "/"))
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound), errors.Is(err, ErrInvalidName):
				http.NotFound(w, r)
			default:
				logger.Error("open asset failed", "path", r.URL.Path, "error", err)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
			return
		}
		defer obj.Body.Close()

		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		if obj.ContentType != "" {
			h.Set("Content-Type", obj.ContentType)
		}
		if obj.ETag != "" {
			h.Set("ETag", obj.ETag)
		}
		switch {
		case mode == CacheNone:
			h.Set("Cache-Control", "no-store, no-cache, must-revalidate")
		case isFingerprinted(r.URL.Path):
			h.Set("Cache-Control", "public, max-age=31536000, immutable")
		default:
			h.Set("Cache-Control", "public, max-age=3600, must-revalidate")
		}

		if rs, ok := obj.Body.(io.ReadSeeker); ok {
			http.ServeContent(w, r, r.URL.Path, obj.ModTime, rs)
			return
		}

		if obj.ETag != "" && r.Header.Get("If-None-Match") == obj.ETag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		if obj.Size > 0 {
			h.Set("Content-Length", strconv.FormatInt(obj.Size, 10))
		}
		if !obj.ModTime.IsZero() {
			h.Set("Last-Modified", obj.ModTime.UTC().Format(http.TimeFormat))
		}
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodHead {
			return
		}
		if _, err := io.Copy(w, obj.Body); err != nil {
			logger.Warn("write asset failed", "path", r.URL.Path, "error", err)
		}
	})
}
