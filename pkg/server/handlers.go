package server

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/notekeeper/notesweb/pkg/router"
	"github.com/notekeeper/notesweb/pkg/routepath"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write([]byte("ok"))
}

// servePage renders the full document for a first page load. Non-canonical
// paths are redirected to their canonical form; unknown paths render the
// not-found view with a 404.
func (s *Server) servePage(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.EscapedPath()
	appPath, ok := routepath.StripBase(s.config.Base, raw)
	if !ok {
		http.NotFound(w, r)
		return
	}

	canon, err := routepath.CanonicalizePath(appPath)
	if err != nil {
		s.logger.Warn("invalid request path", "path", raw, "error", err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if canon.Changed {
		target := routepath.JoinBase(s.config.Base, canon.Path)
		if r.URL.RawQuery != "" {
			target += "?" + r.URL.RawQuery
		}
		http.Redirect(w, r, target, http.StatusPermanentRedirect)
		return
	}

	target := routepath.Join(canon.Path, r.URL.RawQuery, "")
	res, err := s.config.Resolver.Resolve(router.Path(target))
	status := http.StatusOK
	if err != nil {
		if !router.IsNotFound(err) {
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}
		status = http.StatusNotFound
	}

	var buf bytes.Buffer
	if err := s.config.Renderer.Page(r.Context(), &buf, res); err != nil {
		s.logger.Error("page render failed", "path", target, "route", res.Name(), "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = buf.WriteTo(w)
}

// serveClient serves the navigation client script with ETag revalidation.
func (s *Server) serveClient(w http.ResponseWriter, r *http.Request) {
	if len(s.config.ClientJS) == 0 {
		http.Error(w, "Navigation client not available", http.StatusNotFound)
		return
	}

	etag := fmt.Sprintf("%q", s.config.ClientVersion)
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	if r.URL.Query().Get("v") == s.config.ClientVersion && s.config.ClientVersion != "" {
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	} else {
		w.Header().Set("Cache-Control", "public, max-age=0, must-revalidate")
	}

	if etagMatches(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(s.config.ClientJS)
}

func etagMatches(ifNoneMatchHeader, etag string) bool {
	if ifNoneMatchHeader == "" || etag == "" {
		return false
	}
	// If-None-Match may list several tags: "abc", W/"def"
	for _, part := range strings.Split(ifNoneMatchHeader, ",") {
		candidate := strings.TrimSpace(part)
		if candidate == etag || candidate == "*" {
			return true
		}
		if strings.HasPrefix(candidate, "W/") && strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}

// requestLogger logs one line per request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		level := slogLevelFor(status)
		s.logger.Log(r.Context(), level, "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start))
	})
}

func slogLevelFor(status int) slog.Level {
	switch {
	case status >= 500:
		return slog.LevelError
	case status >= 400:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
