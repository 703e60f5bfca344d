package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-melon-sync/internal/logger"
	"github.com/go-chi/chi/v5"
)

// withLogging writes one access log line per request. The route field holds
// the matched chi pattern, so document ids do not spread across log keys;
// the collection is logged on its own.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		uri := r.RequestURI
		method := r.Method

		lw := &responseWriter{
			ResponseWriter: w,
		}

		next.ServeHTTP(lw, r)

		var route, collection string
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			route = rctx.RoutePattern()
			collection = rctx.URLParam("collection")
		}

		event := logger.FromRequest(r).Info()
		if lw.Status() >= http.StatusInternalServerError {
			event = logger.FromRequest(r).Warn()
		}

		event.
			Str("uri", uri).
			Str("route", route).
			Str("collection", collection).
			Str("method", method).
			Int("status", lw.Status()).
			Dur("duration", time.Since(start)).
			Int("size", lw.size).
			Send()
	})
}
