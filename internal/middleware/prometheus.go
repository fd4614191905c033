package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/Kingsheunn/Diary/internal/metrics"
	"github.com/go-chi/chi/v5"
)

// Prometheus records request duration and count for each request, labelled by the matched
// chi route pattern. Requests that never reach a route (rejected by auth, unknown paths) fall
// back to the request path with numeric ids collapsed. Scrapes of /metrics are not counted.
func Prometheus(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		statusW := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(statusW, r)
		if strings.HasSuffix(r.URL.Path, "/metrics") {
			return
		}
		metrics.RecordRequest(r.Method, routeLabel(r), statusW.status, time.Since(start).Seconds())
	})
}

func routeLabel(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return strings.Replace(pattern, "/*/", "/", -1)
		}
	}
	if r.URL.Path == "" {
		return "/"
	}
	return r.URL.Path
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
