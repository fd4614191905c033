package middleware

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Kingsheunn/Diary/internal/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMaxBytes(t *testing.T) {
	var readErr error
	h := MaxBytes(8)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, readErr = io.ReadAll(r.Body)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/entries", strings.NewReader("0123456789")))
	var tooLarge *http.MaxBytesError
	if !errors.As(readErr, &tooLarge) {
		t.Errorf("POST over limit: got %v, want *http.MaxBytesError", readErr)
	}

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPut, "/entries/1", strings.NewReader("01234567")))
	if readErr != nil {
		t.Errorf("PUT at limit: %v", readErr)
	}

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodDelete, "/entries/1", strings.NewReader("0123456789")))
	if readErr != nil {
		t.Errorf("DELETE is not limited: %v", readErr)
	}
}

func TestPrometheus_RoutePatternLabel(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Prometheus)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/entries/{id}", func(w http.ResponseWriter, r *http.Request) {})
	})

	counter := metrics.RequestTotal.WithLabelValues(http.MethodGet, "/api/v1/entries/{id}", "200")
	before := testutil.ToFloat64(counter)
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/entries/42", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/entries/7", nil))

	if got := testutil.ToFloat64(counter) - before; got != 2 {
		t.Errorf("requests under route pattern: got %v, want 2", got)
	}
}
