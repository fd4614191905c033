package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestIPRateLimiter(t *testing.T) {
	l := AuthRateLimiter(2)
	h := l.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	call := func(ip string) int {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.Header.Set("X-Forwarded-For", ip)
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		if rr.Code == http.StatusTooManyRequests && !strings.Contains(rr.Body.String(), `"status":"error"`) {
			t.Errorf("429 body not in error envelope: %s", rr.Body.String())
		}
		return rr.Code
	}

	if got := call("10.0.0.1"); got != http.StatusOK {
		t.Fatalf("first request: got %d", got)
	}
	if got := call("10.0.0.1"); got != http.StatusTooManyRequests {
		t.Errorf("burst exhausted: got %d, want 429", got)
	}
	if got := call("10.0.0.2"); got != http.StatusOK {
		t.Errorf("other client: got %d, want 200", got)
	}
}
