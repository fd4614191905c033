package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type stubVerifier map[string]int

func (s stubVerifier) Verify(token string) (int, error) {
	if id, ok := s[token]; ok {
		return id, nil
	}
	return 0, errors.New("bad token")
}

func echoUserID() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetUserID(r.Context())
		json.NewEncoder(w).Encode(map[string]any{"user_id": id, "ok": ok})
	})
}

func TestAuth(t *testing.T) {
	h := Auth(stubVerifier{"good": 42}, DefaultPublicPaths("/api/v1"))(echoUserID())

	tests := []struct {
		name    string
		method  string
		path    string
		headers map[string]string
		status  int
		message string
		userID  int
	}{
		{name: "no token", path: "/entries", status: 401, message: MsgNoToken},
		{name: "invalid token", path: "/entries", headers: map[string]string{"x-auth-token": "bad"}, status: 401, message: MsgInvalidToken},
		{name: "x-auth-token", path: "/entries", headers: map[string]string{"x-auth-token": "good"}, status: 200, userID: 42},
		{name: "bearer", path: "/entries", headers: map[string]string{"Authorization": "Bearer good"}, status: 200, userID: 42},
		{name: "bearer lowercase scheme", path: "/entries", headers: map[string]string{"Authorization": "bearer good"}, status: 200, userID: 42},
		{name: "basic scheme is absent", path: "/entries", headers: map[string]string{"Authorization": "Basic good"}, status: 401, message: MsgNoToken},
		{name: "x-auth-token wins", path: "/entries", headers: map[string]string{"x-auth-token": "bad", "Authorization": "Bearer good"}, status: 401, message: MsgInvalidToken},
		{name: "public health", path: "/health", status: 200},
		{name: "public prefixed login", path: "/api/v1/auth/login", status: 200},
		{name: "preflight", method: http.MethodOptions, path: "/entries", status: 200},
		{name: "docs traversal", path: "/docs/../entries", status: 401, message: MsgNoToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			method := tt.method
			if method == "" {
				method = http.MethodGet
			}
			req := httptest.NewRequest(method, "/", nil)
			req.URL.Path = tt.path
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			if rr.Code != tt.status {
				t.Fatalf("status: got %d, want %d", rr.Code, tt.status)
			}
			var body map[string]any
			if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if tt.message != "" {
				if body["message"] != tt.message || body["status"] != "error" {
					t.Errorf("body: got %v, want message %q", body, tt.message)
				}
				return
			}
			if got := int(body["user_id"].(float64)); got != tt.userID {
				t.Errorf("user_id: got %d, want %d", got, tt.userID)
			}
		})
	}
}

func TestGetUserID_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, ok := GetUserID(req.Context()); ok {
		t.Error("expected no user id on a fresh context")
	}
	if _, ok := GetUserID(WithUserID(req.Context(), 0)); ok {
		t.Error("zero is not a valid user id")
	}
}
