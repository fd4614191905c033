package middleware

import (
	"context"
	"net/http"
	"strings"
)

type key string

const userIDKey key = "user_id"

const (
	MsgNoToken      = "Access denied. No token provided."
	MsgInvalidToken = "Invalid token."
)

// TokenVerifier resolves a bearer token to a user id.
type TokenVerifier interface {
	Verify(token string) (int, error)
}

// Auth rejects requests without a valid token unless public allows the path. On success
// the user id is available to handlers through GetUserID.
func Auth(verifier TokenVerifier, public *PublicPaths) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions || public.Allows(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			token := tokenFromRequest(r)
			if token == "" {
				writeError(w, http.StatusUnauthorized, MsgNoToken)
				return
			}
			userID, err := verifier.Verify(token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, MsgInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

// tokenFromRequest reads x-auth-token first, then an Authorization Bearer credential.
func tokenFromRequest(r *http.Request) string {
	if t := strings.TrimSpace(r.Header.Get("x-auth-token")); t != "" {
		return t
	}
	scheme, cred, ok := strings.Cut(strings.TrimSpace(r.Header.Get("Authorization")), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(cred)
}

// WithUserID returns a copy of ctx carrying the authenticated user id.
func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserID returns the authenticated user id, if any.
func GetUserID(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(userIDKey).(int)
	return id, ok && id > 0
}
