package middleware

import (
	"net/http"
)

// DefaultMaxBodyBytes caps JSON request bodies (1 MiB).
const DefaultMaxBodyBytes = 1 << 20

// MaxBytes limits the body of POST, PUT and PATCH requests to maxBytes. Reading past the
// limit fails with *http.MaxBytesError, which the JSON decoder in handlers turns into a
// 413 "Request body too large" error envelope.
func MaxBytes(maxBytes int64) func(http.Handler) http.Handler {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodyBytes
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPost, http.MethodPut, http.MethodPatch:
				if r.Body != nil {
					r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
