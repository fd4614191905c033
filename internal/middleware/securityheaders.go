package middleware

import (
	"net/http"
	"strings"
)

// SecurityHeaders returns a middleware that sets common security response headers.
// When hsts is true (e.g. when serving HTTPS), adds Strict-Transport-Security. Paths under
// docsPrefix get a CSP that lets the docs page load its own assets.
func SecurityHeaders(hsts bool, docsPrefix string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			if docsPrefix != "" && strings.HasPrefix(r.URL.Path, docsPrefix) {
				w.Header().Set("Content-Security-Policy", "default-src 'self'; frame-ancestors 'none'")
			} else {
				w.Header().Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
			}
			if hsts {
				w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}
			next.ServeHTTP(w, r)
		})
	}
}
