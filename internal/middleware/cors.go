package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// DefaultCORSAllowedMethods is the default set of methods allowed for CORS.
var DefaultCORSAllowedMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}

// DefaultCORSAllowedHeaders is the default set of request headers allowed for CORS.
var DefaultCORSAllowedHeaders = []string{"Accept", "Authorization", "Content-Type", "X-Auth-Token"}

// CORS returns a middleware answering preflight and setting CORS headers for origins.
// When origins is empty, the middleware is a no-op.
func CORS(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: DefaultCORSAllowedMethods,
		AllowedHeaders: DefaultCORSAllowedHeaders,
		ExposedHeaders: []string{"X-Auth-Token"},
		MaxAge:         86400,
	})
	return c.Handler
}
