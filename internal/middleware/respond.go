package middleware

import (
	"encoding/json"
	"net/http"
)

// writeError writes the API error envelope. Handlers use handlers.WriteError; this is the
// same shape for responses produced before a handler runs.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": message, "status": "error"})
}
