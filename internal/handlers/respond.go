package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/Kingsheunn/Diary/internal/apperr"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// ErrMessageInternal is the generic message for 500 responses. Do not expose internal details to clients.
const ErrMessageInternal = "Internal server error"

var devMode atomic.Bool

// SetDevMode makes 500 responses carry the underlying error as "detail".
func SetDevMode(on bool) { devMode.Store(on) }

// ErrorResponse is the error envelope every failed request gets.
type ErrorResponse struct {
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Fields  map[string]string `json:"fields,omitempty"`
	Detail  string            `json:"detail,omitempty"`
}

// WriteJSON sends v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// WriteError maps err to a status and writes the envelope. Errors that are not
// *apperr.Error are treated as internal and logged with the request id.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	ae, ok := apperr.As(err)
	if !ok {
		ae = apperr.Wrap(err, ErrMessageInternal)
	}
	status := ae.Kind.Status()
	resp := ErrorResponse{Message: ae.Message, Status: "error", Fields: ae.Fields}

	if ae.Kind == apperr.Internal {
		slog.ErrorContext(r.Context(), "request failed",
			"request_id", chimw.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"error", err)
		resp.Message = ErrMessageInternal
		if devMode.Load() {
			resp.Detail = err.Error()
		}
	}
	WriteJSON(w, status, resp)
}

// decodeJSON reads the request body into v. Unknown fields are ignored.
func decodeJSON(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil {
		return nil
	}
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return &apperr.Error{Kind: apperr.TooLarge, Message: "Request body too large"}
	case errors.Is(err, io.EOF):
		return apperr.NewValidation("Request body is required", nil)
	}
	return apperr.NewValidation("Invalid JSON", nil)
}

// parseID reads the {id} URL param. Only positive base-10 integers are accepted.
func parseID(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "id")
	if raw == "" || strings.HasPrefix(raw, "+") {
		return 0, apperr.NewValidation("invalid entry id", nil)
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, apperr.NewValidation("invalid entry id", nil)
	}
	return id, nil
}
