package handlers

import (
	"context"
	"net/http"
	"time"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// SystemHandler serves the unauthenticated welcome and probe endpoints.
type SystemHandler struct {
	DB Pinger
}

func (h *SystemHandler) Welcome(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Welcome to the Diary API",
		"status":  "success",
		"docs":    "/docs/",
	})
}

// Health is liveness only. It does not touch the database.
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Ready returns 503 while the database is unreachable.
func (h *SystemHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if h.DB == nil || h.DB.PingContext(ctx) != nil {
		WriteJSON(w, http.StatusServiceUnavailable, ErrorResponse{Message: "database unavailable", Status: "error"})
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
