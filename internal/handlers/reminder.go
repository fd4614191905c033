package handlers

import (
	"net/http"

	"github.com/Kingsheunn/Diary/internal/service"
)

// ReminderHandler reads and changes reminder preferences.
type ReminderHandler struct {
	Reminders *service.ReminderService
}

func (h *ReminderHandler) Get(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	s, err := h.Reminders.Get(r.Context(), uid)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, s)
}

// Set stores the preferences and reschedules the caller's reminders.
func (h *ReminderHandler) Set(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	var input service.ReminderInput
	if err := decodeJSON(r, &input); err != nil {
		WriteError(w, r, err)
		return
	}
	s, err := h.Reminders.Set(r.Context(), uid, input)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, s)
}
