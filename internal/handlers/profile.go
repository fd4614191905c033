package handlers

import (
	"net/http"

	"github.com/Kingsheunn/Diary/internal/service"
)

// ProfileHandler serves the authenticated user's own account.
type ProfileHandler struct {
	Accounts *service.AccountService
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	u, err := h.Accounts.Profile(r.Context(), uid)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, u)
}

// Update changes name and/or email.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	var input service.ProfileInput
	if err := decodeJSON(r, &input); err != nil {
		WriteError(w, r, err)
		return
	}
	u, err := h.Accounts.UpdateProfile(r.Context(), uid, input)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, u)
}
