package handlers

import (
	"net/http"

	"github.com/Kingsheunn/Diary/internal/models"
	"github.com/Kingsheunn/Diary/internal/service"
)

// EntryHandler serves diary entries. Every operation is scoped to the caller; another
// user's entry is reported as not found.
type EntryHandler struct {
	Entries *service.EntryService
}

type entryListResponse struct {
	Entries []models.Entry `json:"entries"`
	Count   int            `json:"count"`
}

type entryDeletedResponse struct {
	Message string        `json:"message"`
	Entry   *models.Entry `json:"entry"`
}

// List returns the caller's entries, newest first.
func (h *EntryHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	list, err := h.Entries.List(r.Context(), uid)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, entryListResponse{Entries: list, Count: len(list)})
}

func (h *EntryHandler) Get(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	id, err := parseID(r)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	e, err := h.Entries.Get(r.Context(), uid, id)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, e)
}

func (h *EntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	var input service.EntryInput
	if err := decodeJSON(r, &input); err != nil {
		WriteError(w, r, err)
		return
	}
	e, err := h.Entries.Create(r.Context(), uid, input)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, e)
}

// Update replaces title and content.
func (h *EntryHandler) Update(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	id, err := parseID(r)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	var input service.EntryInput
	if err := decodeJSON(r, &input); err != nil {
		WriteError(w, r, err)
		return
	}
	e, err := h.Entries.Update(r.Context(), uid, id, input)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, e)
}

func (h *EntryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	id, err := parseID(r)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	e, err := h.Entries.Delete(r.Context(), uid, id)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, entryDeletedResponse{Message: "Entry deleted successfully", Entry: e})
}
