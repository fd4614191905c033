package handlers

import (
	"net/http"

	"github.com/Kingsheunn/Diary/internal/middleware"
	"github.com/Kingsheunn/Diary/internal/models"
	"github.com/Kingsheunn/Diary/internal/service"
)

// TokenHeader carries the issued token on signup and login responses.
const TokenHeader = "x-auth-token"

// ==========================
// Auth Handler
// ==========================
type AuthHandler struct {
	Accounts *service.AccountService
}

type authResponse struct {
	Message string       `json:"message"`
	User    *models.User `json:"user"`
	Token   string       `json:"token"`
}

// ==========================
// Signup
// ==========================
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var input service.SignupInput
	if err := decodeJSON(r, &input); err != nil {
		WriteError(w, r, err)
		return
	}

	sess, err := h.Accounts.Signup(r.Context(), input)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	w.Header().Set(TokenHeader, sess.Token)
	WriteJSON(w, http.StatusCreated, authResponse{Message: "User created successfully", User: sess.User, Token: sess.Token})
}

// ==========================
// Login
// ==========================
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input service.LoginInput
	if err := decodeJSON(r, &input); err != nil {
		WriteError(w, r, err)
		return
	}

	sess, err := h.Accounts.Login(r.Context(), input)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	w.Header().Set(TokenHeader, sess.Token)
	WriteJSON(w, http.StatusOK, authResponse{Message: "Login successful", User: sess.User, Token: sess.Token})
}

// userID returns the authenticated user or writes a 401. Routes behind the auth
// middleware always have one.
func userID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, ok := middleware.GetUserID(r.Context())
	if !ok {
		WriteJSON(w, http.StatusUnauthorized, ErrorResponse{Message: middleware.MsgNoToken, Status: "error"})
	}
	return id, ok
}
