package handler

import (
	"net/http"

	"github.com/xenking/oolio-storefront/internal/domain/auth"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Username string `json:"username"`
	FullName string `json:"fullname"`
	Message  string `json:"message,omitempty"`
}

// RegisterUser creates an account.
func (h *Handler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var req auth.Registration
	if !decodeBody(w, r, &req) {
		return
	}

	u, err := h.svc.Register(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, sessionResponse{
		Username: u.Username,
		FullName: u.FullName,
		Message:  "Registration successful! You can log in now.",
	})
}

// Login starts a session.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	sess, err := h.svc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, sessionResponse{
		Username: sess.Username,
		FullName: sess.FullName,
		Message:  "Welcome, " + sess.FullName + "!",
	})
}

// Logout ends the session.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Logout(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetSession reports who is signed in.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.svc.Session(r.Context())
	if !ok {
		writeJSON(w, r, http.StatusNotFound, errorResponse{
			Code:    http.StatusNotFound,
			Message: "Not signed in",
		})
		return
	}
	writeJSON(w, r, http.StatusOK, sessionResponse{
		Username: sess.Username,
		FullName: sess.FullName,
		Message:  "Signed in as " + sess.FullName,
	})
}
