package admin

import (
	"net/http"

	"github.com/pharmakit/backoffice/core/logger"
	"github.com/pharmakit/backoffice/core/session"
	"github.com/pharmakit/backoffice/pkg/apiclient"
)

// loginFailedMessage deliberately does not distinguish unknown accounts
// from wrong passwords.
const loginFailedMessage = "Login failed. Please check your credentials."

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decode(r, &req); err != nil {
		h.respond(w, http.StatusBadRequest, errorPayload{Message: "invalid request body"})
		return
	}

	result, err := h.backend.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if httpErr, ok := apiclient.AsHTTPError(err); ok && httpErr.Status == http.StatusUnauthorized {
			// The session stays untouched on rejected credentials.
			h.respond(w, http.StatusUnauthorized, errorPayload{Message: loginFailedMessage})
			return
		}
		h.respondError(w, err)
		return
	}

	sess := session.Session{
		Token: result.AccessToken,
		User: &session.User{
			ID:        result.User.ID,
			FirstName: result.User.FirstName,
			LastName:  result.User.LastName,
			Email:     result.User.Email,
			Contact:   result.User.Contact,
		},
		Message: result.Message,
	}
	if err := h.sessions.SetCredentials(r.Context(), sess); err != nil {
		h.respondError(w, err)
		return
	}

	h.log.Info("admin logged in", logger.Event("login"), logger.Key("email", result.User.Email))
	h.respond(w, http.StatusOK, sess)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Logout(r.Context()); err != nil {
		h.respondError(w, err)
		return
	}
	// Cached reads belong to the departed admin's view of the data.
	h.cache.Reset()
	h.respond(w, http.StatusNoContent, nil)
}

func (h *Handler) updatePassword(w http.ResponseWriter, r *http.Request) {
	var req updatePasswordRequest
	if err := decode(r, &req); err != nil {
		h.respond(w, http.StatusBadRequest, errorPayload{Message: "invalid request body"})
		return
	}
	if req.NewPassword != req.ConfirmPassword {
		h.respond(w, http.StatusBadRequest, errorPayload{Message: "passwords do not match"})
		return
	}

	if err := h.backend.UpdatePassword(r.Context(), req.CurrentPassword, req.NewPassword, req.ConfirmPassword); err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusNoContent, nil)
}

func (h *Handler) currentSession(w http.ResponseWriter, r *http.Request) {
	h.respond(w, http.StatusOK, h.sessions.Current())
}
