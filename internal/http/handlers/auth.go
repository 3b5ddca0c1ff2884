package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rkmehedi/nexyn-pets-server/internal/middleware"
)

type tokenRequest struct {
	Email string `json:"email"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// IssueToken mints a short-lived bearer credential for the given subject
// email. Role is never embedded; it is read live on each request.
func (a *App) IssueToken(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.message(w, http.StatusBadRequest, "invalid payload")
		return
	}
	email := strings.TrimSpace(req.Email)
	if email == "" || !strings.Contains(email, "@") {
		a.message(w, http.StatusBadRequest, "a valid email is required")
		return
	}
	token, err := middleware.SignToken(a.JWTSecret, email)
	if err != nil {
		a.Logger.Error().Err(err).Msg("sign token failed")
		a.message(w, http.StatusInternalServerError, "failed to sign token")
		return
	}
	a.json(w, http.StatusOK, tokenResponse{Token: token})
}
