package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mtlprog/taskboard/internal/handler/dto"
)

// handleLogin authenticates against the demo credential.
// @Summary Log in
// @Description Authenticate with the demo credential and start the session
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login request"
// @Success 200 {object} dto.SessionResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /login [post]
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	user, err := h.auth.Login(ctx, req.Email, req.Password, req.RememberMe)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.SessionResponse{
		Authenticated: true,
		User:          user,
	})
}

// handleLogout ends the session.
// @Summary Log out
// @Description End the session and clear the saved user
// @Tags auth
// @Produce json
// @Success 200 {object} dto.SessionResponse
// @Router /logout [post]
func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	h.auth.Logout(r.Context())

	respondJSON(w, http.StatusOK, dto.SessionResponse{Authenticated: false})
}

// handleSession reports the current session state.
// @Summary Session state
// @Description Report whether a user is logged in
// @Tags auth
// @Produce json
// @Success 200 {object} dto.SessionResponse
// @Router /session [get]
func (h *Handler) handleSession(w http.ResponseWriter, r *http.Request) {
	user := h.auth.CurrentUser()

	respondJSON(w, http.StatusOK, dto.SessionResponse{
		Authenticated: user != nil,
		User:          user,
	})
}
