package server

import (
	"net/http"

	"github.com/mwhite-io/meridian/internal/models"
)

// --- Auth handlers ---

// handleAuthLogin handles POST /api/auth/login.
func (s *Server) handleAuthLogin(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var creds models.Credentials
	if !DecodeJSON(w, r, &creds) {
		return
	}

	sess, err := s.app.Cloud.Login(r.Context(), creds)
	if err != nil {
		WriteClientError(w, err)
		return
	}

	s.logger.Info().Str("email", creds.Email).Msg("Login succeeded")

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"user": sess.User,
	})
}

// handleAuthRegister handles POST /api/auth/register.
func (s *Server) handleAuthRegister(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req models.RegisterRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	sess, err := s.app.Cloud.Register(r.Context(), req)
	if err != nil {
		WriteClientError(w, err)
		return
	}

	s.logger.Info().Str("email", req.Email).Msg("Registration succeeded")

	WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"user": sess.User,
	})
}

// handleAuthLogout handles POST /api/auth/logout. The local session is
// always cleared, even when the backend call fails.
func (s *Server) handleAuthLogout(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	if err := s.app.Cloud.Logout(r.Context()); err != nil {
		s.logger.Warn().Err(err).Msg("Backend logout failed, local session cleared anyway")
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
	})
}

// handleAuthMe handles GET /api/auth/me.
func (s *Server) handleAuthMe(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	user, err := s.app.Cloud.CurrentUser(r.Context())
	if err != nil {
		WriteClientError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, user)
}
