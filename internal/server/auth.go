package server

import (
	"net/http"

	"docuchat/internal/app"
	"docuchat/internal/util"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type adminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeAppError(w, app.ErrEmailAndPasswordRequired)
		return
	}
	user, err := s.app.Login(req.Email, req.Password)
	if err != nil {
		writeAppError(w, err)
		return
	}
	// An opaque per-login token; there is no server-side session to back it.
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"message": "Logged in successfully",
		"token":   util.NewID(),
		"user": map[string]any{
			"id":    user.ID,
			"email": user.Email,
		},
	})
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeAppError(w, app.ErrEmailAndPasswordRequired)
		return
	}
	user, err := s.app.SignUp(req.Email, req.Password)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"message": "Registration successful! Please log in.",
		"user": map[string]any{
			"email": user.Email,
		},
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, _ *http.Request) {
	// No server-side session state exists to tear down.
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"message": "Logged out successfully",
	})
}

func (s *Server) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	var req adminLoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeAppError(w, app.ErrUsernameAndPasswordRequired)
		return
	}
	admin, token, err := s.app.AdminLogin(req.Username, req.Password)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"token":  token,
		"admin": map[string]any{
			"username": admin.Username,
		},
	})
}
