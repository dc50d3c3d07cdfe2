// Package server exposes the HTTP surface: public auth routes, user-scoped
// routes behind the blocked-user gate, and admin routes behind the static
// bearer token.
package server

import (
	"net/http"
	"strconv"
	"strings"

	"docuchat/internal/app"
)

// Config wires required dependencies for the HTTP server.
type Config struct {
	App *app.App
}

// Server exposes HTTP endpoints for the auth/admin backend.
type Server struct {
	app *app.App
	mux *http.ServeMux
}

// New constructs the server with routes configured.
func New(cfg Config) *Server {
	s := &Server{
		app: cfg.App,
		mux: http.NewServeMux(),
	}
	s.routes()
	return s
}

// Router returns the configured handler.
func (s *Server) Router() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /{$}", s.handleHome)

	// public auth
	s.mux.HandleFunc("POST /login", s.handleLogin)
	s.mux.HandleFunc("POST /signup", s.handleSignup)
	s.mux.HandleFunc("POST /logout", s.handleLogout)
	s.mux.HandleFunc("POST /admin/login", s.handleAdminLogin)

	// user-scoped
	s.mux.HandleFunc("GET /users/profile", s.handleUserProfile)
	s.mux.HandleFunc("GET /users/me/status", s.handleUserStatus)
	s.mux.HandleFunc("POST /users/track-usage", s.handleTrackUsageByEmail)
	s.mux.HandleFunc("POST /users/{id}/track-usage", s.handleTrackUsageByID)
	s.mux.HandleFunc("POST /chat/sessions", s.handleCreateChatSession)
	s.mux.HandleFunc("POST /chat/sessions/{id}/messages", s.handleAddChatMessage)
	s.mux.HandleFunc("POST /documents/upload", s.handleUploadDocument)

	// admin
	s.mux.Handle("GET /admin/users", s.adminOnly(s.handleAdminListUsers))
	s.mux.Handle("GET /admin/users/{id}/history", s.adminOnly(s.handleAdminUserHistory))
	s.mux.Handle("POST /admin/users/{id}/block", s.adminOnly(s.handleAdminToggleBlock))
	s.mux.Handle("DELETE /admin/users/{id}", s.adminOnly(s.handleAdminDeleteUser))
	s.mux.Handle("GET /admin/documents", s.adminOnly(s.handleAdminListDocuments))
	s.mux.Handle("GET /admin/documents/{id}/download", s.adminOnly(s.handleAdminDownloadDocument))
	s.mux.Handle("GET /admin/stats", s.adminOnly(s.handleAdminStats))
	s.mux.Handle("POST /admin/change-password", s.adminOnly(s.handleAdminChangePassword))
	s.mux.Handle("POST /admin/clear-chats", s.adminOnly(s.handleAdminClearChats))
	s.mux.Handle("GET /admin/export/users", s.adminOnly(s.handleAdminExportUsers))
	s.mux.Handle("GET /admin/export/documents", s.adminOnly(s.handleAdminExportDocuments))
	s.mux.Handle("GET /admin/api-keys", s.adminOnly(s.handleAdminGetAPIKeys))
	s.mux.Handle("POST /admin/api-keys", s.adminOnly(s.handleAdminUpdateAPIKeys))
}

func (s *Server) handleHome(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"message": "Auth API is running",
	})
}

// adminOnly guards a route with the static bearer token. The check runs
// before any storage access.
func (s *Server) adminOnly(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok || !s.app.VerifyAdminToken(token) {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next(w, r)
	})
}

// blockedGate applies the blocked-user gate before a mutating user-facing
// handler runs. The acting user is resolved from the X-User-Email header,
// then the email query parameter, then the body field the caller extracted.
// It writes the refusal and returns false when the actor is blocked.
func (s *Server) blockedGate(w http.ResponseWriter, r *http.Request, bodyEmail string) bool {
	email := strings.TrimSpace(r.Header.Get("X-User-Email"))
	if email == "" {
		email = strings.TrimSpace(r.URL.Query().Get("email"))
	}
	if email == "" {
		email = strings.TrimSpace(bodyEmail)
	}
	if err := s.app.EnsureNotBlocked(email); err != nil {
		writeAppError(w, err)
		return false
	}
	return true
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if token == "" {
		return "", false
	}
	return token, true
}

// pathID parses the {id} path segment. Anything non-numeric behaves like an
// unknown resource.
func pathID(r *http.Request) (uint, bool) {
	raw := r.PathValue("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
