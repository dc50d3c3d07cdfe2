package server

import (
	"net/http"

	"docuchat/internal/app"
)

type createSessionRequest struct {
	UserEmail string `json:"user_email"`
	Title     string `json:"title"`
}

type addMessageRequest struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	UserEmail string `json:"user_email"`
}

func (s *Server) handleCreateChatSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if !s.blockedGate(w, r, req.UserEmail) {
		return
	}
	session, err := s.app.CreateChatSession(req.UserEmail, req.Title)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "success",
		"session_id": session.ID,
		"title":      session.Title,
		"created_at": session.CreatedAt,
	})
}

func (s *Server) handleAddChatMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeAppError(w, app.ErrSessionNotFound)
		return
	}
	var req addMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if !s.blockedGate(w, r, req.UserEmail) {
		return
	}
	message, err := s.app.AddChatMessage(id, req.Role, req.Content)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "success",
		"message_id": message.ID,
		"session_id": message.SessionID,
		"role":       message.Role,
		"created_at": message.CreatedAt,
	})
}
