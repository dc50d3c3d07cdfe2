package server

import (
	"net/http"
	"time"

	"docuchat/internal/app"
)

type changePasswordRequest struct {
	Username        string `json:"username"`
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type historyMessage struct {
	ID        uint      `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type historySession struct {
	ID        uint             `json:"id"`
	Title     string           `json:"title"`
	CreatedAt time.Time        `json:"created_at"`
	Messages  []historyMessage `json:"messages"`
}

func (s *Server) handleAdminListUsers(w http.ResponseWriter, _ *http.Request) {
	users, err := s.app.ListUsers()
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"users":  users,
	})
}

func (s *Server) handleAdminUserHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeAppError(w, app.ErrUserNotFound)
		return
	}
	user, histories, docs, err := s.app.UserHistory(id)
	if err != nil {
		writeAppError(w, err)
		return
	}

	sessions := make([]historySession, 0, len(histories))
	for _, h := range histories {
		messages := make([]historyMessage, 0, len(h.Messages))
		for _, m := range h.Messages {
			messages = append(messages, historyMessage{
				ID:        m.ID,
				Role:      m.Role,
				Content:   m.Content,
				CreatedAt: m.CreatedAt,
			})
		}
		sessions = append(sessions, historySession{
			ID:        h.Session.ID,
			Title:     h.Session.Title,
			CreatedAt: h.Session.CreatedAt,
			Messages:  messages,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":        "success",
		"user_id":       user.ID,
		"chat_sessions": sessions,
		"documents":     docs,
	})
}

func (s *Server) handleAdminToggleBlock(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeAppError(w, app.ErrUserNotFound)
		return
	}
	user, err := s.app.ToggleBlocked(id)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "success",
		"user_id":    user.ID,
		"is_blocked": user.IsBlocked,
	})
}

func (s *Server) handleAdminDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeAppError(w, app.ErrUserNotFound)
		return
	}
	user, err := s.app.DeleteUser(id)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"user_id": user.ID,
		"message": "User deleted",
	})
}

func (s *Server) handleAdminListDocuments(w http.ResponseWriter, _ *http.Request) {
	docs, err := s.app.AllDocuments()
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "success",
		"documents": docs,
	})
}

func (s *Server) handleAdminDownloadDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeAppError(w, app.ErrDocumentNotFound)
		return
	}
	doc, err := s.app.DocumentForDownload(id)
	if err != nil {
		writeAppError(w, err)
		return
	}
	contentType := doc.FileType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+doc.Filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc.FileData)
}

func (s *Server) handleAdminStats(w http.ResponseWriter, _ *http.Request) {
	stats, err := s.app.Stats()
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"stats":  stats,
	})
}

func (s *Server) handleAdminChangePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeAppError(w, app.ErrAllFieldsRequired)
		return
	}
	if err := s.app.AdminChangePassword(req.Username, req.CurrentPassword, req.NewPassword); err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"message": "Password updated successfully",
	})
}

func (s *Server) handleAdminClearChats(w http.ResponseWriter, _ *http.Request) {
	sessions, messages, err := s.app.ClearChats()
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":           "success",
		"deleted_sessions": sessions,
		"deleted_messages": messages,
	})
}
