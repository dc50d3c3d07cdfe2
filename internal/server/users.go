package server

import (
	"net/http"
	"time"

	"docuchat/internal/app"
	"docuchat/pkg/domain"
)

type trackUsageRequest struct {
	Tokens    int64  `json:"tokens"`
	UserEmail string `json:"user_email"`
}

type profileMessage struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type profileSession struct {
	ID            uint             `json:"id"`
	Title         string           `json:"title"`
	MessageCount  int              `json:"message_count"`
	CreatedAt     time.Time        `json:"created_at"`
	LastMessageAt *time.Time       `json:"last_message_at"`
	Messages      []profileMessage `json:"messages"`
}

func (s *Server) handleUserProfile(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	user, histories, docs, err := s.app.Profile(email)
	if err != nil {
		writeAppError(w, err)
		return
	}

	sessions := make([]profileSession, 0, len(histories))
	for _, h := range histories {
		messages := make([]profileMessage, 0, len(h.Messages))
		for _, m := range h.Messages {
			messages = append(messages, profileMessage{
				Role:      m.Role,
				Content:   m.Content,
				CreatedAt: m.CreatedAt,
			})
		}
		session := profileSession{
			ID:           h.Session.ID,
			Title:        h.Session.Title,
			MessageCount: len(h.Messages),
			CreatedAt:    h.Session.CreatedAt,
			Messages:     messages,
		}
		if n := len(h.Messages); n > 0 {
			last := h.Messages[n-1].CreatedAt
			session.LastMessageAt = &last
		}
		sessions = append(sessions, session)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"user": map[string]any{
			"id":              user.ID,
			"email":           user.Email,
			"created_at":      user.CreatedAt,
			"ai_usage_count":  user.AIUsageCount,
			"ai_tokens_used":  user.AITokensUsed,
			"is_blocked":      user.IsBlocked,
			"total_sessions":  len(sessions),
			"total_documents": len(docs),
		},
		"chat_sessions": sessions,
		"documents":     docs,
	})
}

// handleUserStatus is the lightweight poll the frontend uses for near
// real-time block enforcement. Reads stay open to blocked users.
func (s *Server) handleUserStatus(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	user, err := s.app.UserStatus(email)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "success",
		"is_blocked": user.IsBlocked,
		"email":      user.Email,
	})
}

func (s *Server) handleTrackUsageByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeAppError(w, app.ErrUserNotFound)
		return
	}
	var req trackUsageRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if !s.blockedGate(w, r, req.UserEmail) {
		return
	}
	user, err := s.app.TrackUsageByID(id, req.Tokens)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeUsage(w, user)
}

func (s *Server) handleTrackUsageByEmail(w http.ResponseWriter, r *http.Request) {
	var req trackUsageRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if !s.blockedGate(w, r, req.UserEmail) {
		return
	}
	email := req.UserEmail
	if email == "" {
		email = r.Header.Get("X-User-Email")
	}
	user, err := s.app.TrackUsageByEmail(email, req.Tokens)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeUsage(w, user)
}

func writeUsage(w http.ResponseWriter, user domain.User) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":         "success",
		"ai_usage_count": user.AIUsageCount,
		"ai_tokens_used": user.AITokensUsed,
	})
}
