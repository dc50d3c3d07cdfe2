package domain

import "time"

// Message roles accepted by chat storage.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// DefaultSessionTitle is applied when a chat session is created without one.
const DefaultSessionTitle = "New Chat"

type User struct {
	ID           uint      `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsBlocked    bool      `json:"is_blocked"`
	CreatedAt    time.Time `json:"created_at"`
	AIUsageCount int       `json:"ai_usage_count"`
	AITokensUsed int64     `json:"ai_tokens_used"`
}

type ChatSession struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

type ChatMessage struct {
	ID        uint      `json:"id"`
	SessionID uint      `json:"session_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type Document struct {
	ID         uint      `json:"id"`
	UserID     uint      `json:"user_id"`
	Filename   string    `json:"filename"`
	FileType   string    `json:"file_type"`
	FileSize   int64     `json:"file_size"`
	FileData   []byte    `json:"-"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// DocumentWithOwner is a document row joined with its owner's email for the
// admin listing.
type DocumentWithOwner struct {
	Document
	UserEmail string `json:"user_email"`
}

// AdminCredential is the standalone admin account, independent of User.
type AdminCredential struct {
	ID           uint   `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}

// Stats aggregates counters for the admin dashboard.
type Stats struct {
	TotalUsers     int   `json:"total_users"`
	BlockedUsers   int   `json:"blocked_users"`
	TotalDocuments int   `json:"total_documents"`
	TotalChats     int   `json:"total_chats"`
	TotalAICalls   int64 `json:"total_ai_calls"`
}

// ValidRole reports whether role is one of the two accepted message roles.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAssistant
}
