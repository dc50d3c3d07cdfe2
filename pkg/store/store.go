package store

import "docuchat/pkg/domain"

// Store defines persistence operations for users, admin credentials, chat
// sessions/messages, and documents.
type Store interface {
	// users
	CreateUser(u *domain.User) error
	HasUserEmail(email string) (bool, error)
	GetUserByEmail(email string) (domain.User, bool, error)
	GetUserByID(id uint) (domain.User, bool, error)
	ListUsers() ([]domain.User, error)
	SetUserBlocked(id uint, blocked bool) error
	// AddUsage bumps the usage counter by one and the token counter by
	// tokens, returning the updated user. Counters never decrease.
	AddUsage(id uint, tokens int64) (domain.User, error)
	// DeleteUser removes the user and, by cascade, all owned sessions,
	// messages, and documents.
	DeleteUser(id uint) error

	// admin credentials
	HasAdmin() (bool, error)
	CreateAdmin(a *domain.AdminCredential) error
	GetAdminByUsername(username string) (domain.AdminCredential, bool, error)
	SetAdminPassword(username, passwordHash string) error

	// chat
	CreateSession(s *domain.ChatSession) error
	GetSession(id uint) (domain.ChatSession, bool, error)
	ListSessionsByUser(userID uint) ([]domain.ChatSession, error)
	CreateMessage(m *domain.ChatMessage) error
	ListMessagesBySession(sessionID uint) ([]domain.ChatMessage, error)
	// ClearChats deletes every message and session, returning how many of
	// each were removed.
	ClearChats() (sessions int64, messages int64, err error)

	// documents
	CreateDocument(d *domain.Document) error
	// GetDocument returns the full row including the payload bytes.
	GetDocument(id uint) (domain.Document, bool, error)
	// ListDocumentsByUser and ListDocuments omit payload bytes.
	ListDocumentsByUser(userID uint) ([]domain.Document, error)
	ListDocuments() ([]domain.Document, error)
	ListDocumentsWithOwner() ([]domain.DocumentWithOwner, error)

	// aggregates
	Stats() (domain.Stats, error)
}
