package store

import (
	"time"

	"docuchat/pkg/domain"
)

// GORM models used for persistence.
type UserModel struct {
	ID           uint      `gorm:"primaryKey"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	IsBlocked    bool      `gorm:"not null;default:false"`
	CreatedAt    time.Time `gorm:"not null"`
	AIUsageCount int       `gorm:"not null;default:0"`
	AITokensUsed int64     `gorm:"not null;default:0"`
}

type ChatSessionModel struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;index"`
	Title     string    `gorm:"size:255"`
	CreatedAt time.Time `gorm:"not null"`

	User UserModel `gorm:"constraint:OnDelete:CASCADE"`
}

type ChatMessageModel struct {
	ID        uint      `gorm:"primaryKey"`
	SessionID uint      `gorm:"not null;index"`
	Role      string    `gorm:"size:20;not null"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null;index"`

	Session ChatSessionModel `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE"`
}

type DocumentModel struct {
	ID         uint      `gorm:"primaryKey"`
	UserID     uint      `gorm:"not null;index"`
	Filename   string    `gorm:"size:255;not null"`
	FileType   string    `gorm:"size:100"`
	FileSize   int64
	FileData   []byte
	UploadedAt time.Time `gorm:"not null"`

	User UserModel `gorm:"constraint:OnDelete:CASCADE"`
}

type AdminCredentialModel struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
}

func userToModel(u domain.User) UserModel {
	return UserModel{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		IsBlocked:    u.IsBlocked,
		CreatedAt:    u.CreatedAt,
		AIUsageCount: u.AIUsageCount,
		AITokensUsed: u.AITokensUsed,
	}
}

func userFromModel(m UserModel) domain.User {
	return domain.User{
		ID:           m.ID,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		IsBlocked:    m.IsBlocked,
		CreatedAt:    m.CreatedAt,
		AIUsageCount: m.AIUsageCount,
		AITokensUsed: m.AITokensUsed,
	}
}

func sessionFromModel(m ChatSessionModel) domain.ChatSession {
	return domain.ChatSession{
		ID:        m.ID,
		UserID:    m.UserID,
		Title:     m.Title,
		CreatedAt: m.CreatedAt,
	}
}

func messageFromModel(m ChatMessageModel) domain.ChatMessage {
	return domain.ChatMessage{
		ID:        m.ID,
		SessionID: m.SessionID,
		Role:      m.Role,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}

func documentToModel(d domain.Document) DocumentModel {
	return DocumentModel{
		ID:         d.ID,
		UserID:     d.UserID,
		Filename:   d.Filename,
		FileType:   d.FileType,
		FileSize:   d.FileSize,
		FileData:   d.FileData,
		UploadedAt: d.UploadedAt,
	}
}

func documentFromModel(m DocumentModel) domain.Document {
	return domain.Document{
		ID:         m.ID,
		UserID:     m.UserID,
		Filename:   m.Filename,
		FileType:   m.FileType,
		FileSize:   m.FileSize,
		FileData:   m.FileData,
		UploadedAt: m.UploadedAt,
	}
}

func adminFromModel(m AdminCredentialModel) domain.AdminCredential {
	return domain.AdminCredential{
		ID:           m.ID,
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
	}
}
