package store

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"docuchat/pkg/domain"
)

// documentListColumns excludes the payload so listings stay cheap even when
// large blobs are stored.
var documentListColumns = []string{"id", "user_id", "filename", "file_type", "file_size", "uploaded_at"}

// GormStore implements Store using GORM over Postgres or SQLite.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore opens the database and runs auto-migrations. Postgres DSNs
// (postgres:// or postgresql://) use the Postgres driver; anything else is
// treated as a SQLite file path.
func NewGormStore(dsn string) (*GormStore, error) {
	gormLog := gormlogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	dialector := gorm.Dialector(sqlite.Open(dsn))
	isPostgres := strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
	if isPostgres {
		dialector = postgres.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormLog})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if !isPostgres {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("get sql db: %w", err)
		}
		// cascade deletes depend on SQLite enforcing foreign keys
		_, _ = sqlDB.Exec("PRAGMA journal_mode = WAL;")
		_, _ = sqlDB.Exec("PRAGMA foreign_keys = ON;")
	}

	if err := db.AutoMigrate(
		&UserModel{},
		&ChatSessionModel{},
		&ChatMessageModel{},
		&DocumentModel{},
		&AdminCredentialModel{},
	); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return &GormStore{db: db}, nil
}

// CreateUser inserts a new user and backfills the generated ID.
func (s *GormStore) CreateUser(u *domain.User) error {
	model := userToModel(*u)
	if err := s.db.Create(&model).Error; err != nil {
		return err
	}
	*u = userFromModel(model)
	return nil
}

// HasUserEmail checks whether the email is already registered.
func (s *GormStore) HasUserEmail(email string) (bool, error) {
	var count int64
	if err := s.db.Model(&UserModel{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetUserByEmail looks up a user by email.
func (s *GormStore) GetUserByEmail(email string) (domain.User, bool, error) {
	var model UserModel
	if err := s.db.Where("email = ?", email).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.User{}, false, nil
		}
		return domain.User{}, false, err
	}
	return userFromModel(model), true, nil
}

// GetUserByID returns a user by primary key.
func (s *GormStore) GetUserByID(id uint) (domain.User, bool, error) {
	var model UserModel
	if err := s.db.First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.User{}, false, nil
		}
		return domain.User{}, false, err
	}
	return userFromModel(model), true, nil
}

// ListUsers returns all users ordered by creation time.
func (s *GormStore) ListUsers() ([]domain.User, error) {
	var models []UserModel
	if err := s.db.Order("created_at ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.User, 0, len(models))
	for _, m := range models {
		res = append(res, userFromModel(m))
	}
	return res, nil
}

// SetUserBlocked writes the blocked flag.
func (s *GormStore) SetUserBlocked(id uint, blocked bool) error {
	return s.db.Model(&UserModel{}).Where("id = ?", id).Update("is_blocked", blocked).Error
}

// AddUsage increments both usage counters in place and returns the updated row.
func (s *GormStore) AddUsage(id uint, tokens int64) (domain.User, error) {
	var model UserModel
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&UserModel{}).Where("id = ?", id).Updates(map[string]any{
			"ai_usage_count": gorm.Expr("ai_usage_count + 1"),
			"ai_tokens_used": gorm.Expr("ai_tokens_used + ?", tokens),
		}).Error; err != nil {
			return err
		}
		return tx.First(&model, id).Error
	})
	if err != nil {
		return domain.User{}, err
	}
	return userFromModel(model), nil
}

// DeleteUser removes the user; sessions, messages, and documents go with it
// via the cascade constraints.
func (s *GormStore) DeleteUser(id uint) error {
	return s.db.Delete(&UserModel{}, id).Error
}

// HasAdmin reports whether any admin credential row exists.
func (s *GormStore) HasAdmin() (bool, error) {
	var count int64
	if err := s.db.Model(&AdminCredentialModel{}).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateAdmin inserts an admin credential row.
func (s *GormStore) CreateAdmin(a *domain.AdminCredential) error {
	model := AdminCredentialModel{Username: a.Username, PasswordHash: a.PasswordHash}
	if err := s.db.Create(&model).Error; err != nil {
		return err
	}
	*a = adminFromModel(model)
	return nil
}

// GetAdminByUsername looks up admin credentials.
func (s *GormStore) GetAdminByUsername(username string) (domain.AdminCredential, bool, error) {
	var model AdminCredentialModel
	if err := s.db.Where("username = ?", username).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.AdminCredential{}, false, nil
		}
		return domain.AdminCredential{}, false, err
	}
	return adminFromModel(model), true, nil
}

// SetAdminPassword replaces the stored hash for the named admin.
func (s *GormStore) SetAdminPassword(username, passwordHash string) error {
	return s.db.Model(&AdminCredentialModel{}).
		Where("username = ?", username).
		Update("password_hash", passwordHash).Error
}

// CreateSession inserts a chat session and backfills the generated ID.
func (s *GormStore) CreateSession(cs *domain.ChatSession) error {
	model := ChatSessionModel{UserID: cs.UserID, Title: cs.Title, CreatedAt: cs.CreatedAt}
	if err := s.db.Create(&model).Error; err != nil {
		return err
	}
	*cs = sessionFromModel(model)
	return nil
}

// GetSession retrieves a chat session by primary key.
func (s *GormStore) GetSession(id uint) (domain.ChatSession, bool, error) {
	var model ChatSessionModel
	if err := s.db.First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.ChatSession{}, false, nil
		}
		return domain.ChatSession{}, false, err
	}
	return sessionFromModel(model), true, nil
}

// ListSessionsByUser returns a user's sessions ordered by creation time.
func (s *GormStore) ListSessionsByUser(userID uint) ([]domain.ChatSession, error) {
	var models []ChatSessionModel
	if err := s.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.ChatSession, 0, len(models))
	for _, m := range models {
		res = append(res, sessionFromModel(m))
	}
	return res, nil
}

// CreateMessage appends a message to a session.
func (s *GormStore) CreateMessage(msg *domain.ChatMessage) error {
	model := ChatMessageModel{
		SessionID: msg.SessionID,
		Role:      msg.Role,
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
	}
	if err := s.db.Create(&model).Error; err != nil {
		return err
	}
	*msg = messageFromModel(model)
	return nil
}

// ListMessagesBySession returns a session's messages ordered by creation time.
func (s *GormStore) ListMessagesBySession(sessionID uint) ([]domain.ChatMessage, error) {
	var models []ChatMessageModel
	if err := s.db.Where("session_id = ?", sessionID).Order("created_at ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.ChatMessage, 0, len(models))
	for _, m := range models {
		res = append(res, messageFromModel(m))
	}
	return res, nil
}

// ClearChats deletes all messages, then all sessions, and reports both counts.
func (s *GormStore) ClearChats() (int64, int64, error) {
	var sessions, messages int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("1 = 1").Delete(&ChatMessageModel{})
		if res.Error != nil {
			return res.Error
		}
		messages = res.RowsAffected
		res = tx.Where("1 = 1").Delete(&ChatSessionModel{})
		if res.Error != nil {
			return res.Error
		}
		sessions = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return sessions, messages, nil
}

// CreateDocument stores a document row including its payload bytes.
func (s *GormStore) CreateDocument(d *domain.Document) error {
	model := documentToModel(*d)
	if err := s.db.Create(&model).Error; err != nil {
		return err
	}
	*d = documentFromModel(model)
	return nil
}

// GetDocument returns the full row including payload bytes.
func (s *GormStore) GetDocument(id uint) (domain.Document, bool, error) {
	var model DocumentModel
	if err := s.db.First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Document{}, false, nil
		}
		return domain.Document{}, false, err
	}
	return documentFromModel(model), true, nil
}

// ListDocumentsByUser returns a user's documents without payload bytes.
func (s *GormStore) ListDocumentsByUser(userID uint) ([]domain.Document, error) {
	return s.listDocuments("user_id = ?", userID)
}

// ListDocuments returns all documents without payload bytes.
func (s *GormStore) ListDocuments() ([]domain.Document, error) {
	return s.listDocuments()
}

func (s *GormStore) listDocuments(conds ...any) ([]domain.Document, error) {
	var models []DocumentModel
	tx := s.db.Select(documentListColumns).Order("uploaded_at ASC")
	if len(conds) > 0 {
		tx = tx.Where(conds[0], conds[1:]...)
	}
	if err := tx.Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.Document, 0, len(models))
	for _, m := range models {
		res = append(res, documentFromModel(m))
	}
	return res, nil
}

type documentOwnerRow struct {
	ID         uint
	UserID     uint
	UserEmail  string
	Filename   string
	FileType   string
	FileSize   int64
	UploadedAt time.Time
}

// ListDocumentsWithOwner joins each document with its owner's email.
func (s *GormStore) ListDocumentsWithOwner() ([]domain.DocumentWithOwner, error) {
	var rows []documentOwnerRow
	err := s.db.Model(&DocumentModel{}).
		Select("document_models.id, document_models.user_id, document_models.filename, document_models.file_type, document_models.file_size, document_models.uploaded_at, user_models.email AS user_email").
		Joins("JOIN user_models ON user_models.id = document_models.user_id").
		Order("document_models.uploaded_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	res := make([]domain.DocumentWithOwner, 0, len(rows))
	for _, r := range rows {
		res = append(res, domain.DocumentWithOwner{
			Document: domain.Document{
				ID:         r.ID,
				UserID:     r.UserID,
				Filename:   r.Filename,
				FileType:   r.FileType,
				FileSize:   r.FileSize,
				UploadedAt: r.UploadedAt,
			},
			UserEmail: r.UserEmail,
		})
	}
	return res, nil
}

// Stats aggregates dashboard counters in one pass per table.
func (s *GormStore) Stats() (domain.Stats, error) {
	var stats domain.Stats
	var n int64

	if err := s.db.Model(&UserModel{}).Count(&n).Error; err != nil {
		return stats, err
	}
	stats.TotalUsers = int(n)
	if err := s.db.Model(&UserModel{}).Where("is_blocked = ?", true).Count(&n).Error; err != nil {
		return stats, err
	}
	stats.BlockedUsers = int(n)
	if err := s.db.Model(&DocumentModel{}).Count(&n).Error; err != nil {
		return stats, err
	}
	stats.TotalDocuments = int(n)
	if err := s.db.Model(&ChatSessionModel{}).Count(&n).Error; err != nil {
		return stats, err
	}
	stats.TotalChats = int(n)

	var totalCalls int64
	if err := s.db.Model(&UserModel{}).
		Select("COALESCE(SUM(ai_usage_count), 0)").
		Scan(&totalCalls).Error; err != nil {
		return stats, err
	}
	stats.TotalAICalls = totalCalls
	return stats, nil
}
