package app

import (
	"crypto/subtle"
	"fmt"
	"strings"
	"sync"
	"time"

	"docuchat/internal/util"
	"docuchat/pkg/auth"
	"docuchat/pkg/domain"
	"docuchat/pkg/store"
)

// Seeded on first start when no admin credential row exists. A known weak
// bootstrap: deployments are expected to change it via /admin/change-password.
const (
	defaultAdminUsername = "admin"
	defaultAdminPassword = "admin123"
)

// Config holds runtime configuration for the core application.
type Config struct {
	DatabaseURL   string
	AdminToken    string
	AdminUsername string
	EnvFile       string
	Store         store.Store
}

// App is the core application service wiring storage, credentials, and the
// access guards together.
type App struct {
	store      store.Store
	adminToken []byte
	envFile    string
	envMu      sync.Mutex
}

// New constructs the application, opening the database when no store is
// injected, and seeds the default admin credentials when the table is empty.
func New(cfg Config) (*App, error) {
	if strings.TrimSpace(cfg.AdminToken) == "" {
		return nil, fmt.Errorf("admin token is required")
	}

	dataStore := cfg.Store
	if dataStore == nil {
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("database URL required")
		}
		var err error
		dataStore, err = store.NewGormStore(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("init store: %w", err)
		}
	}

	envFile := cfg.EnvFile
	if envFile == "" {
		envFile = ".env"
	}

	a := &App{
		store:      dataStore,
		adminToken: []byte(cfg.AdminToken),
		envFile:    envFile,
	}

	username := cfg.AdminUsername
	if username == "" {
		username = defaultAdminUsername
	}
	if err := a.seedAdmin(username); err != nil {
		return nil, fmt.Errorf("seed admin: %w", err)
	}
	return a, nil
}

func (a *App) seedAdmin(username string) error {
	exists, err := a.store.HasAdmin()
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	hash, err := auth.HashPassword(defaultAdminPassword)
	if err != nil {
		return err
	}
	admin := domain.AdminCredential{Username: username, PasswordHash: hash}
	return a.store.CreateAdmin(&admin)
}

// VerifyAdminToken compares the presented token against the configured shared
// secret in constant time.
func (a *App) VerifyAdminToken(token string) bool {
	return subtle.ConstantTimeCompare([]byte(token), a.adminToken) == 1
}

// EnsureNotBlocked is the blocked-user gate: when the email resolves to a
// blocked user it fails; an unresolvable actor passes silently.
func (a *App) EnsureNotBlocked(email string) error {
	if email == "" {
		return nil
	}
	user, ok, err := a.store.GetUserByEmail(email)
	if err != nil {
		return err
	}
	if ok && user.IsBlocked {
		return ErrUserBlocked
	}
	return nil
}

// SignUp validates and normalizes the email, hashes the password, and stores
// a new user.
func (a *App) SignUp(email, password string) (domain.User, error) {
	if email == "" || password == "" {
		return domain.User{}, ErrEmailAndPasswordRequired
	}
	normalized, err := util.NormalizeEmail(email)
	if err != nil {
		return domain.User{}, ErrInvalidEmail
	}
	exists, err := a.store.HasUserEmail(normalized)
	if err != nil {
		return domain.User{}, err
	}
	if exists {
		return domain.User{}, ErrEmailAlreadyRegistered
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return domain.User{}, err
	}
	user := domain.User{
		Email:        normalized,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := a.store.CreateUser(&user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// Login verifies credentials. Unknown email and wrong password fail the same
// way; a blocked user is rejected even with correct credentials.
func (a *App) Login(email, password string) (domain.User, error) {
	if email == "" || password == "" {
		return domain.User{}, ErrEmailAndPasswordRequired
	}
	user, ok, err := a.store.GetUserByEmail(email)
	if err != nil {
		return domain.User{}, err
	}
	if !ok || !auth.CheckPassword(password, user.PasswordHash) {
		return domain.User{}, ErrInvalidCredentials
	}
	if user.IsBlocked {
		return domain.User{}, ErrAccountBlocked
	}
	return user, nil
}

// AdminLogin verifies admin credentials and hands back the static admin
// token; it proves password knowledge rather than issuing a session.
func (a *App) AdminLogin(username, password string) (domain.AdminCredential, string, error) {
	if username == "" || password == "" {
		return domain.AdminCredential{}, "", ErrUsernameAndPasswordRequired
	}
	admin, ok, err := a.store.GetAdminByUsername(username)
	if err != nil {
		return domain.AdminCredential{}, "", err
	}
	if !ok || !auth.CheckPassword(password, admin.PasswordHash) {
		return domain.AdminCredential{}, "", ErrInvalidAdminCredentials
	}
	return admin, string(a.adminToken), nil
}

// AdminChangePassword replaces the stored admin hash after verifying the
// current password.
func (a *App) AdminChangePassword(username, currentPassword, newPassword string) error {
	if username == "" || currentPassword == "" || newPassword == "" {
		return ErrAllFieldsRequired
	}
	admin, ok, err := a.store.GetAdminByUsername(username)
	if err != nil {
		return err
	}
	if !ok || !auth.CheckPassword(currentPassword, admin.PasswordHash) {
		return ErrCurrentPasswordIncorrect
	}
	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return a.store.SetAdminPassword(username, hash)
}

// ListUsers returns every user for the admin listing.
func (a *App) ListUsers() ([]domain.User, error) {
	return a.store.ListUsers()
}

// ToggleBlocked flips the blocked flag and returns the updated user.
func (a *App) ToggleBlocked(id uint) (domain.User, error) {
	user, ok, err := a.store.GetUserByID(id)
	if err != nil {
		return domain.User{}, err
	}
	if !ok {
		return domain.User{}, ErrUserNotFound
	}
	user.IsBlocked = !user.IsBlocked
	if err := a.store.SetUserBlocked(id, user.IsBlocked); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// DeleteUser removes the user together with all owned sessions, messages,
// and documents.
func (a *App) DeleteUser(id uint) (domain.User, error) {
	user, ok, err := a.store.GetUserByID(id)
	if err != nil {
		return domain.User{}, err
	}
	if !ok {
		return domain.User{}, ErrUserNotFound
	}
	if err := a.store.DeleteUser(id); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// SessionHistory is a chat session together with its ordered messages.
type SessionHistory struct {
	Session  domain.ChatSession
	Messages []domain.ChatMessage
}

// UserHistory returns a user's sessions (with messages) and documents for the
// admin view.
func (a *App) UserHistory(id uint) (domain.User, []SessionHistory, []domain.Document, error) {
	user, ok, err := a.store.GetUserByID(id)
	if err != nil {
		return domain.User{}, nil, nil, err
	}
	if !ok {
		return domain.User{}, nil, nil, ErrUserNotFound
	}
	sessions, docs, err := a.collectUserData(user.ID)
	if err != nil {
		return domain.User{}, nil, nil, err
	}
	return user, sessions, docs, nil
}

// Profile returns the user identified by email with the same session and
// document materialization as the admin history.
func (a *App) Profile(email string) (domain.User, []SessionHistory, []domain.Document, error) {
	if email == "" {
		return domain.User{}, nil, nil, ErrEmailRequired
	}
	user, ok, err := a.store.GetUserByEmail(email)
	if err != nil {
		return domain.User{}, nil, nil, err
	}
	if !ok {
		return domain.User{}, nil, nil, ErrUserNotFound
	}
	sessions, docs, err := a.collectUserData(user.ID)
	if err != nil {
		return domain.User{}, nil, nil, err
	}
	return user, sessions, docs, nil
}

func (a *App) collectUserData(userID uint) ([]SessionHistory, []domain.Document, error) {
	sessions, err := a.store.ListSessionsByUser(userID)
	if err != nil {
		return nil, nil, err
	}
	histories := make([]SessionHistory, 0, len(sessions))
	for _, s := range sessions {
		messages, err := a.store.ListMessagesBySession(s.ID)
		if err != nil {
			return nil, nil, err
		}
		histories = append(histories, SessionHistory{Session: s, Messages: messages})
	}
	docs, err := a.store.ListDocumentsByUser(userID)
	if err != nil {
		return nil, nil, err
	}
	return histories, docs, nil
}

// UserStatus reports the blocked flag for the polled email.
func (a *App) UserStatus(email string) (domain.User, error) {
	if email == "" {
		return domain.User{}, ErrEmailRequired
	}
	user, ok, err := a.store.GetUserByEmail(email)
	if err != nil {
		return domain.User{}, err
	}
	if !ok {
		return domain.User{}, ErrUserNotFound
	}
	return user, nil
}

// TrackUsageByID bumps the usage counter and adds the caller-supplied token
// count. The token count is trusted as reported by the client.
func (a *App) TrackUsageByID(id uint, tokens int64) (domain.User, error) {
	_, ok, err := a.store.GetUserByID(id)
	if err != nil {
		return domain.User{}, err
	}
	if !ok {
		return domain.User{}, ErrUserNotFound
	}
	return a.store.AddUsage(id, tokens)
}

// TrackUsageByEmail resolves the user by email, re-checks the blocked flag,
// and bumps the counters.
func (a *App) TrackUsageByEmail(email string, tokens int64) (domain.User, error) {
	if email == "" {
		return domain.User{}, ErrUserEmailRequired
	}
	user, ok, err := a.store.GetUserByEmail(email)
	if err != nil {
		return domain.User{}, err
	}
	if !ok {
		return domain.User{}, ErrUserNotFound
	}
	if user.IsBlocked {
		return domain.User{}, ErrUserBlocked
	}
	return a.store.AddUsage(user.ID, tokens)
}

// CreateChatSession creates a session owned by the user behind the email.
func (a *App) CreateChatSession(email, title string) (domain.ChatSession, error) {
	if email == "" {
		return domain.ChatSession{}, ErrUserEmailRequired
	}
	user, ok, err := a.store.GetUserByEmail(email)
	if err != nil {
		return domain.ChatSession{}, err
	}
	if !ok {
		return domain.ChatSession{}, ErrUserNotFound
	}
	if title == "" {
		title = domain.DefaultSessionTitle
	}
	session := domain.ChatSession{
		UserID:    user.ID,
		Title:     title,
		CreatedAt: time.Now().UTC(),
	}
	if err := a.store.CreateSession(&session); err != nil {
		return domain.ChatSession{}, err
	}
	return session, nil
}

// AddChatMessage appends a message to an existing session. Role is
// constrained to the two-value enumeration.
func (a *App) AddChatMessage(sessionID uint, role, content string) (domain.ChatMessage, error) {
	_, ok, err := a.store.GetSession(sessionID)
	if err != nil {
		return domain.ChatMessage{}, err
	}
	if !ok {
		return domain.ChatMessage{}, ErrSessionNotFound
	}
	if role == "" || content == "" {
		return domain.ChatMessage{}, ErrRoleAndContentRequired
	}
	if !domain.ValidRole(role) {
		return domain.ChatMessage{}, ErrInvalidRole
	}
	message := domain.ChatMessage{
		SessionID: sessionID,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := a.store.CreateMessage(&message); err != nil {
		return domain.ChatMessage{}, err
	}
	return message, nil
}

// UploadDocument stores the payload verbatim: declared content type, declared
// filename, and the raw bytes. No sniffing, no size cap.
func (a *App) UploadDocument(email, filename, contentType string, data []byte) (domain.Document, error) {
	if email == "" {
		return domain.Document{}, ErrUserEmailRequired
	}
	if filename == "" {
		return domain.Document{}, ErrNoFileSelected
	}
	user, ok, err := a.store.GetUserByEmail(email)
	if err != nil {
		return domain.Document{}, err
	}
	if !ok {
		return domain.Document{}, ErrUserNotFound
	}
	doc := domain.Document{
		UserID:     user.ID,
		Filename:   filename,
		FileType:   contentType,
		FileSize:   int64(len(data)),
		FileData:   data,
		UploadedAt: time.Now().UTC(),
	}
	if err := a.store.CreateDocument(&doc); err != nil {
		return domain.Document{}, err
	}
	return doc, nil
}

// AllDocuments lists every document joined with its owner's email.
func (a *App) AllDocuments() ([]domain.DocumentWithOwner, error) {
	return a.store.ListDocumentsWithOwner()
}

// ListDocuments lists every document without payloads, for export.
func (a *App) ListDocuments() ([]domain.Document, error) {
	return a.store.ListDocuments()
}

// DocumentForDownload returns the full document row; a row without payload
// bytes is reported as missing file data.
func (a *App) DocumentForDownload(id uint) (domain.Document, error) {
	doc, ok, err := a.store.GetDocument(id)
	if err != nil {
		return domain.Document{}, err
	}
	if !ok {
		return domain.Document{}, ErrDocumentNotFound
	}
	if len(doc.FileData) == 0 {
		return domain.Document{}, ErrNoFileData
	}
	return doc, nil
}

// Stats aggregates the admin dashboard counters.
func (a *App) Stats() (domain.Stats, error) {
	return a.store.Stats()
}

// ClearChats wipes all chat sessions and messages, reporting both counts.
func (a *App) ClearChats() (sessions int64, messages int64, err error) {
	return a.store.ClearChats()
}
