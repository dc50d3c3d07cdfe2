package store

import (
	"sort"
	"sync"
	"time"

	"docuchat/pkg/domain"
)

// MemoryStore keeps everything in-process. It backs handler and app tests so
// they run without a database.
type MemoryStore struct {
	mu sync.RWMutex

	users     map[uint]domain.User
	emails    map[string]uint // email -> user ID
	admins    map[string]domain.AdminCredential
	sessions  map[uint]domain.ChatSession
	messages  map[uint]domain.ChatMessage
	documents map[uint]domain.Document

	nextUserID    uint
	nextAdminID   uint
	nextSessionID uint
	nextMessageID uint
	nextDocID     uint
}

// NewMemoryStore initializes an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:     make(map[uint]domain.User),
		emails:    make(map[string]uint),
		admins:    make(map[string]domain.AdminCredential),
		sessions:  make(map[uint]domain.ChatSession),
		messages:  make(map[uint]domain.ChatMessage),
		documents: make(map[uint]domain.Document),
	}
}

var _ Store = (*MemoryStore)(nil)

func (m *MemoryStore) CreateUser(u *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextUserID++
	u.ID = m.nextUserID
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	m.users[u.ID] = *u
	m.emails[u.Email] = u.ID
	return nil
}

func (m *MemoryStore) HasUserEmail(email string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.emails[email]
	return ok, nil
}

func (m *MemoryStore) GetUserByEmail(email string) (domain.User, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.emails[email]
	if !ok {
		return domain.User{}, false, nil
	}
	return m.users[id], true, nil
}

func (m *MemoryStore) GetUserByID(id uint) (domain.User, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	return u, ok, nil
}

func (m *MemoryStore) ListUsers() ([]domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.User, 0, len(m.users))
	for _, u := range m.users {
		res = append(res, u)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

func (m *MemoryStore) SetUserBlocked(id uint, blocked bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil
	}
	u.IsBlocked = blocked
	m.users[id] = u
	return nil
}

func (m *MemoryStore) AddUsage(id uint, tokens int64) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return domain.User{}, nil
	}
	u.AIUsageCount++
	u.AITokensUsed += tokens
	m.users[id] = u
	return u, nil
}

func (m *MemoryStore) DeleteUser(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil
	}
	delete(m.users, id)
	delete(m.emails, u.Email)
	for sid, s := range m.sessions {
		if s.UserID != id {
			continue
		}
		delete(m.sessions, sid)
		for mid, msg := range m.messages {
			if msg.SessionID == sid {
				delete(m.messages, mid)
			}
		}
	}
	for did, d := range m.documents {
		if d.UserID == id {
			delete(m.documents, did)
		}
	}
	return nil
}

func (m *MemoryStore) HasAdmin() (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.admins) > 0, nil
}

func (m *MemoryStore) CreateAdmin(a *domain.AdminCredential) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextAdminID++
	a.ID = m.nextAdminID
	m.admins[a.Username] = *a
	return nil
}

func (m *MemoryStore) GetAdminByUsername(username string) (domain.AdminCredential, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.admins[username]
	return a, ok, nil
}

func (m *MemoryStore) SetAdminPassword(username, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.admins[username]
	if !ok {
		return nil
	}
	a.PasswordHash = passwordHash
	m.admins[username] = a
	return nil
}

func (m *MemoryStore) CreateSession(s *domain.ChatSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextSessionID++
	s.ID = m.nextSessionID
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	m.sessions[s.ID] = *s
	return nil
}

func (m *MemoryStore) GetSession(id uint) (domain.ChatSession, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok, nil
}

func (m *MemoryStore) ListSessionsByUser(userID uint) ([]domain.ChatSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.ChatSession, 0)
	for _, s := range m.sessions {
		if s.UserID == userID {
			res = append(res, s)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

func (m *MemoryStore) CreateMessage(msg *domain.ChatMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextMessageID++
	msg.ID = m.nextMessageID
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}
	m.messages[msg.ID] = *msg
	return nil
}

func (m *MemoryStore) ListMessagesBySession(sessionID uint) ([]domain.ChatMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.ChatMessage, 0)
	for _, msg := range m.messages {
		if msg.SessionID == sessionID {
			res = append(res, msg)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

func (m *MemoryStore) ClearChats() (int64, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sessions := int64(len(m.sessions))
	messages := int64(len(m.messages))
	m.sessions = make(map[uint]domain.ChatSession)
	m.messages = make(map[uint]domain.ChatMessage)
	return sessions, messages, nil
}

func (m *MemoryStore) CreateDocument(d *domain.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextDocID++
	d.ID = m.nextDocID
	if d.UploadedAt.IsZero() {
		d.UploadedAt = time.Now().UTC()
	}
	m.documents[d.ID] = *d
	return nil
}

func (m *MemoryStore) GetDocument(id uint) (domain.Document, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.documents[id]
	return d, ok, nil
}

func (m *MemoryStore) ListDocumentsByUser(userID uint) ([]domain.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.Document, 0)
	for _, d := range m.documents {
		if d.UserID == userID {
			res = append(res, stripPayload(d))
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

func (m *MemoryStore) ListDocuments() ([]domain.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.Document, 0, len(m.documents))
	for _, d := range m.documents {
		res = append(res, stripPayload(d))
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

func (m *MemoryStore) ListDocumentsWithOwner() ([]domain.DocumentWithOwner, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.DocumentWithOwner, 0, len(m.documents))
	for _, d := range m.documents {
		owner := m.users[d.UserID]
		res = append(res, domain.DocumentWithOwner{
			Document:  stripPayload(d),
			UserEmail: owner.Email,
		})
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

func (m *MemoryStore) Stats() (domain.Stats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	stats := domain.Stats{
		TotalUsers:     len(m.users),
		TotalDocuments: len(m.documents),
		TotalChats:     len(m.sessions),
	}
	for _, u := range m.users {
		if u.IsBlocked {
			stats.BlockedUsers++
		}
		stats.TotalAICalls += int64(u.AIUsageCount)
	}
	return stats, nil
}

func stripPayload(d domain.Document) domain.Document {
	d.FileData = nil
	return d
}
