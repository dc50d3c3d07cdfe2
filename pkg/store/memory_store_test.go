package store

import (
	"testing"

	"docuchat/pkg/domain"
)

func TestMemoryStoreUserLifecycle(t *testing.T) {
	m := NewMemoryStore()

	u := domain.User{Email: "alice@example.com", PasswordHash: "hash"}
	if err := m.CreateUser(&u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if u.ID == 0 {
		t.Fatal("expected assigned user ID")
	}

	exists, err := m.HasUserEmail("alice@example.com")
	if err != nil || !exists {
		t.Fatalf("HasUserEmail = %v, %v; want true, nil", exists, err)
	}

	got, ok, err := m.GetUserByEmail("alice@example.com")
	if err != nil || !ok || got.ID != u.ID {
		t.Fatalf("GetUserByEmail = %+v, %v, %v", got, ok, err)
	}

	if err := m.SetUserBlocked(u.ID, true); err != nil {
		t.Fatalf("set blocked: %v", err)
	}
	got, _, _ = m.GetUserByID(u.ID)
	if !got.IsBlocked {
		t.Fatal("expected user to be blocked")
	}
}

func TestMemoryStoreAddUsage(t *testing.T) {
	m := NewMemoryStore()
	u := domain.User{Email: "bob@example.com"}
	if err := m.CreateUser(&u); err != nil {
		t.Fatalf("create user: %v", err)
	}

	updated, err := m.AddUsage(u.ID, 120)
	if err != nil {
		t.Fatalf("add usage: %v", err)
	}
	if updated.AIUsageCount != 1 || updated.AITokensUsed != 120 {
		t.Fatalf("unexpected counters: %+v", updated)
	}

	updated, _ = m.AddUsage(u.ID, 30)
	if updated.AIUsageCount != 2 || updated.AITokensUsed != 150 {
		t.Fatalf("counters should accumulate: %+v", updated)
	}
}

func TestMemoryStoreDeleteUserCascades(t *testing.T) {
	m := NewMemoryStore()
	u := domain.User{Email: "carol@example.com"}
	if err := m.CreateUser(&u); err != nil {
		t.Fatalf("create user: %v", err)
	}

	s := domain.ChatSession{UserID: u.ID, Title: "Session"}
	if err := m.CreateSession(&s); err != nil {
		t.Fatalf("create session: %v", err)
	}
	msg := domain.ChatMessage{SessionID: s.ID, Role: domain.RoleUser, Content: "hi"}
	if err := m.CreateMessage(&msg); err != nil {
		t.Fatalf("create message: %v", err)
	}
	doc := domain.Document{UserID: u.ID, Filename: "a.txt", FileData: []byte("x")}
	if err := m.CreateDocument(&doc); err != nil {
		t.Fatalf("create document: %v", err)
	}

	if err := m.DeleteUser(u.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}
	if _, ok, _ := m.GetSession(s.ID); ok {
		t.Fatal("session should be deleted with its owner")
	}
	msgs, _ := m.ListMessagesBySession(s.ID)
	if len(msgs) != 0 {
		t.Fatalf("messages should be deleted, got %d", len(msgs))
	}
	if _, ok, _ := m.GetDocument(doc.ID); ok {
		t.Fatal("document should be deleted with its owner")
	}
	if exists, _ := m.HasUserEmail("carol@example.com"); exists {
		t.Fatal("email index should be cleared")
	}
}

func TestMemoryStoreClearChats(t *testing.T) {
	m := NewMemoryStore()
	u := domain.User{Email: "dave@example.com"}
	_ = m.CreateUser(&u)

	for i := 0; i < 2; i++ {
		s := domain.ChatSession{UserID: u.ID, Title: "Session"}
		_ = m.CreateSession(&s)
		for j := 0; j < 3; j++ {
			_ = m.CreateMessage(&domain.ChatMessage{SessionID: s.ID, Role: domain.RoleUser, Content: "m"})
		}
	}

	sessions, messages, err := m.ClearChats()
	if err != nil {
		t.Fatalf("clear chats: %v", err)
	}
	if sessions != 2 || messages != 6 {
		t.Fatalf("ClearChats = %d sessions, %d messages; want 2, 6", sessions, messages)
	}
	if got, _ := m.ListSessionsByUser(u.ID); len(got) != 0 {
		t.Fatal("no sessions should remain")
	}
}

func TestMemoryStoreDocumentListingsStripPayload(t *testing.T) {
	m := NewMemoryStore()
	u := domain.User{Email: "erin@example.com"}
	_ = m.CreateUser(&u)
	doc := domain.Document{UserID: u.ID, Filename: "report.pdf", FileData: []byte("payload")}
	_ = m.CreateDocument(&doc)

	listed, err := m.ListDocuments()
	if err != nil {
		t.Fatalf("list documents: %v", err)
	}
	if len(listed) != 1 || listed[0].FileData != nil {
		t.Fatalf("listing should strip payload: %+v", listed)
	}

	withOwner, err := m.ListDocumentsWithOwner()
	if err != nil {
		t.Fatalf("list with owner: %v", err)
	}
	if len(withOwner) != 1 || withOwner[0].UserEmail != "erin@example.com" {
		t.Fatalf("unexpected owner join: %+v", withOwner)
	}
	if withOwner[0].FileData != nil {
		t.Fatal("owner listing should strip payload")
	}

	full, ok, err := m.GetDocument(doc.ID)
	if err != nil || !ok || string(full.FileData) != "payload" {
		t.Fatalf("GetDocument should keep payload: %+v, %v, %v", full, ok, err)
	}
}

func TestMemoryStoreStats(t *testing.T) {
	m := NewMemoryStore()
	a := domain.User{Email: "a@example.com"}
	b := domain.User{Email: "b@example.com"}
	_ = m.CreateUser(&a)
	_ = m.CreateUser(&b)
	_ = m.SetUserBlocked(b.ID, true)
	_, _ = m.AddUsage(a.ID, 10)
	_, _ = m.AddUsage(a.ID, 5)

	s := domain.ChatSession{UserID: a.ID}
	_ = m.CreateSession(&s)
	d := domain.Document{UserID: a.ID, Filename: "f"}
	_ = m.CreateDocument(&d)

	stats, err := m.Stats()
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalUsers != 2 || stats.BlockedUsers != 1 {
		t.Fatalf("unexpected user counts: %+v", stats)
	}
	if stats.TotalChats != 1 || stats.TotalDocuments != 1 {
		t.Fatalf("unexpected chat/document counts: %+v", stats)
	}
	if stats.TotalAICalls != 2 {
		t.Fatalf("TotalAICalls = %d, want 2", stats.TotalAICalls)
	}
}
