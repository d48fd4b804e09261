package internal

import (
	"errors"
	"fmt"
	"testing"

	"github.com/chatkeep/chatkeep/testutil"
)

func TestStore_CreateSession(t *testing.T) {
	db := testutil.CreateInMemoryDB(t)
	defer db.Close()
	store := NewStore(db)

	id, err := store.CreateSession("Demo")
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	if id == "" {
		t.Fatal("CreateSession() returned empty id")
	}

	sess, err := store.GetSession(id)
	if err != nil {
		t.Fatalf("GetSession() error = %v", err)
	}
	if sess.Title != "Demo" {
		t.Errorf("Title = %q, want %q", sess.Title, "Demo")
	}
	if sess.CreatedAt == "" || sess.UpdatedAt == "" {
		t.Error("CreatedAt and UpdatedAt should be set")
	}
	if sess.UpdatedAt != sess.CreatedAt {
		t.Errorf("UpdatedAt = %q, want CreatedAt %q for a fresh session", sess.UpdatedAt, sess.CreatedAt)
	}
}

func TestStore_AddMessage(t *testing.T) {
	db := testutil.CreateInMemoryDB(t)
	defer db.Close()
	store := NewStore(db)

	sessionID, err := store.CreateSession("Demo")
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}

	msgID, err := store.AddMessage(sessionID, "user", "hi")
	if err != nil {
		t.Fatalf("AddMessage() error = %v", err)
	}

	messages, err := store.GetMessages(sessionID)
	if err != nil {
		t.Fatalf("GetMessages() error = %v", err)
	}
	if len(messages) != 1 {
		t.Fatalf("GetMessages() returned %d messages, want 1", len(messages))
	}

	msg := messages[0]
	if msg.ID != msgID || msg.SessionID != sessionID || msg.Role != "user" || msg.Content != "hi" {
		t.Errorf("unexpected message %+v", msg)
	}

	// The parent session's updated_at must equal the message timestamp
	sess, err := store.GetSession(sessionID)
	if err != nil {
		t.Fatalf("GetSession() error = %v", err)
	}
	if sess.UpdatedAt != msg.Timestamp {
		t.Errorf("session UpdatedAt = %q, want message timestamp %q", sess.UpdatedAt, msg.Timestamp)
	}
	if sess.UpdatedAt < sess.CreatedAt {
		t.Errorf("UpdatedAt %q should not precede CreatedAt %q", sess.UpdatedAt, sess.CreatedAt)
	}
}

func TestStore_AddMessage_UnknownSession(t *testing.T) {
	db := testutil.CreateInMemoryDB(t)
	defer db.Close()
	store := NewStore(db)

	_, err := store.AddMessage("nope", "user", "hi")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("AddMessage() error = %v, want ErrNotFound", err)
	}
	if testutil.CountRows(t, db, "messages") != 0 {
		t.Error("no message row should exist after a failed AddMessage")
	}
}

func TestStore_GetSessions_Ordering(t *testing.T) {
	db := testutil.CreateInMemoryDB(t)
	defer db.Close()
	store := NewStore(db)

	first, _ := store.CreateSession("first")
	second, _ := store.CreateSession("second")
	third, _ := store.CreateSession("third")

	// Activity on the oldest session makes it the most recent
	if _, err := store.AddMessage(first, "user", "bump"); err != nil {
		t.Fatalf("AddMessage() error = %v", err)
	}

	sessions, err := store.GetSessions()
	if err != nil {
		t.Fatalf("GetSessions() error = %v", err)
	}
	if len(sessions) != 3 {
		t.Fatalf("GetSessions() returned %d sessions, want 3", len(sessions))
	}
	if sessions[0].ID != first {
		t.Errorf("sessions[0].ID = %s, want %s (most recently active)", sessions[0].ID, first)
	}
	for i := 1; i < len(sessions); i++ {
		if sessions[i-1].UpdatedAt < sessions[i].UpdatedAt {
			t.Errorf("sessions not sorted by updated_at descending at index %d", i)
		}
	}
	_ = second
	_ = third
}

func TestStore_GetMessages_Ordering(t *testing.T) {
	db := testutil.CreateInMemoryDB(t)
	defer db.Close()
	store := NewStore(db)

	sessionID, _ := store.CreateSession("Demo")
	for i := 0; i < 5; i++ {
		if _, err := store.AddMessage(sessionID, "user", fmt.Sprintf("msg %d", i)); err != nil {
			t.Fatalf("AddMessage() error = %v", err)
		}
	}

	messages, err := store.GetMessages(sessionID)
	if err != nil {
		t.Fatalf("GetMessages() error = %v", err)
	}
	if len(messages) != 5 {
		t.Fatalf("GetMessages() returned %d messages, want 5", len(messages))
	}
	for i, msg := range messages {
		if msg.Content != fmt.Sprintf("msg %d", i) {
			t.Errorf("messages[%d].Content = %q, want %q", i, msg.Content, fmt.Sprintf("msg %d", i))
		}
	}
}

func TestStore_GetMessages_TieBreakByInsertionOrder(t *testing.T) {
	db := testutil.CreateInMemoryDB(t)
	defer db.Close()
	store := NewStore(db)

	testutil.InsertSession(t, db, "s1", "Demo", "2024-01-01T00:00:00Z", "2024-01-01T00:00:00Z")
	// Identical timestamps: insertion order must win
	ts := "2024-01-01T10:00:00Z"
	testutil.InsertMessage(t, db, "m1", "s1", "user", "first", ts)
	testutil.InsertMessage(t, db, "m2", "s1", "assistant", "second", ts)
	testutil.InsertMessage(t, db, "m3", "s1", "user", "third", ts)

	messages, err := store.GetMessages("s1")
	if err != nil {
		t.Fatalf("GetMessages() error = %v", err)
	}
	want := []string{"first", "second", "third"}
	for i, msg := range messages {
		if msg.Content != want[i] {
			t.Errorf("messages[%d].Content = %q, want %q", i, msg.Content, want[i])
		}
	}
}

func TestStore_GetMessages_EmptySession(t *testing.T) {
	db := testutil.CreateInMemoryDB(t)
	defer db.Close()
	store := NewStore(db)

	sessionID, _ := store.CreateSession("Demo")
	messages, err := store.GetMessages(sessionID)
	if err != nil {
		t.Fatalf("GetMessages() error = %v", err)
	}
	if messages == nil {
		t.Error("GetMessages() should return an empty slice, not nil")
	}
	if len(messages) != 0 {
		t.Errorf("GetMessages() returned %d messages, want 0", len(messages))
	}
}

func TestStore_DeleteSession_Cascades(t *testing.T) {
	db := testutil.CreateInMemoryDB(t)
	defer db.Close()
	store := NewStore(db)

	keep, _ := store.CreateSession("keep")
	drop, _ := store.CreateSession("drop")
	store.AddMessage(keep, "user", "stays")
	store.AddMessage(drop, "user", "goes")
	store.AddMessage(drop, "assistant", "goes too")

	if err := store.DeleteSession(drop); err != nil {
		t.Fatalf("DeleteSession() error = %v", err)
	}

	if testutil.CountRows(t, db, "chat_sessions") != 1 {
		t.Error("expected exactly one session left")
	}
	messages, _ := store.GetMessages(keep)
	if len(messages) != 1 {
		t.Errorf("unrelated session lost messages: got %d, want 1", len(messages))
	}
	if got := testutil.CountRows(t, db, "messages"); got != 1 {
		t.Errorf("messages table has %d rows, want 1", got)
	}
}

func TestStore_DeleteSession_Idempotent(t *testing.T) {
	db := testutil.CreateInMemoryDB(t)
	defer db.Close()
	store := NewStore(db)

	if err := store.DeleteSession("never-existed"); err != nil {
		t.Errorf("DeleteSession() of unknown session should be a no-op success, got %v", err)
	}
}

func TestStore_DeleteSession_Atomicity(t *testing.T) {
	db := testutil.CreateInMemoryDB(t)
	defer db.Close()
	store := NewStore(db)

	sessionID, _ := store.CreateSession("Demo")
	store.AddMessage(sessionID, "user", "hi")
	store.AddMessage(sessionID, "assistant", "hello")

	store.deleteFault = func() error {
		return errors.New("simulated fault")
	}

	err := store.DeleteSession(sessionID)
	if err == nil {
		t.Fatal("DeleteSession() should fail when the transaction faults")
	}
	var storeErr *StoreError
	if !errors.As(err, &storeErr) {
		t.Errorf("DeleteSession() error = %T, want *StoreError", err)
	}

	// Neither the session nor its messages may be gone
	if testutil.CountRows(t, db, "chat_sessions") != 1 {
		t.Error("session row was removed despite rollback")
	}
	if testutil.CountRows(t, db, "messages") != 2 {
		t.Error("message rows were removed despite rollback")
	}
}

func TestStore_EndToEnd(t *testing.T) {
	db := testutil.CreateInMemoryDB(t)
	defer db.Close()
	store := NewStore(db)

	sessionID, err := store.CreateSession("Demo")
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	msgID, err := store.AddMessage(sessionID, "user", "hi")
	if err != nil {
		t.Fatalf("AddMessage() error = %v", err)
	}

	messages, err := store.GetMessages(sessionID)
	if err != nil {
		t.Fatalf("GetMessages() error = %v", err)
	}
	if len(messages) != 1 {
		t.Fatalf("GetMessages() returned %d messages, want 1", len(messages))
	}
	msg := messages[0]
	if msg.ID != msgID || msg.SessionID != sessionID || msg.Role != "user" || msg.Content != "hi" {
		t.Errorf("unexpected message %+v", msg)
	}

	sessions, err := store.GetSessions()
	if err != nil {
		t.Fatalf("GetSessions() error = %v", err)
	}
	if len(sessions) == 0 || sessions[0].ID != sessionID {
		t.Fatal("the demo session should be first in GetSessions()")
	}
	if sessions[0].UpdatedAt != msg.Timestamp {
		t.Errorf("session UpdatedAt = %q, want %q", sessions[0].UpdatedAt, msg.Timestamp)
	}
}
