package cmd

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/chatkeep/chatkeep/internal"
)

// openTestStore opens the store a command run left behind
func openTestStore(t *testing.T, dir string) (*internal.Store, func()) {
	t.Helper()
	db, err := internal.OpenDatabase(filepath.Join(dir, "chat_history.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	return internal.NewStore(db), func() { db.Close() }
}

func TestNewAndDeleteCommands(t *testing.T) {
	dir := t.TempDir()

	if err := runCommand(t, dir, "new", "My chat"); err != nil {
		t.Fatalf("new: %v", err)
	}

	store, cleanup := openTestStore(t, dir)
	sessions, err := store.GetSessions()
	if err != nil {
		t.Fatalf("GetSessions() error = %v", err)
	}
	if len(sessions) != 1 || sessions[0].Title != "My chat" {
		t.Fatalf("unexpected sessions %+v", sessions)
	}
	id := sessions[0].ID
	cleanup()

	if err := runCommand(t, dir, "delete", id); err != nil {
		t.Fatalf("delete: %v", err)
	}

	store, cleanup = openTestStore(t, dir)
	defer cleanup()
	sessions, _ = store.GetSessions()
	if len(sessions) != 0 {
		t.Errorf("session should be gone, got %+v", sessions)
	}
}

func TestListAndShowCommands(t *testing.T) {
	dir := t.TempDir()

	if err := runCommand(t, dir, "list"); err != nil {
		t.Fatalf("list on empty store: %v", err)
	}

	if err := runCommand(t, dir, "new", "Visible"); err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := runCommand(t, dir, "list"); err != nil {
		t.Fatalf("list: %v", err)
	}

	store, cleanup := openTestStore(t, dir)
	sessions, _ := store.GetSessions()
	cleanup()
	if len(sessions) != 1 {
		t.Fatal("expected one session")
	}

	if err := runCommand(t, dir, "show", sessions[0].ID); err != nil {
		t.Fatalf("show: %v", err)
	}
	if err := runCommand(t, dir, "show", "no-such-session"); err == nil {
		t.Error("show of unknown session should error")
	}
}

func TestChatCommand_NoAPIKey(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CHATKEEP_API_KEY", "")

	err := runCommand(t, dir, "chat", "some-session", "hello")
	if err == nil {
		t.Fatal("chat without an API key should error")
	}
	if !strings.Contains(err.Error(), "API key") {
		t.Errorf("error %q should point at the missing API key", err)
	}
}
