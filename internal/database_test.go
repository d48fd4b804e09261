package internal

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOpenDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "chat_history.db")

	db, err := OpenDatabase(path)
	if err != nil {
		t.Fatalf("OpenDatabase() error = %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(path); err != nil {
		t.Errorf("database file was not created: %v", err)
	}

	// Schema is in place
	for _, table := range []string{"chat_sessions", "messages"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}

	// Foreign keys are enforced
	var fk int
	if err := db.QueryRow("PRAGMA foreign_keys").Scan(&fk); err != nil {
		t.Fatalf("PRAGMA foreign_keys failed: %v", err)
	}
	if fk != 1 {
		t.Error("foreign key enforcement should be enabled")
	}
}

func TestOpenDatabase_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chat_history.db")

	db, err := OpenDatabase(path)
	if err != nil {
		t.Fatalf("OpenDatabase() error = %v", err)
	}
	store := NewStore(db)
	id, err := store.CreateSession("persisted")
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	db.Close()

	// Opening again must keep existing data and not error on the schema
	db2, err := OpenDatabase(path)
	if err != nil {
		t.Fatalf("OpenDatabase() reopen error = %v", err)
	}
	defer db2.Close()

	sess, err := NewStore(db2).GetSession(id)
	if err != nil {
		t.Fatalf("GetSession() after reopen error = %v", err)
	}
	if sess.Title != "persisted" {
		t.Errorf("Title = %q, want persisted", sess.Title)
	}
}
