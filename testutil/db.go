package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

// CreateInMemoryDB creates an in-memory SQLite database with the chatkeep
// schema for testing
func CreateInMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create in-memory database: %v", err)
	}
	// A second pool connection to :memory: would see an empty database
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS chat_sessions (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS messages (
		id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL,
		role TEXT NOT NULL,
		content TEXT NOT NULL,
		timestamp TEXT NOT NULL,
		FOREIGN KEY (session_id) REFERENCES chat_sessions(id)
	);`
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		t.Fatalf("Failed to create schema: %v", err)
	}

	return db
}

// InsertSession inserts a session row directly, bypassing the store
func InsertSession(t *testing.T, db *sql.DB, id, title, createdAt, updatedAt string) {
	t.Helper()
	_, err := db.Exec(
		"INSERT INTO chat_sessions (id, title, created_at, updated_at) VALUES (?, ?, ?, ?)",
		id, title, createdAt, updatedAt,
	)
	if err != nil {
		t.Fatalf("Failed to insert session %s: %v", id, err)
	}
}

// InsertMessage inserts a message row directly, bypassing the store
func InsertMessage(t *testing.T, db *sql.DB, id, sessionID, role, content, timestamp string) {
	t.Helper()
	_, err := db.Exec(
		"INSERT INTO messages (id, session_id, role, content, timestamp) VALUES (?, ?, ?, ?, ?)",
		id, sessionID, role, content, timestamp,
	)
	if err != nil {
		t.Fatalf("Failed to insert message %s: %v", id, err)
	}
}

// CountRows returns the number of rows in a table
func CountRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err != nil {
		t.Fatalf("Failed to count rows in %s: %v", table, err)
	}
	return count
}
