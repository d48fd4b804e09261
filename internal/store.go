package internal

import (
	"database/sql"
	"fmt"
)

// Store provides durable CRUD and transactional bulk operations over
// sessions and messages. All mutating operations are all-or-nothing.
type Store struct {
	db *sql.DB

	// deleteFault, when set, runs between the message and session deletes
	// inside DeleteSession's transaction. Test hook only.
	deleteFault func() error
}

// NewStore creates a store over an open database
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying handle for test seeding
func (s *Store) DB() *sql.DB {
	return s.db
}

// CreateSession inserts a new session and returns its id
func (s *Store) CreateSession(title string) (string, error) {
	id := NewID()
	now := Now()

	_, err := s.db.Exec(
		"INSERT INTO chat_sessions (id, title, created_at, updated_at) VALUES (?, ?, ?, ?)",
		id, title, now, now,
	)
	if err != nil {
		return "", &StoreError{Op: "insert", Err: err}
	}

	return id, nil
}

// AddMessage appends a message to a session and bumps the session's
// updated_at to the message timestamp. Both effects are committed in one
// transaction; neither is visible without the other.
func (s *Store) AddMessage(sessionID, role, content string) (string, error) {
	id := NewID()
	now := Now()

	tx, err := s.db.Begin()
	if err != nil {
		return "", &StoreError{Op: "insert", Err: err}
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRow("SELECT COUNT(*) FROM chat_sessions WHERE id = ?", sessionID).Scan(&exists)
	if err != nil {
		return "", &StoreError{Op: "insert", Err: err}
	}
	if exists == 0 {
		return "", fmt.Errorf("%w: %s", ErrNotFound, sessionID)
	}

	if _, err := tx.Exec(
		"INSERT INTO messages (id, session_id, role, content, timestamp) VALUES (?, ?, ?, ?, ?)",
		id, sessionID, role, content, now,
	); err != nil {
		return "", &StoreError{Op: "insert", Err: err}
	}

	if _, err := tx.Exec(
		"UPDATE chat_sessions SET updated_at = ? WHERE id = ?",
		now, sessionID,
	); err != nil {
		return "", &StoreError{Op: "insert", Err: err}
	}

	if err := tx.Commit(); err != nil {
		return "", &StoreError{Op: "insert", Err: err}
	}

	return id, nil
}

// GetSessions returns all sessions, most recently active first
func (s *Store) GetSessions() ([]Session, error) {
	rows, err := s.db.Query(
		"SELECT id, title, created_at, updated_at FROM chat_sessions ORDER BY updated_at DESC",
	)
	if err != nil {
		return nil, &StoreError{Op: "query", Err: err}
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var sess Session
		if err := rows.Scan(&sess.ID, &sess.Title, &sess.CreatedAt, &sess.UpdatedAt); err != nil {
			return nil, &StoreError{Op: "query", Err: err}
		}
		sessions = append(sessions, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, &StoreError{Op: "query", Err: err}
	}

	return sessions, nil
}

// GetMessages returns a session's messages in chronological order, ties
// broken by insertion order. A session with no messages yields an empty
// slice, not an error.
func (s *Store) GetMessages(sessionID string) ([]Message, error) {
	rows, err := s.db.Query(
		`SELECT id, session_id, role, content, timestamp FROM messages
		 WHERE session_id = ? ORDER BY timestamp ASC, rowid ASC`,
		sessionID,
	)
	if err != nil {
		return nil, &StoreError{Op: "query", Err: err}
	}
	defer rows.Close()

	messages := []Message{}
	for rows.Next() {
		var msg Message
		if err := rows.Scan(&msg.ID, &msg.SessionID, &msg.Role, &msg.Content, &msg.Timestamp); err != nil {
			return nil, &StoreError{Op: "query", Err: err}
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, &StoreError{Op: "query", Err: err}
	}

	return messages, nil
}

// GetSession returns a single session by id
func (s *Store) GetSession(sessionID string) (*Session, error) {
	var sess Session
	err := s.db.QueryRow(
		"SELECT id, title, created_at, updated_at FROM chat_sessions WHERE id = ?",
		sessionID,
	).Scan(&sess.ID, &sess.Title, &sess.CreatedAt, &sess.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, sessionID)
	}
	if err != nil {
		return nil, &StoreError{Op: "query", Err: err}
	}
	return &sess, nil
}

// DeleteSession removes a session and all its messages in one transaction.
// Deleting a session that does not exist is a no-op success.
func (s *Store) DeleteSession(sessionID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return &StoreError{Op: "delete", Err: err}
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM messages WHERE session_id = ?", sessionID); err != nil {
		return &StoreError{Op: "delete", Err: err}
	}
	if s.deleteFault != nil {
		if err := s.deleteFault(); err != nil {
			return &StoreError{Op: "delete", Err: err}
		}
	}
	if _, err := tx.Exec("DELETE FROM chat_sessions WHERE id = ?", sessionID); err != nil {
		return &StoreError{Op: "delete", Err: err}
	}

	if err := tx.Commit(); err != nil {
		return &StoreError{Op: "delete", Err: err}
	}
	return nil
}
