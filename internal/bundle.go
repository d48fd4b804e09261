package internal

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Export assembles the full history into an ExportBundle and writes it as
// JSON. If any read or the write fails, no bundle has been produced and the
// caller must not trust partial output.
func (s *Store) Export(w io.Writer) error {
	sessions, err := s.GetSessions()
	if err != nil {
		return err
	}

	bundle := ExportBundle{
		Sessions:   sessions,
		Messages:   []Message{},
		Version:    BundleVersion,
		ExportedAt: Now(),
	}
	if bundle.Sessions == nil {
		bundle.Sessions = []Session{}
	}

	for _, sess := range sessions {
		messages, err := s.GetMessages(sess.ID)
		if err != nil {
			return err
		}
		bundle.Messages = append(bundle.Messages, messages...)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(&bundle); err != nil {
		return fmt.Errorf("failed to encode bundle: %w", err)
	}
	return nil
}

// ExportToFile writes the export bundle to the given path
func (s *Store) ExportToFile(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}

	if err := s.Export(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// Import reads an export bundle and upserts its sessions and messages in a
// single transaction. Any failure rolls back completely: the store retains
// exactly its pre-import state. Unknown fields in the bundle are ignored;
// missing required fields fail the whole import.
func (s *Store) Import(r io.Reader) error {
	var bundle ExportBundle
	if err := json.NewDecoder(r).Decode(&bundle); err != nil {
		return &MalformedBundleError{Reason: "invalid JSON", Err: err}
	}

	if err := validateBundle(&bundle); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return &StoreError{Op: "import", Err: err}
	}
	defer tx.Rollback()

	// True upserts: INSERT OR REPLACE would delete-and-reinsert a session
	// row, tripping foreign key enforcement for its existing messages.
	for _, sess := range bundle.Sessions {
		if _, err := tx.Exec(
			`INSERT INTO chat_sessions (id, title, created_at, updated_at) VALUES (?, ?, ?, ?)
			 ON CONFLICT(id) DO UPDATE SET
			   title = excluded.title,
			   created_at = excluded.created_at,
			   updated_at = excluded.updated_at`,
			sess.ID, sess.Title, sess.CreatedAt, sess.UpdatedAt,
		); err != nil {
			return &StoreError{Op: "import", Err: err}
		}
	}

	for _, msg := range bundle.Messages {
		if _, err := tx.Exec(
			`INSERT INTO messages (id, session_id, role, content, timestamp) VALUES (?, ?, ?, ?, ?)
			 ON CONFLICT(id) DO UPDATE SET
			   session_id = excluded.session_id,
			   role = excluded.role,
			   content = excluded.content,
			   timestamp = excluded.timestamp`,
			msg.ID, msg.SessionID, msg.Role, msg.Content, msg.Timestamp,
		); err != nil {
			return &StoreError{Op: "import", Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return &StoreError{Op: "import", Err: err}
	}

	LogInfo("Imported %d session(s) and %d message(s) (bundle version %s)",
		len(bundle.Sessions), len(bundle.Messages), bundle.Version)
	return nil
}

// ImportFromFile reads an export bundle from the given path
func (s *Store) ImportFromFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open import file: %w", err)
	}
	defer file.Close()

	return s.Import(file)
}

// validateBundle checks the required fields of an imported bundle. The
// version tag is carried through but not matched against a supported set.
func validateBundle(bundle *ExportBundle) error {
	if bundle.Sessions == nil {
		return &MalformedBundleError{Reason: "missing sessions"}
	}
	if bundle.Messages == nil {
		return &MalformedBundleError{Reason: "missing messages"}
	}
	if bundle.Version == "" {
		return &MalformedBundleError{Reason: "missing version"}
	}

	for _, sess := range bundle.Sessions {
		if sess.ID == "" {
			return &MalformedBundleError{Reason: "session without id"}
		}
	}
	for _, msg := range bundle.Messages {
		if msg.ID == "" {
			return &MalformedBundleError{Reason: "message without id"}
		}
		if msg.SessionID == "" {
			return &MalformedBundleError{Reason: fmt.Sprintf("message %s without sessionId", msg.ID)}
		}
	}
	return nil
}
