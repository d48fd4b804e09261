package internal

import (
	"time"

	"github.com/google/uuid"
)

// Session represents a named conversation container
type Session struct {
	ID        string `json:"id" yaml:"id"`
	Title     string `json:"title" yaml:"title"`
	CreatedAt string `json:"createdAt" yaml:"created_at"`
	UpdatedAt string `json:"updatedAt" yaml:"updated_at"`
}

// Message represents one turn of a conversation, immutable once stored
type Message struct {
	ID        string `json:"id" yaml:"id"`
	SessionID string `json:"sessionId" yaml:"session_id"`
	Role      string `json:"role" yaml:"role"`
	Content   string `json:"content" yaml:"content"`
	Timestamp string `json:"timestamp" yaml:"timestamp"`
}

// ChatMessage is the wire form of a message sent to the completion API
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ExportBundle is the transient container for a full history export
type ExportBundle struct {
	Sessions   []Session `json:"sessions"`
	Messages   []Message `json:"messages"`
	Version    string    `json:"version"`
	ExportedAt string    `json:"exportedAt"`
}

// BundleVersion is the current export bundle schema tag
const BundleVersion = "1.0"

// NewID generates a fresh unique identifier
func NewID() string {
	return uuid.NewString()
}

// TimestampLayout is RFC3339 with a fixed-width fraction so that stored
// timestamps sort lexicographically
const TimestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Now returns the current time as a sortable RFC3339 UTC string
func Now() string {
	return time.Now().UTC().Format(TimestampLayout)
}
