package export

import (
	"encoding/json"
	"io"

	"github.com/chatkeep/chatkeep/internal"
)

// JSONExporter exports a session in JSON format (pretty-printed)
type JSONExporter struct{}

type sessionDocument struct {
	Session  *internal.Session  `json:"session" yaml:"session"`
	Messages []internal.Message `json:"messages" yaml:"messages"`
}

// Export exports a session and its messages to JSON format
func (e *JSONExporter) Export(session *internal.Session, messages []internal.Message, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(&sessionDocument{Session: session, Messages: messages})
}

// Extension returns the file extension for this format
func (e *JSONExporter) Extension() string {
	return "json"
}
