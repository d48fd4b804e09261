package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/chatkeep/chatkeep/internal"
)

// JSONLExporter exports a session in JSONL format (one message per line)
type JSONLExporter struct{}

// Export exports a session's messages to JSONL format
func (e *JSONLExporter) Export(session *internal.Session, messages []internal.Message, w io.Writer) error {
	enc := json.NewEncoder(w)

	for _, msg := range messages {
		obj := map[string]interface{}{
			"role":    msg.Role,
			"content": msg.Content,
		}
		if msg.Timestamp != "" {
			obj["timestamp"] = msg.Timestamp
		}

		// Encode to single line
		if err := enc.Encode(obj); err != nil {
			return fmt.Errorf("failed to encode message: %w", err)
		}
	}

	return nil
}

// Extension returns the file extension for this format
func (e *JSONLExporter) Extension() string {
	return "jsonl"
}
