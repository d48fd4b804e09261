package export

import (
	"io"

	"github.com/chatkeep/chatkeep/internal"
	"gopkg.in/yaml.v3"
)

// YAMLExporter exports a session in YAML format
type YAMLExporter struct{}

// Export exports a session and its messages to YAML format
func (e *YAMLExporter) Export(session *internal.Session, messages []internal.Message, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer func() { _ = enc.Close() }()

	return enc.Encode(&sessionDocument{Session: session, Messages: messages})
}

// Extension returns the file extension for this format
func (e *YAMLExporter) Extension() string {
	return "yaml"
}
