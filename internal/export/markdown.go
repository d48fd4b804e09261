package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/chatkeep/chatkeep/internal"
)

// MarkdownExporter exports a session in Markdown format
type MarkdownExporter struct{}

// Export exports a session and its messages to Markdown format
func (e *MarkdownExporter) Export(session *internal.Session, messages []internal.Message, w io.Writer) error {
	// Header
	title := session.Title
	if title == "" {
		title = session.ID
	}
	_, _ = fmt.Fprintf(w, "# %s\n\n", title)
	_, _ = fmt.Fprintf(w, "**Session:** %s  \n", session.ID)
	_, _ = fmt.Fprintf(w, "**Created:** %s  \n", session.CreatedAt)
	_, _ = fmt.Fprintf(w, "**Updated:** %s  \n", session.UpdatedAt)
	_, _ = fmt.Fprintf(w, "**Messages:** %d\n\n", len(messages))

	_, _ = fmt.Fprintf(w, "---\n\n")
	_, _ = fmt.Fprintf(w, "## Messages\n\n")

	// Messages
	for i, msg := range messages {
		timestamp := ""
		if msg.Timestamp != "" {
			timestamp = fmt.Sprintf(" (%s)", msg.Timestamp)
		}

		// Escape markdown in content if needed
		content := escapeMarkdown(msg.Content)

		_, _ = fmt.Fprintf(w, "**%s:**%s\n\n%s\n\n", msg.Role, timestamp, content)

		// Add horizontal rule after each message (except the last one)
		if i < len(messages)-1 {
			_, _ = fmt.Fprintf(w, "---\n\n")
		}
	}

	return nil
}

// escapeMarkdown escapes markdown special characters
func escapeMarkdown(text string) string {
	// Basic escaping - preserve code blocks
	lines := strings.Split(text, "\n")
	var result []string
	inCodeBlock := false

	for _, line := range lines {
		if strings.HasPrefix(line, "```") {
			inCodeBlock = !inCodeBlock
			result = append(result, line)
		} else if inCodeBlock {
			result = append(result, line)
		} else {
			// Escape markdown syntax outside code blocks
			line = strings.ReplaceAll(line, "**", "\\*\\*")
			line = strings.ReplaceAll(line, "__", "\\_\\_")
			result = append(result, line)
		}
	}

	return strings.Join(result, "\n")
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}
