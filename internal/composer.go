package internal

// HistoryWindow bounds how many prior messages are forwarded to the
// completion API, regardless of how long a conversation has grown.
const HistoryWindow = 10

// ComposeWindow turns stored history plus a new user turn into the bounded
// message list sent downstream: the most recent HistoryWindow entries of
// history in their original chronological order, followed by the new input
// as a user message. Pure function, no persistence.
func ComposeWindow(history []Message, newText string) []ChatMessage {
	start := 0
	if len(history) > HistoryWindow {
		start = len(history) - HistoryWindow
	}

	window := make([]ChatMessage, 0, len(history)-start+1)
	for _, msg := range history[start:] {
		window = append(window, ChatMessage{Role: msg.Role, Content: msg.Content})
	}
	window = append(window, ChatMessage{Role: "user", Content: newText})

	return window
}
