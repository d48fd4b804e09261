package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	// Styles for show command
	sessionHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("212")).
				Padding(0, 1).
				MarginBottom(1)

	sessionMetaStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("243")).
				MarginBottom(1)

	userMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("39")).
				Bold(true).
				Padding(0, 1)

	assistantMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("135")).
				Bold(true).
				Padding(0, 1)

	messageContentStyle = lipgloss.NewStyle().
				Padding(0, 2).
				MarginBottom(1)

	timestampStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show messages for a specific session",
	Long:  `Display the full conversation of a chat session in chronological order.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sessionID := args[0]

		app, cleanup, err := openApp()
		if err != nil {
			return err
		}
		defer cleanup()

		session, err := app.GetSession(sessionID)
		if err != nil {
			return err
		}

		messages, err := app.GetMessages(sessionID)
		if err != nil {
			return fmt.Errorf("failed to load messages: %w", err)
		}

		fmt.Println(sessionHeaderStyle.Render(session.Title))
		fmt.Println(sessionMetaStyle.Render(fmt.Sprintf("%s · %d message(s) · updated %s",
			session.ID, len(messages), formatTimestamp(session.UpdatedAt))))

		for _, msg := range messages {
			roleStyle := assistantMessageStyle
			if msg.Role == "user" {
				roleStyle = userMessageStyle
			}
			fmt.Printf("%s %s\n", roleStyle.Render(msg.Role),
				timestampStyle.Render(formatTimestamp(msg.Timestamp)))
			fmt.Println(messageContentStyle.Render(msg.Content))
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
