package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/chatkeep/chatkeep/internal"
	"github.com/spf13/cobra"
)

var (
	// Styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List chat sessions",
	Long:  `List all chat sessions, most recently active first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, cleanup, err := openApp()
		if err != nil {
			return err
		}
		defer cleanup()

		sessions, err := app.GetSessions()
		if err != nil {
			return fmt.Errorf("failed to list sessions: %w", err)
		}

		if len(sessions) == 0 {
			internal.PrintInfo("No sessions yet. Create one with 'chatkeep new <title>'.")
			return nil
		}

		fmt.Println(headerStyle.Render(fmt.Sprintf("Sessions (%d)", len(sessions))))

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "TITLE\tID\tUPDATED")
		for _, sess := range sessions {
			fmt.Fprintf(w, "%s\t%s\t%s\n",
				titleStyle.Render(sess.Title),
				idStyle.Render(sess.ID),
				dateStyle.Render(formatTimestamp(sess.UpdatedAt)),
			)
		}
		return w.Flush()
	},
}

// formatTimestamp renders a stored RFC3339 timestamp in local time,
// falling back to the raw string if it does not parse
func formatTimestamp(ts string) string {
	parsed, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return ts
	}
	return parsed.Local().Format("2006-01-02 15:04")
}

func init() {
	rootCmd.AddCommand(listCmd)
}
