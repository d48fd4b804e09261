package cmd

import (
	"fmt"

	"github.com/chatkeep/chatkeep/internal"
	"github.com/spf13/cobra"
)

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete <session-id>",
	Short: "Delete a session and all its messages",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, cleanup, err := openApp()
		if err != nil {
			return err
		}
		defer cleanup()

		if err := app.DeleteSession(args[0]); err != nil {
			return fmt.Errorf("failed to delete session: %w", err)
		}

		internal.PrintSuccess(fmt.Sprintf("Deleted session %s", args[0]))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
