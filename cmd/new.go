package cmd

import (
	"fmt"

	"github.com/chatkeep/chatkeep/internal"
	"github.com/spf13/cobra"
)

// newCmd represents the new command
var newCmd = &cobra.Command{
	Use:   "new <title>",
	Short: "Create a new chat session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, cleanup, err := openApp()
		if err != nil {
			return err
		}
		defer cleanup()

		id, err := app.CreateSession(args[0])
		if err != nil {
			return fmt.Errorf("failed to create session: %w", err)
		}

		internal.PrintSuccess(fmt.Sprintf("Created session %s", id))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
}
