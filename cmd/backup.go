package cmd

import (
	"errors"
	"fmt"

	"github.com/chatkeep/chatkeep/internal"
	"github.com/spf13/cobra"
)

var backupOut string

// backupCmd represents the backup command
var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Export the full chat history to a bundle file",
	Long: `Write every session and message into a single JSON bundle that can be
restored with 'chatkeep restore'. The bundle carries a schema version tag and
the export timestamp.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, cleanup, err := openApp()
		if err != nil {
			return err
		}
		defer cleanup()

		if err := app.ExportHistory(backupOut); err != nil {
			if errors.Is(err, internal.ErrNoSelection) {
				internal.PrintInfo("No output file chosen, nothing exported.")
				return nil
			}
			return fmt.Errorf("backup failed: %w", err)
		}

		internal.PrintSuccess(fmt.Sprintf("Chat history exported to %s", backupOut))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(backupCmd)
	backupCmd.Flags().StringVarP(&backupOut, "out", "o", "", "Bundle file to write")
}
