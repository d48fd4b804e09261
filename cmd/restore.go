package cmd

import (
	"errors"
	"fmt"

	"github.com/chatkeep/chatkeep/internal"
	"github.com/spf13/cobra"
)

// restoreCmd represents the restore command
var restoreCmd = &cobra.Command{
	Use:   "restore [bundle-file]",
	Short: "Import a chat history bundle",
	Long: `Read a bundle produced by 'chatkeep backup' and upsert its sessions and
messages into the chat history. Existing rows with matching ids are replaced;
the import is all-or-nothing.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, cleanup, err := openApp()
		if err != nil {
			return err
		}
		defer cleanup()

		path := ""
		if len(args) > 0 {
			path = args[0]
		}

		if err := app.ImportHistory(path); err != nil {
			if errors.Is(err, internal.ErrNoSelection) {
				internal.PrintInfo("No bundle file chosen, nothing imported.")
				return nil
			}
			return fmt.Errorf("restore failed: %w", err)
		}

		internal.PrintSuccess(fmt.Sprintf("Chat history imported from %s", path))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(restoreCmd)
}
