package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/chatkeep/chatkeep/internal"
	"github.com/chatkeep/chatkeep/internal/export"
	"github.com/spf13/cobra"
)

var (
	format    string
	outputDir string
	sessionID string
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export sessions to files",
	Long: `Export chat sessions to various formats (jsonl, md, yaml, json), one
file per session.

You can export all sessions or a specific session by ID. Use 'chatkeep list'
to see available session IDs. For a single restorable archive of the whole
history, use 'chatkeep backup' instead.`,
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

		// Filter by session ID if specified
		if sessionID != "" {
			filtered := make([]internal.Session, 0, 1)
			for _, sess := range sessions {
				if sess.ID == sessionID {
					filtered = append(filtered, sess)
					break
				}
			}
			if len(filtered) == 0 {
				return fmt.Errorf("session not found: %s (use 'chatkeep list' to see available sessions)", sessionID)
			}
			sessions = filtered
		}

		// Create exporter
		exporter, err := export.NewExporter(format)
		if err != nil {
			return err
		}

		// Ensure output directory exists
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}

		exported := 0
		for _, sess := range sessions {
			messages, err := app.GetMessages(sess.ID)
			if err != nil {
				internal.LogError("Failed to load messages for %s: %v", sess.ID, err)
				continue
			}

			filename := fmt.Sprintf("session_%s.%s", sess.ID, exporter.Extension())
			path := filepath.Join(outputDir, filename)

			file, err := os.Create(path)
			if err != nil {
				internal.LogError("Failed to create file %s: %v", path, err)
				continue
			}

			if err := exporter.Export(&sess, messages, file); err != nil {
				_ = file.Close()
				internal.LogError("Failed to export session %s: %v", sess.ID, err)
				continue
			}

			if err := file.Close(); err != nil {
				internal.LogWarn("Failed to close file %s: %v", path, err)
			}
			exported++
		}

		internal.PrintSuccess(fmt.Sprintf("Export complete: %d session(s) exported to %s", exported, outputDir))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&format, "format", "f", "jsonl", "Export format (jsonl, md, yaml, json)")
	exportCmd.Flags().StringVarP(&outputDir, "out", "o", "./exports", "Output directory")
	exportCmd.Flags().StringVar(&sessionID, "session-id", "", "Export a specific session by ID")
}
