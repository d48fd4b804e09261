package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/chatkeep/chatkeep/internal"
	"github.com/spf13/cobra"
)

var (
	newSession  bool
	sendTimeout time.Duration
)

// chatCmd represents the chat command
var chatCmd = &cobra.Command{
	Use:   "chat <session-id> <text>",
	Short: "Send a message and print the assistant's reply",
	Long: `Send one conversation turn. The most recent history of the session is
forwarded to the completion API together with your text, and the reply is
stored in the session.

With --new, the first argument is used as the session title and a fresh
session is created (when autoCreateChat is enabled).`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, cleanup, err := openApp()
		if err != nil {
			return err
		}
		defer cleanup()

		sessionID := args[0]
		text := strings.Join(args[1:], " ")

		if newSession {
			if !app.Config().AutoCreateChat {
				return fmt.Errorf("automatic session creation is disabled (autoCreateChat)")
			}
			sessionID, err = app.CreateSession(args[0])
			if err != nil {
				return fmt.Errorf("failed to create session: %w", err)
			}
			internal.PrintInfo(fmt.Sprintf("Created session %s", sessionID))
		}

		// Ctrl-C aborts the in-flight request; nothing is persisted
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		if sendTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, sendTimeout)
			defer cancel()
		}

		reply, err := app.Send(ctx, sessionID, text)
		if err != nil {
			if errors.Is(err, internal.ErrNotInitialized) {
				return fmt.Errorf("no API key configured (set it with 'chatkeep config set apiKey <key>')")
			}
			return err
		}

		fmt.Println(reply)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().BoolVar(&newSession, "new", false, "Create a new session titled by the first argument")
	chatCmd.Flags().DurationVar(&sendTimeout, "timeout", 0, "Abort the request after this duration (0 = no limit)")
}
