package cmd

import (
	"fmt"
	"os"

	"github.com/chatkeep/chatkeep/internal"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	dbPath     string
	configPath string
	version    string = "dev"
	commit     string = "unknown"
	date       string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "chatkeep",
	Short: "Local chat assistant with durable conversation history",
	Long: `A local chat assistant that persists conversations in SQLite and
forwards them to a remote chat-completion API.

Conversations are stored as sessions of ordered messages. Each turn sends a
bounded window of recent history to the completion endpoint and stores the
assistant's reply alongside your own.

Quick Start:
  chatkeep new "My first chat"           # Create a session
  chatkeep chat <session-id> "hello"     # Send a message
  chatkeep list                          # List all sessions
  chatkeep show <session-id>             # View a conversation
  chatkeep backup --out history.json     # Export everything
  chatkeep restore history.json          # Import it back

Set your API key with 'chatkeep config set apiKey <key>' or the
CHATKEEP_API_KEY environment variable.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		internal.SetVerbose(verbose)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Custom chat history database path")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Custom config file path")

	// Set version template to ensure --version flag works
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}

// loadConfig resolves the config path and loads settings, falling back to
// defaults on a read or parse failure
func loadConfig() (internal.Config, string, error) {
	path := configPath
	if path == "" {
		var err error
		path, err = internal.DefaultConfigPath()
		if err != nil {
			return internal.Config{}, "", err
		}
	}

	cfg, err := internal.LoadConfig(path)
	if err != nil {
		internal.LogWarn("Using default settings: %v", err)
	}
	return cfg, path, nil
}

// openApp wires up the application context: config, database, store. The
// returned cleanup closes the database.
func openApp() (*internal.App, func(), error) {
	cfg, _, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	path := dbPath
	if path == "" {
		path, err = internal.DefaultDatabasePath()
		if err != nil {
			return nil, nil, err
		}
	}

	db, err := internal.OpenDatabase(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open chat history: %w", err)
	}

	app := internal.NewApp(internal.NewStore(db), cfg)
	cleanup := func() {
		if err := db.Close(); err != nil {
			internal.LogWarn("Failed to close database: %v", err)
		}
	}
	return app, cleanup, nil
}
