package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chatkeep/chatkeep/internal"
	"github.com/spf13/cobra"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the current settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, path, err := loadConfig()
		if err != nil {
			return err
		}

		fmt.Printf("Config file: %s\n\n", path)
		fmt.Printf("apiKey:         %s\n", maskKey(cfg.APIKey))
		fmt.Printf("baseUrl:        %s\n", cfg.BaseURL)
		fmt.Printf("model:          %s\n", cfg.Model)
		fmt.Printf("theme:          %s\n", cfg.Theme)
		fmt.Printf("maxHistory:     %d\n", cfg.MaxHistory)
		fmt.Printf("autoCreateChat: %t\n", cfg.AutoCreateChat)
		return nil
	},
}

// configSetCmd represents the config set command
var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Update one setting and save the config file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, path, err := loadConfig()
		if err != nil {
			return err
		}

		key, value := args[0], args[1]
		switch key {
		case "apiKey":
			cfg.APIKey = value
		case "baseUrl":
			cfg.BaseURL = value
		case "model":
			cfg.Model = value
		case "theme":
			if value != "light" && value != "dark" {
				return fmt.Errorf("invalid theme %q (light or dark)", value)
			}
			cfg.Theme = value
		case "maxHistory":
			n, err := strconv.Atoi(value)
			if err != nil || n < 0 {
				return fmt.Errorf("invalid maxHistory %q", value)
			}
			cfg.MaxHistory = n
		case "autoCreateChat":
			b, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("invalid autoCreateChat %q", value)
			}
			cfg.AutoCreateChat = b
		default:
			return fmt.Errorf("unknown setting %q (apiKey, baseUrl, model, theme, maxHistory, autoCreateChat)", key)
		}

		if err := internal.SaveConfig(path, cfg); err != nil {
			return err
		}

		internal.PrintSuccess(fmt.Sprintf("Saved %s", key))
		return nil
	},
}

// maskKey hides all but the tail of an API key
func maskKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configSetCmd)
}
