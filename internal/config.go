package internal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// DefaultBaseURL is the completion endpoint used when none is configured
const DefaultBaseURL = "https://api.anthropic.com"

// Config holds the user settings. The engine only ever reads APIKey and
// Model, through the snapshot taken by the App; the rest belongs to the
// caller surface.
type Config struct {
	APIKey         string `json:"apiKey" env:"CHATKEEP_API_KEY"`
	BaseURL        string `json:"baseUrl" env:"CHATKEEP_BASE_URL"`
	Model          string `json:"model" env:"CHATKEEP_MODEL"`
	Theme          string `json:"theme" env:"CHATKEEP_THEME"`
	MaxHistory     int    `json:"maxHistory" env:"CHATKEEP_MAX_HISTORY"`
	AutoCreateChat bool   `json:"autoCreateChat" env:"CHATKEEP_AUTO_CREATE_CHAT"`
}

// DefaultConfig returns the settings used when no config file exists
func DefaultConfig() Config {
	return Config{
		APIKey:         "",
		BaseURL:        DefaultBaseURL,
		Model:          "claude-3-opus-20240229",
		Theme:          "light",
		MaxHistory:     100,
		AutoCreateChat: true,
	}
}

// LoadConfig reads settings from the given path, then applies environment
// overrides. A missing, unreadable, or unparsable file is recoverable: the
// defaults are returned along with the ConfigError that caused the fallback.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	content, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return applyEnv(cfg), &ConfigError{Path: path, Op: "read", Err: err}
		}
		// First run: no file yet
		return applyEnv(cfg), nil
	}

	if err := json.Unmarshal(content, &cfg); err != nil {
		return applyEnv(DefaultConfig()), &ConfigError{Path: path, Op: "parse", Err: err}
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}

	return applyEnv(cfg), nil
}

// SaveConfig writes settings as pretty-printed JSON, creating the parent
// directory if needed.
func SaveConfig(path string, cfg Config) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &ConfigError{Path: path, Op: "write", Err: err}
		}
	}

	content, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return &ConfigError{Path: path, Op: "write", Err: err}
	}
	if err := os.WriteFile(path, content, 0o600); err != nil {
		return &ConfigError{Path: path, Op: "write", Err: err}
	}
	return nil
}

// applyEnv layers environment variables over file-loaded settings
func applyEnv(cfg Config) Config {
	if err := env.Parse(&cfg); err != nil {
		LogWarn("Failed to parse environment overrides: %v", err)
	}
	return cfg
}

// DefaultConfigPath returns the per-user config file location
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve config directory: %w", err)
	}
	return filepath.Join(dir, "chatkeep", "config.json"), nil
}

// DefaultDatabasePath returns the per-user chat history location
func DefaultDatabasePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve config directory: %w", err)
	}
	return filepath.Join(dir, "chatkeep", "chat_history.db"), nil
}
