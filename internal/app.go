package internal

import (
	"context"
	"sync"
)

// completer is the slice of the completion client the orchestrator needs
type completer interface {
	Complete(ctx context.Context, messages []ChatMessage) (string, error)
}

// App is the application context: one store handle and one configuration,
// initialized once and passed to every operation. Config reads and writes
// are guarded; no lock is ever held across a network call.
type App struct {
	mu    sync.RWMutex
	cfg   Config
	store *Store

	// newClient builds a completion client from a config snapshot.
	// Test hook; defaults to NewClient.
	newClient func(apiKey, baseURL, model string) completer
}

// NewApp creates the application context over an initialized store
func NewApp(store *Store, cfg Config) *App {
	return &App{
		cfg:   cfg,
		store: store,
		newClient: func(apiKey, baseURL, model string) completer {
			return NewClient(apiKey, baseURL, model)
		},
	}
}

// Config returns a snapshot of the current configuration
func (a *App) Config() Config {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.cfg
}

// SetConfig replaces the configuration
func (a *App) SetConfig(cfg Config) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cfg = cfg
}

// Send runs one conversation turn: it windows the session history together
// with the new user text, calls the completion API with a configuration
// snapshot taken under lock and released before the network call, and on
// success persists the user turn and the assistant reply. On completion
// failure nothing is persisted and the error is returned as-is.
func (a *App) Send(ctx context.Context, sessionID, text string) (string, error) {
	a.mu.RLock()
	store := a.store
	apiKey, baseURL, model := a.cfg.APIKey, a.cfg.BaseURL, a.cfg.Model
	a.mu.RUnlock()

	if store == nil || apiKey == "" {
		return "", ErrNotInitialized
	}

	if _, err := store.GetSession(sessionID); err != nil {
		return "", err
	}

	history, err := store.GetMessages(sessionID)
	if err != nil {
		return "", err
	}
	window := ComposeWindow(history, text)

	LogDebug("Sending %d message(s) to %s (model %s)", len(window), baseURL, model)
	reply, err := a.newClient(apiKey, baseURL, model).Complete(ctx, window)
	if err != nil {
		return "", err
	}

	if _, err := store.AddMessage(sessionID, "user", text); err != nil {
		return "", err
	}
	if _, err := store.AddMessage(sessionID, "assistant", reply); err != nil {
		return "", err
	}

	return reply, nil
}

// CreateSession creates a new conversation
func (a *App) CreateSession(title string) (string, error) {
	store, err := a.requireStore()
	if err != nil {
		return "", err
	}
	return store.CreateSession(title)
}

// GetSessions lists all conversations, most recently active first
func (a *App) GetSessions() ([]Session, error) {
	store, err := a.requireStore()
	if err != nil {
		return nil, err
	}
	return store.GetSessions()
}

// GetMessages returns a conversation's messages in chronological order
func (a *App) GetMessages(sessionID string) ([]Message, error) {
	store, err := a.requireStore()
	if err != nil {
		return nil, err
	}
	return store.GetMessages(sessionID)
}

// GetSession returns a single conversation by id
func (a *App) GetSession(sessionID string) (*Session, error) {
	store, err := a.requireStore()
	if err != nil {
		return nil, err
	}
	return store.GetSession(sessionID)
}

// AddMessage appends a message to a conversation
func (a *App) AddMessage(sessionID, role, content string) (string, error) {
	store, err := a.requireStore()
	if err != nil {
		return "", err
	}
	return store.AddMessage(sessionID, role, content)
}

// DeleteSession removes a conversation and all its messages
func (a *App) DeleteSession(sessionID string) error {
	store, err := a.requireStore()
	if err != nil {
		return err
	}
	return store.DeleteSession(sessionID)
}

// ExportHistory writes the full history bundle to the chosen path. An empty
// path means the caller made no selection; that is a short-circuit, not a
// failure of the store.
func (a *App) ExportHistory(path string) error {
	if path == "" {
		return ErrNoSelection
	}
	store, err := a.requireStore()
	if err != nil {
		return err
	}
	return store.ExportToFile(path)
}

// ImportHistory reads a history bundle from the chosen path
func (a *App) ImportHistory(path string) error {
	if path == "" {
		return ErrNoSelection
	}
	store, err := a.requireStore()
	if err != nil {
		return err
	}
	return store.ImportFromFile(path)
}

func (a *App) requireStore() (*Store, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.store == nil {
		return nil, ErrNotInitialized
	}
	return a.store, nil
}
