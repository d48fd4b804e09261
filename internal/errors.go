package internal

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates a reference to a session that does not exist
	ErrNotFound = errors.New("session not found")

	// ErrNotInitialized indicates an operation ran before the app was wired up
	ErrNotInitialized = errors.New("client not initialized")

	// ErrNoChoices indicates the completion API returned an empty choices list
	ErrNoChoices = errors.New("no response from model")

	// ErrNoSelection indicates the caller declined to choose a file path
	ErrNoSelection = errors.New("no file selected")
)

// StoreError represents a storage I/O or transaction failure
type StoreError struct {
	Op  string // "open", "insert", "query", "delete", "import"
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store error: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// MalformedBundleError represents an export bundle that cannot be imported
type MalformedBundleError struct {
	Reason string
	Err    error
}

func (e *MalformedBundleError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed bundle: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed bundle: %s", e.Reason)
}

func (e *MalformedBundleError) Unwrap() error {
	return e.Err
}

// APIErrorKind classifies a non-2xx completion response by status
type APIErrorKind string

const (
	KindCredentialInvalid APIErrorKind = "credential-invalid"
	KindRateLimited       APIErrorKind = "rate-limited"
	KindMalformedRequest  APIErrorKind = "malformed-request"
	KindUpstreamFailure   APIErrorKind = "upstream-failure"
	KindGeneric           APIErrorKind = "api-error"
)

// APIError represents a non-2xx response from the completion endpoint
type APIError struct {
	Status int
	Kind   APIErrorKind
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error [%s] status=%d: %s", e.Kind, e.Status, e.Body)
}

// TransportError represents a network-level failure on the completion call
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ConfigError represents a settings read, parse, or write failure.
// Load failures are recoverable: the caller falls back to defaults.
type ConfigError struct {
	Path string
	Op   string // "read", "parse", "write"
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
