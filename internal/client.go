package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// MaxRetries is the total number of completion attempts per call
	MaxRetries = 3

	completionMaxTokens   = 2000
	completionTemperature = 0.7
	requestTimeout        = 120 * time.Second
)

// Client is a stateless chat-completion client. Construction captures no
// mutable state, so a fresh client may be built per call and repeated calls
// can run concurrently.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client

	// sleep waits between retry attempts. Test hook; defaults to a
	// context-aware timer sleep.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewClient creates a completion client for the given credentials and model
func NewClient(apiKey, baseURL, model string) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		model:      model,
		httpClient: &http.Client{Timeout: requestTimeout},
		sleep:      sleepContext,
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Choices []struct {
		Message ChatMessage `json:"message"`
	} `json:"choices"`
}

// Complete sends the windowed messages to the completion endpoint and
// returns the reply text. Failed attempts are retried with exponential
// backoff (1s, 2s) up to MaxRetries attempts total; an empty choices list is
// terminal and never retried. Backoff waits honor ctx cancellation.
func (c *Client) Complete(ctx context.Context, messages []ChatMessage) (string, error) {
	var lastErr error

	for attempt := 0; attempt < MaxRetries; attempt++ {
		if attempt > 0 {
			delay := backoffDelay(attempt - 1)
			LogDebug("Retrying completion in %s (attempt %d/%d)", delay, attempt+1, MaxRetries)
			if err := c.sleep(ctx, delay); err != nil {
				return "", err
			}
		}

		reply, err := c.attempt(ctx, messages)
		if err == nil {
			return reply, nil
		}
		if errors.Is(err, ErrNoChoices) {
			return "", err
		}

		LogWarn("Completion attempt %d/%d failed: %v", attempt+1, MaxRetries, err)
		lastErr = err
	}

	return "", fmt.Errorf("request failed after %d attempts: %w", MaxRetries, lastErr)
}

// attempt performs a single completion request
func (c *Client) attempt(ctx context.Context, messages []ChatMessage) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   completionMaxTokens,
		Temperature: completionTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &APIError{
			Status: resp.StatusCode,
			Kind:   classifyStatus(resp.StatusCode),
			Body:   string(body),
		}
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if len(parsed.Choices) == 0 {
		return "", ErrNoChoices
	}
	return parsed.Choices[0].Message.Content, nil
}

// classifyStatus maps an HTTP status to an error kind. Informational only:
// all non-2xx responses are currently retried uniformly.
func classifyStatus(status int) APIErrorKind {
	switch status {
	case http.StatusUnauthorized:
		return KindCredentialInvalid
	case http.StatusTooManyRequests:
		return KindRateLimited
	case http.StatusBadRequest:
		return KindMalformedRequest
	case http.StatusInternalServerError:
		return KindUpstreamFailure
	default:
		return KindGeneric
	}
}

// backoffDelay computes the exponential backoff before the next attempt,
// where n is the zero-based index of retries already completed.
func backoffDelay(n int) time.Duration {
	return time.Duration(1<<n) * time.Second
}

// sleepContext waits for d or until ctx is cancelled
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
