package llm

import (
	"context"
	"errors"
	"fmt"
)

// LLM is a text-in, text-out model endpoint.
// Implementations must be safe for concurrent use.
type LLM interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ErrMissingCredential is returned before any network attempt when no API key
// is configured.
var ErrMissingCredential = errors.New("LLM API key is not configured")

// NetworkError means the call could not complete: dial failures, timeouts,
// cancellation or a broken response body.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("LLM request failed: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// UpstreamError means the call completed but the provider answered with a
// non-success status or an envelope that did not carry any text.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("LLM API error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("LLM API error: %s", e.Message)
}
