package speech

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions.
var (
	// ErrNoAPIKey is returned when an API key is required but missing.
	ErrNoAPIKey = errors.New("speech: API key required")

	// ErrNoVoiceID is returned when a voice ID is required but missing.
	ErrNoVoiceID = errors.New("speech: voice ID required")

	// ErrNoBackend is returned when no synthesizer is available.
	ErrNoBackend = errors.New("speech: no synthesizer available")

	// ErrEmptyText is returned for empty announcements.
	ErrEmptyText = errors.New("speech: empty text")
)

// WrapError wraps an error with backend context.
func WrapError(backend string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("speech [%s]: %w", backend, err)
}

// ChainError aggregates errors from all backends in a chain.
type ChainError struct {
	Errors []error
}

// Error implements the error interface.
func (e *ChainError) Error() string {
	if len(e.Errors) == 0 {
		return "speech chain: no errors recorded"
	}
	return fmt.Sprintf("speech chain: all %d backends failed, last error: %v",
		len(e.Errors), e.Errors[len(e.Errors)-1])
}

// Unwrap returns the last error in the chain.
func (e *ChainError) Unwrap() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e.Errors[len(e.Errors)-1]
}
