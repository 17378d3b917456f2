package locator

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions.
var (
	// ErrNoAPIKey is returned when an API key is required but missing.
	ErrNoAPIKey = errors.New("locator: API key required")

	// ErrNoModels is returned when the candidate model list is empty.
	ErrNoModels = errors.New("locator: at least one model required")

	// ErrEmptyFrame is returned when the frame has no data.
	ErrEmptyFrame = errors.New("locator: empty frame")
)

// APIError represents an error response from the vision API.
type APIError struct {
	// StatusCode is the HTTP status code.
	StatusCode int

	// Message is the error message from the API.
	Message string

	// Model is the candidate model that produced the error.
	Model string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("locator [%s]: API error %d: %s", e.Model, e.StatusCode, e.Message)
}

// IsValidation reports whether the error is a capability or validation
// rejection for this model, meaning the next candidate should be tried.
func (e *APIError) IsValidation() bool {
	switch e.StatusCode {
	case 400, 404, 422:
		return true
	}
	return false
}

// IsRateLimited returns true for HTTP 429.
func (e *APIError) IsRateLimited() bool {
	return e.StatusCode == 429
}

// IsServerError returns true for HTTP 5xx.
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500 && e.StatusCode < 600
}

// WrapError wraps an error with locator context.
func WrapError(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("locator: %w", err)
}
