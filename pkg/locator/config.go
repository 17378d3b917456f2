package locator

import (
	"log/slog"
	"time"
)

// Config holds locator configuration.
// Use functional options (WithXxx) to set these values.
type Config struct {
	// Connection
	BaseURL string
	APIKey  string

	// Models is the ordered candidate list. Each model is tried in turn;
	// a validation-type rejection moves to the next, any other failure
	// stops immediately.
	Models []string

	// Request defaults
	MaxTokens   int
	Temperature float64

	// Timeout bounds a single localization call so a slow remote cannot
	// stall the guidance loop indefinitely.
	Timeout time.Duration

	// Observability
	Logger *slog.Logger
}

// Option is a functional option for configuring the locator.
type Option func(*Config)

// WithBaseURL overrides the API base URL.
// Examples: "https://api.openai.com/v1", "http://localhost:11434/v1"
func WithBaseURL(url string) Option {
	return func(c *Config) { c.BaseURL = url }
}

// WithAPIKey sets the API key.
func WithAPIKey(key string) Option {
	return func(c *Config) { c.APIKey = key }
}

// WithModels sets the ordered candidate model list.
func WithModels(models ...string) Option {
	return func(c *Config) { c.Models = models }
}

// WithMaxTokens sets the response token budget.
func WithMaxTokens(n int) Option {
	return func(c *Config) { c.MaxTokens = n }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) { c.Timeout = d }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

// DefaultConfig returns sensible defaults for an OpenAI-compatible API.
func DefaultConfig() *Config {
	return &Config{
		BaseURL: "https://api.openai.com/v1",
		Models: []string{
			"gpt-4o",
			"gpt-4o-mini",
		},
		MaxTokens:   512,
		Temperature: 0.0,
		Timeout:     20 * time.Second,
		Logger:      slog.Default(),
	}
}

// Apply applies functional options to the config.
func (c *Config) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if len(c.Models) == 0 {
		return ErrNoModels
	}
	return nil
}
