package speech

import (
	"log/slog"
)

// Chain implements Speaker over an ordered list of synthesizers.
// The first backend to speak the text wins; if all fail, the failure is
// logged and dropped — announcements never propagate errors.
type Chain struct {
	backends []Synthesizer
	logger   *slog.Logger
}

// NewChain creates a speaker that tries backends in order.
func NewChain(backends ...Synthesizer) *Chain {
	return &Chain{
		backends: backends,
		logger:   slog.Default().With("component", "speech.chain"),
	}
}

// NewChainWithLogger creates a chain with a custom logger.
func NewChainWithLogger(logger *slog.Logger, backends ...Synthesizer) *Chain {
	c := NewChain(backends...)
	c.logger = logger.With("component", "speech.chain")
	return c
}

// Announce speaks the text through the first working backend.
func (c *Chain) Announce(text string) {
	if text == "" {
		return
	}
	if err := c.Speak(text); err != nil {
		c.logger.Warn("announcement dropped", "text", text, "error", err)
	}
}

// Speak exposes the error-returning form for callers that want it.
func (c *Chain) Speak(text string) error {
	if len(c.backends) == 0 {
		return ErrNoBackend
	}

	var errors []error
	for i, b := range c.backends {
		err := b.Speak(text)
		if err == nil {
			if i > 0 {
				c.logger.Info("fallback backend succeeded", "backend_index", i)
			}
			return nil
		}
		errors = append(errors, err)
		c.logger.Warn("backend failed, trying next",
			"backend_index", i,
			"error", err,
		)
	}

	return &ChainError{Errors: errors}
}

var (
	_ Speaker     = (*Chain)(nil)
	_ Synthesizer = (*Chain)(nil)
)
