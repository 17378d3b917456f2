package speech

import (
	"fmt"
	"os/exec"
	"runtime"
	"sync"
)

// Command synthesizes speech through a local TTS binary: `say` on macOS,
// `espeak` elsewhere. It is the zero-dependency fallback and the default
// speaker when no cloud credentials are configured.
type Command struct {
	binary string
	args   []string

	mu sync.Mutex // One utterance at a time
}

// NewCommand creates a command speaker using the platform default binary.
func NewCommand() *Command {
	if runtime.GOOS == "darwin" {
		return &Command{binary: "say"}
	}
	return &Command{binary: "espeak"}
}

// NewCommandWith creates a command speaker with an explicit binary and
// leading arguments.
func NewCommandWith(binary string, args ...string) *Command {
	return &Command{binary: binary, args: args}
}

// Speak runs the TTS binary and waits for playback to finish.
func (c *Command) Speak(text string) error {
	if text == "" {
		return ErrEmptyText
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	args := append(append([]string{}, c.args...), text)
	if err := exec.Command(c.binary, args...).Run(); err != nil {
		return WrapError("command", fmt.Errorf("%s: %w", c.binary, err))
	}
	return nil
}

var _ Synthesizer = (*Command)(nil)
