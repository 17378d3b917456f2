// Package assist runs guided-retrieval sessions: it fuses a rate-limited
// remote target localization with a per-frame hand position estimate and
// speaks short directional corrections until the user reaches the target or
// the session is cancelled.
//
// One background goroutine owns the whole session, camera included. The
// Manager guarantees at most one session is alive and that a superseded
// session has fully released the camera before its replacement opens it.
package assist

import "time"

// FrameSource produces JPEG frames.
type FrameSource interface {
	CaptureJPEG() ([]byte, error)
}

// Camera is a frame source with exclusive hardware ownership.
// The session opens it at start and releases it unconditionally on exit.
type Camera interface {
	FrameSource
	Open() error
	Release()
}

// Config holds the pacing parameters of the guidance loop. The three gate
// intervals are mutually independent; none is synchronized to frame rate.
type Config struct {
	// TargetInterval is how often the remote locator is polled.
	TargetInterval time.Duration

	// GuidanceInterval is how often a phrase is decided and spoken.
	GuidanceInterval time.Duration

	// SnapshotInterval is how often a debug frame is recorded.
	SnapshotInterval time.Duration

	// IdleSleep bounds CPU usage between iterations.
	IdleSleep time.Duration

	// FailureSleep is the pause after a failed frame read.
	FailureSleep time.Duration

	// Debug enables snapshot recording.
	Debug bool
}

// DefaultConfig returns the pacing used by real sessions.
func DefaultConfig() Config {
	return Config{
		TargetInterval:   2500 * time.Millisecond,
		GuidanceInterval: 1000 * time.Millisecond,
		SnapshotInterval: 3 * time.Second,
		IdleSleep:        50 * time.Millisecond,
		FailureSleep:     100 * time.Millisecond,
		Debug:            true,
	}
}
