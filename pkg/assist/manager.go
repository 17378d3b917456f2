package assist

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/teslashibe/go-pantry/pkg/hand"
	"github.com/teslashibe/go-pantry/pkg/locator"
	"github.com/teslashibe/go-pantry/pkg/snapshot"
	"github.com/teslashibe/go-pantry/pkg/speech"
)

// ErrNoTarget is returned when Start is called without a target name.
var ErrNoTarget = errors.New("assist: target name required")

// Manager owns the single active session. Start supersedes, Stop requests
// cancellation; the camera is handed from one session to the next only
// after the old loop has fully quiesced.
type Manager struct {
	camera   Camera
	locator  locator.Locator
	hands    hand.Tracker
	speaker  speech.Speaker
	recorder snapshot.Recorder
	config   Config
	logger   *slog.Logger

	// OnStatus, when set, receives every published session status.
	// Set it before the first Start.
	OnStatus func(Status)

	mu     sync.Mutex
	active *Session
}

// NewManager creates a session manager. All collaborators are required
// except the recorder, which may be nil when Debug is off.
func NewManager(cam Camera, loc locator.Locator, hands hand.Tracker,
	speaker speech.Speaker, recorder snapshot.Recorder, cfg Config) *Manager {

	if recorder == nil {
		recorder = snapshot.NewMock()
		cfg.Debug = false
	}

	return &Manager{
		camera:   cam,
		locator:  loc,
		hands:    hands,
		speaker:  speaker,
		recorder: recorder,
		config:   cfg,
		logger:   slog.Default().With("component", "assist.manager"),
	}
}

// Start launches a guidance session for the target, replacing any existing
// one. It blocks until the previous loop has observably exited and released
// the camera, then opens the camera for the new session. A camera that
// fails to open is fatal to this start and surfaced to the caller.
func (m *Manager) Start(target string) (*Session, error) {
	if target == "" {
		return nil, ErrNoTarget
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active != nil {
		m.logger.Info("superseding active session", "old", m.active.Target, "new", target)
		m.active.Cancel()
		m.active.Wait()
		m.active = nil
	}

	if err := m.camera.Open(); err != nil {
		return nil, fmt.Errorf("assist: start %q: %w", target, err)
	}

	s := newSession(target, m.camera, m.locator, m.hands, m.speaker,
		m.recorder, m.config, m.logger, m.OnStatus)
	m.active = s
	go s.run()

	m.logger.Info("session started", "target", target, "id", s.ID)
	return s, nil
}

// Stop requests cancellation of the active session, if any, and returns
// immediately. Idempotent; callers needing confirmation poll Active.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active != nil {
		m.active.Cancel()
	}
}

// Active returns the running session, or nil when none is alive.
func (m *Manager) Active() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active == nil || m.active.Finished() {
		return nil
	}
	return m.active
}

// Shutdown cancels the active session and waits for it to exit.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active != nil {
		m.active.Cancel()
		m.active.Wait()
		m.active = nil
	}
}
