package assist

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/teslashibe/go-pantry/pkg/guidance"
	"github.com/teslashibe/go-pantry/pkg/hand"
	"github.com/teslashibe/go-pantry/pkg/locator"
	"github.com/teslashibe/go-pantry/pkg/snapshot"
	"github.com/teslashibe/go-pantry/pkg/speech"
)

// Status is a point-in-time view of a session, published after each
// guidance gate firing.
type Status struct {
	SessionID     string    `json:"session_id"`
	Target        string    `json:"target"`
	Phrase        string    `json:"phrase"`
	Intent        string    `json:"intent"`
	TargetVisible bool      `json:"target_visible"`
	HandVisible   bool      `json:"hand_visible"`
	Time          time.Time `json:"time"`
}

// Session is one guidance run bound to a target name and a camera.
// It is created by the Manager and exclusively owned by its loop goroutine.
type Session struct {
	ID     string
	Target string

	cam      Camera
	locator  locator.Locator
	hands    hand.Tracker
	speaker  speech.Speaker
	recorder snapshot.Recorder
	config   Config
	logger   *slog.Logger
	onStatus func(Status)

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	mu   sync.RWMutex
	last Status
}

func newSession(target string, cam Camera, loc locator.Locator, hands hand.Tracker,
	speaker speech.Speaker, recorder snapshot.Recorder, cfg Config,
	logger *slog.Logger, onStatus func(Status)) *Session {

	ctx, cancel := context.WithCancel(context.Background())
	return &Session{
		ID:       uuid.NewString(),
		Target:   target,
		cam:      cam,
		locator:  loc,
		hands:    hands,
		speaker:  speaker,
		recorder: recorder,
		config:   cfg,
		logger:   logger.With("session", target),
		onStatus: onStatus,
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
}

// Cancel requests cooperative cancellation. The loop observes it within one
// iteration period.
func (s *Session) Cancel() {
	s.cancel()
}

// Wait blocks until the loop has exited and the camera is released.
func (s *Session) Wait() {
	<-s.done
}

// Finished reports whether the loop has exited.
func (s *Session) Finished() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// LastStatus returns the most recently published status.
func (s *Session) LastStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}

// run is the multi-rate control loop. It owns the camera for its entire
// lifetime and releases it unconditionally on exit.
func (s *Session) run() {
	defer close(s.done)
	defer s.cam.Release()

	s.logger.Info("guidance started")
	s.speaker.Announce("Guidance started for " + s.Target)

	targetGate := NewGate(s.config.TargetInterval)
	guideGate := NewGate(s.config.GuidanceInterval)
	snapGate := NewGate(s.config.SnapshotInterval)

	// Cached between polls: deliberately stale-tolerant. The box only
	// clears at the next target gate firing, never mid-interval.
	var targetBox *locator.Box
	var targetCenter *guidance.Point

	for s.ctx.Err() == nil {
		frame, err := s.cam.CaptureJPEG()
		if err != nil {
			s.logger.Debug("frame read failed, retrying", "error", err)
			if !s.pause(s.config.FailureSleep) {
				return
			}
			continue
		}

		now := time.Now()

		if targetGate.Fire(now) {
			obs, err := s.locator.Locate(s.ctx, frame, s.Target)
			if err != nil {
				// Remote fault degrades to not-found for this cycle.
				s.logger.Warn("target poll failed", "error", err)
				obs = locator.Observation{}
			}
			if obs.Found {
				box := obs.Box
				center := box.Center()
				targetBox, targetCenter = &box, &center
			} else {
				targetBox, targetCenter = nil, nil
			}
		}

		// Hand position is only as fresh as the current frame; never cached.
		var handPt *guidance.Point
		if p, ok, err := s.hands.Track(frame); err != nil {
			s.logger.Debug("hand tracking failed", "error", err)
		} else if ok {
			handPt = &p
		}

		if s.config.Debug && snapGate.Fire(now) {
			if err := s.recorder.Record(frame, targetBox, handPt, s.Target); err != nil {
				s.logger.Warn("snapshot failed", "error", err)
			}
		}

		if guideGate.Fire(now) {
			phrase := guidance.Decide(targetCenter, handPt)
			s.publish(phrase, targetCenter != nil, handPt != nil)
			s.logger.Info("guidance", "phrase", phrase.Text, "intent", phrase.Intent.String())
			s.speaker.Announce(phrase.Text)
		}

		if !s.pause(s.config.IdleSleep) {
			return
		}
	}
}

// pause sleeps for d, returning false when cancelled during the wait.
func (s *Session) pause(d time.Duration) bool {
	select {
	case <-s.ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}

func (s *Session) publish(phrase guidance.Phrase, targetVisible, handVisible bool) {
	status := Status{
		SessionID:     s.ID,
		Target:        s.Target,
		Phrase:        phrase.Text,
		Intent:        phrase.Intent.String(),
		TargetVisible: targetVisible,
		HandVisible:   handVisible,
		Time:          time.Now(),
	}

	s.mu.Lock()
	s.last = status
	s.mu.Unlock()

	if s.onStatus != nil {
		s.onStatus(status)
	}
}
