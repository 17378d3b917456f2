package assist

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/teslashibe/go-pantry/pkg/guidance"
	"github.com/teslashibe/go-pantry/pkg/hand"
	"github.com/teslashibe/go-pantry/pkg/locator"
	"github.com/teslashibe/go-pantry/pkg/snapshot"
	"github.com/teslashibe/go-pantry/pkg/speech"
)

// fakeCamera implements Camera and records open/release ordering.
type fakeCamera struct {
	openErr error

	mu     sync.Mutex
	open   bool
	events []string
}

func (f *fakeCamera) Open() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.openErr != nil {
		return f.openErr
	}
	if f.open {
		return errors.New("camera already open")
	}
	f.open = true
	f.events = append(f.events, "open")
	return nil
}

func (f *fakeCamera) Release() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.open {
		f.open = false
		f.events = append(f.events, "release")
	}
}

func (f *fakeCamera) CaptureJPEG() ([]byte, error) {
	return []byte("frame"), nil
}

func (f *fakeCamera) Events() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.events))
	copy(out, f.events)
	return out
}

// fastConfig paces the loop quickly enough for tests.
func fastConfig() Config {
	return Config{
		TargetInterval:   5 * time.Millisecond,
		GuidanceInterval: 10 * time.Millisecond,
		SnapshotInterval: 15 * time.Millisecond,
		IdleSleep:        time.Millisecond,
		FailureSleep:     time.Millisecond,
		Debug:            true,
	}
}

func newTestManager(cam Camera, loc locator.Locator, tracker hand.Tracker,
	speaker speech.Speaker, rec snapshot.Recorder) *Manager {
	return NewManager(cam, loc, tracker, speaker, rec, fastConfig())
}

func TestManager_GuidesTowardVisibleTarget(t *testing.T) {
	cam := &fakeCamera{}
	loc := locator.WithObservation(locator.Observation{
		Found:      true,
		Box:        locator.Box{XMin: 0.6, YMin: 0.4, XMax: 0.8, YMax: 0.6}, // center (0.7, 0.5)
		Confidence: 0.9,
	})
	tracker := hand.At(guidance.Point{X: 0.5, Y: 0.5})
	speaker := speech.NewMock()
	rec := snapshot.NewMock()

	m := newTestManager(cam, loc, tracker, speaker, rec)

	if _, err := m.Start("oreo cookies"); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	time.Sleep(100 * time.Millisecond)
	m.Shutdown()

	texts := speaker.Texts()
	if len(texts) == 0 {
		t.Fatal("expected announcements")
	}
	if texts[0] != "Guidance started for oreo cookies" {
		t.Errorf("unexpected first announcement: %q", texts[0])
	}

	var guided bool
	for _, text := range texts[1:] {
		if text == "move right more" {
			guided = true
		}
	}
	if !guided {
		t.Errorf("expected 'move right more' among %v", texts)
	}

	if loc.CallCount("Locate") == 0 {
		t.Error("expected locator polls")
	}
	if rec.CallCount() == 0 {
		t.Error("expected debug snapshots")
	}
	if tracker.CallCount() <= loc.CallCount("Locate") {
		t.Error("hand tracking runs every iteration, more often than target polls")
	}
}

func TestManager_StartSupersedesWithExclusiveCamera(t *testing.T) {
	cam := &fakeCamera{}
	m := newTestManager(cam, locator.NewMock(), hand.NewMock(), speech.NewMock(), snapshot.NewMock())

	first, err := m.Start("item-a")
	if err != nil {
		t.Fatalf("Start(A) failed: %v", err)
	}
	time.Sleep(20 * time.Millisecond)

	second, err := m.Start("item-b")
	if err != nil {
		t.Fatalf("Start(B) failed: %v", err)
	}

	if !first.Finished() {
		t.Error("superseded session must have exited before Start returns")
	}
	if active := m.Active(); active != second || active.Target != "item-b" {
		t.Errorf("expected active session for item-b, got %+v", active)
	}

	m.Shutdown()
	if !second.Finished() {
		t.Error("Shutdown must wait for the active session to exit")
	}

	// Camera ownership must alternate strictly: open, release, open, release.
	want := []string{"open", "release", "open", "release"}
	got := cam.Events()
	if len(got) != len(want) {
		t.Fatalf("expected camera events %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected camera events %v, got %v", want, got)
		}
	}
}

func TestManager_StopIsIdempotentAndNonBlocking(t *testing.T) {
	cam := &fakeCamera{}
	m := newTestManager(cam, locator.NewMock(), hand.NewMock(), speech.NewMock(), snapshot.NewMock())

	// Stop with no session is a no-op.
	m.Stop()

	s, err := m.Start("rice")
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	m.Stop()
	m.Stop()

	s.Wait()
	if m.Active() != nil {
		t.Error("expected no active session after cancelled loop exited")
	}
}

func TestManager_CameraOpenFailureIsFatalToStart(t *testing.T) {
	cam := &fakeCamera{openErr: errors.New("device busy")}
	m := newTestManager(cam, locator.NewMock(), hand.NewMock(), speech.NewMock(), snapshot.NewMock())

	if _, err := m.Start("rice"); err == nil {
		t.Fatal("expected error when camera cannot open")
	}
	if m.Active() != nil {
		t.Error("failed start must not leave an active session")
	}
}

func TestManager_RequiresTarget(t *testing.T) {
	m := newTestManager(&fakeCamera{}, locator.NewMock(), hand.NewMock(), speech.NewMock(), snapshot.NewMock())

	if _, err := m.Start(""); !errors.Is(err, ErrNoTarget) {
		t.Errorf("expected ErrNoTarget, got %v", err)
	}
}

func TestSession_TargetLostAnnouncedWhenNothingVisible(t *testing.T) {
	cam := &fakeCamera{}
	speaker := speech.NewMock()
	m := newTestManager(cam, locator.NewMock(), hand.NewMock(), speaker, snapshot.NewMock())

	if _, err := m.Start("rice"); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	time.Sleep(60 * time.Millisecond)
	m.Shutdown()

	var lost bool
	for _, text := range speaker.Texts() {
		if text == "cannot see target" {
			lost = true
		}
	}
	if !lost {
		t.Errorf("expected 'cannot see target' among %v", speaker.Texts())
	}
}

func TestSession_LocatorErrorDegradesToNotFound(t *testing.T) {
	cam := &fakeCamera{}
	loc := locator.WithError(errors.New("network down"))
	speaker := speech.NewMock()

	m := newTestManager(cam, loc, hand.At(guidance.Point{X: 0.5, Y: 0.5}), speaker, snapshot.NewMock())

	s, err := m.Start("rice")
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	time.Sleep(60 * time.Millisecond)
	m.Shutdown()

	if !s.Finished() {
		t.Fatal("locator errors must not kill the loop")
	}

	var lost bool
	for _, text := range speaker.Texts() {
		if text == "cannot see target" {
			lost = true
		}
	}
	if !lost {
		t.Errorf("expected degraded 'cannot see target', got %v", speaker.Texts())
	}
}

func TestSession_StatusPublished(t *testing.T) {
	cam := &fakeCamera{}
	loc := locator.WithObservation(locator.Observation{
		Found: true,
		Box:   locator.Box{XMin: 0.4, YMin: 0.4, XMax: 0.6, YMax: 0.6},
	})

	m := newTestManager(cam, loc, hand.At(guidance.Point{X: 0.5, Y: 0.5}), speech.NewMock(), snapshot.NewMock())

	var mu sync.Mutex
	var statuses []Status
	m.OnStatus = func(st Status) {
		mu.Lock()
		statuses = append(statuses, st)
		mu.Unlock()
	}

	s, err := m.Start("rice")
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	time.Sleep(80 * time.Millisecond)
	m.Shutdown()

	mu.Lock()
	defer mu.Unlock()
	if len(statuses) == 0 {
		t.Fatal("expected published statuses")
	}

	st := statuses[len(statuses)-1]
	if st.Target != "rice" || st.SessionID != s.ID {
		t.Errorf("unexpected status identity: %+v", st)
	}
	if st.Intent != "aligned" || st.Phrase != "good position" {
		t.Errorf("expected aligned status, got %+v", st)
	}
	if !st.TargetVisible || !st.HandVisible {
		t.Errorf("expected both signals visible, got %+v", st)
	}

	if got := s.LastStatus(); got.Phrase != st.Phrase {
		t.Errorf("LastStatus mismatch: %+v vs %+v", got, st)
	}
}

func TestSession_CancelObservedWithinOneIteration(t *testing.T) {
	cam := &fakeCamera{}
	m := newTestManager(cam, locator.NewMock(), hand.NewMock(), speech.NewMock(), snapshot.NewMock())

	s, err := m.Start("rice")
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	s.Cancel()
	done := make(chan struct{})
	go func() {
		s.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		t.Fatal("loop did not observe cancellation in time")
	}
}
