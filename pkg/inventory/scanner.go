package inventory

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/teslashibe/go-pantry/internal/log"
	"github.com/teslashibe/go-pantry/pkg/locator"
)

// FrameSource provides a single JPEG frame on demand.
type FrameSource interface {
	CaptureJPEG() ([]byte, error)
}

// Scanner reconciles the stored inventory against what the detector sees
// in a camera frame.
type Scanner struct {
	source   FrameSource
	detector locator.ItemDetector
	store    *Store
	logger   *slog.Logger
}

// NewScanner wires a frame source and an item detector to a store.
func NewScanner(source FrameSource, detector locator.ItemDetector, store *Store) *Scanner {
	return &Scanner{
		source:   source,
		detector: detector,
		store:    store,
		logger:   log.With("component", "scanner"),
	}
}

// Scan captures a frame, detects item counts, merges them into the stored
// inventory, and returns what changed. Items tracked before the scan stay
// tracked at zero when the detector no longer sees them, so a shelf item
// temporarily out of frame reads as out of stock rather than forgotten.
func (s *Scanner) Scan(ctx context.Context, mode locator.ScanMode) (Changes, error) {
	frame, err := s.source.CaptureJPEG()
	if err != nil {
		return Changes{}, fmt.Errorf("failed to capture frame: %w", err)
	}

	detected, err := s.detector.DetectItems(ctx, frame, mode)
	if err != nil {
		return Changes{}, fmt.Errorf("failed to detect items: %w", err)
	}

	old := s.store.Items()

	merged := make(map[string]int, len(old)+len(detected))
	for name := range old {
		merged[name] = 0
	}
	for name, count := range detected {
		merged[name] = count
	}

	changes := Compare(old, merged)
	if err := s.store.Replace(merged); err != nil {
		return Changes{}, fmt.Errorf("failed to save inventory: %w", err)
	}

	s.logger.Info("scan complete",
		"detected", len(detected),
		"tracked", len(merged),
		"added", len(changes.Added),
		"zero", len(changes.ZeroItems))
	return changes, nil
}
