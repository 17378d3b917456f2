// Package snapshot writes debug frames with the current target box and hand
// position drawn in. Recording is a write-only side channel; callers log and
// swallow every error so a full disk cannot stop a guidance session.
package snapshot

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/teslashibe/go-pantry/pkg/guidance"
	"github.com/teslashibe/go-pantry/pkg/locator"
)

// Recorder persists one annotated frame.
type Recorder interface {
	// Record overlays the box and hand marker on the frame and writes it.
	// Either overlay input may be nil when that signal is absent.
	Record(jpeg []byte, box *locator.Box, hand *guidance.Point, label string) error
}

// filename builds the timestamped snapshot path, matching the
// assist_debug_YYYYmmdd_HHMMSS.jpg naming of the captures directory.
func filename(dir string, now time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("assist_debug_%s.jpg", now.Format("20060102_150405")))
}
