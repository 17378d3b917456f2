// Package hand estimates where the user's hand is in a camera frame.
// The position is the centroid of all landmark points of the first detected
// hand, normalized to [0,1]. A tracker that cannot initialize degrades to a
// permanent not-found instead of failing the caller.
package hand

import (
	"github.com/teslashibe/go-pantry/internal/log"
	"github.com/teslashibe/go-pantry/pkg/guidance"
)

// Tracker is the interface for hand position backends.
type Tracker interface {
	// Track finds the hand centroid in the JPEG image.
	// ok is false when no hand is visible; err is reserved for faults that
	// are worth a log line, the caller treats both the same way.
	Track(jpeg []byte) (pos guidance.Point, ok bool, err error)

	// Close releases resources.
	Close() error
}

// Config holds tracker configuration.
type Config struct {
	ModelPath   string  // Path to ONNX landmark model
	ScoreThresh float64 // Minimum hand presence score (default 0.6)
	InputSize   int     // Model input edge length in pixels
}

// DefaultConfig returns production defaults for the landmark model.
func DefaultConfig() Config {
	return Config{
		ModelPath:   "models/hand_landmarks.onnx",
		ScoreThresh: 0.6,
		InputSize:   224,
	}
}

// NewTracker builds the ONNX tracker, downgrading to Unavailable when the
// model cannot be loaded. The downgrade is permanent for the process; the
// guidance loop then reports "cannot see hand" instead of crashing.
func NewTracker(cfg Config) Tracker {
	t, err := NewONNX(cfg)
	if err != nil {
		log.Warn("hand tracker unavailable, reporting hand as not found",
			"model", cfg.ModelPath,
			"error", err,
		)
		return Unavailable()
	}
	return t
}

// centroid returns the mean position of the given points.
func centroid(points []guidance.Point) guidance.Point {
	if len(points) == 0 {
		return guidance.Point{}
	}
	var sx, sy float64
	for _, p := range points {
		sx += p.X
		sy += p.Y
	}
	n := float64(len(points))
	return guidance.Point{X: sx / n, Y: sy / n}
}

// landmarkPoints converts a flat (x,y,z)*21 landmark tensor, in pixels of a
// size×size model input, to normalized frame points. Values outside the
// input square are clamped rather than rejected.
func landmarkPoints(flat []float32, size int) []guidance.Point {
	const stride = 3
	edge := float64(size)

	points := make([]guidance.Point, 0, len(flat)/stride)
	for i := 0; i+1 < len(flat); i += stride {
		points = append(points, guidance.Point{
			X: clamp01(float64(flat[i]) / edge),
			Y: clamp01(float64(flat[i+1]) / edge),
		})
	}
	return points
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
