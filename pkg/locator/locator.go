// Package locator asks a remote vision model where a named object sits in a
// camera frame. Responses come back as free-form model text; the package
// treats decoding as a resilient step with an explicit not-found fallback,
// so callers only ever see a well-formed Observation or an error.
//
// Example usage:
//
//	loc, _ := locator.New(
//	    locator.WithAPIKey(os.Getenv("LOCATOR_API_KEY")),
//	    locator.WithModels("gpt-4o", "gpt-4o-mini"),
//	)
//	defer loc.Close()
//
//	obs, err := loc.Locate(ctx, frame, "oreo cookies")
//	if err == nil && obs.Found {
//	    center := obs.Box.Center()
//	}
package locator

import (
	"context"

	"github.com/teslashibe/go-pantry/pkg/guidance"
)

// Box is a normalized bounding box, all coordinates in [0,1] with
// XMin < XMax and YMin < YMax.
type Box struct {
	XMin float64 `json:"x_min"`
	YMin float64 `json:"y_min"`
	XMax float64 `json:"x_max"`
	YMax float64 `json:"y_max"`
}

// Center returns the box midpoint.
func (b Box) Center() guidance.Point {
	return guidance.Point{
		X: (b.XMin + b.XMax) / 2,
		Y: (b.YMin + b.YMax) / 2,
	}
}

// Valid reports whether the box has positive width and height and sits
// inside the unit square. A degenerate box is treated as not-found.
func (b Box) Valid() bool {
	if b.XMax <= b.XMin || b.YMax <= b.YMin {
		return false
	}
	if b.XMin < 0 || b.YMin < 0 || b.XMax > 1 || b.YMax > 1 {
		return false
	}
	return true
}

// Observation is the result of one localization call. When Found is false
// the Box and Confidence are meaningless.
type Observation struct {
	Found      bool
	Box        Box
	Confidence float64
}

// Locator finds a named object in a JPEG frame.
type Locator interface {
	// Locate returns where the target appears in the frame. A target the
	// model cannot see, a degenerate box, or an undecodable response all
	// come back as Found=false with a nil error. Only transport and
	// non-validation API failures are returned as errors.
	Locate(ctx context.Context, jpeg []byte, target string) (Observation, error)

	// Close releases any resources held by the locator.
	Close() error
}

// ItemDetector counts distinct items on a shelf, for inventory scans.
type ItemDetector interface {
	// DetectItems returns item name -> count for everything visible.
	DetectItems(ctx context.Context, jpeg []byte, mode ScanMode) (map[string]int, error)
}

// ScanMode selects the detection prompt for inventory scans.
type ScanMode string

const (
	// ScanGeneral counts any distinct objects.
	ScanGeneral ScanMode = "general"

	// ScanPantry counts only food and drink items.
	ScanPantry ScanMode = "pantry"
)
