// Package camera provides exclusive access to a local capture device.
// A Device is owned by exactly one loop at a time; the session manager
// guarantees the previous owner has released it before a new one opens it.
package camera

import "fmt"

// Config holds capture device parameters.
type Config struct {
	// Index is the V4L/AVFoundation device index.
	Index int `json:"index"`

	// Resolution requested from the device.
	Width  int `json:"width"`
	Height int `json:"height"`

	// WarmupFrames are discarded after open while exposure settles.
	WarmupFrames int `json:"warmup_frames"`

	// Quality is the JPEG encode quality 1-100.
	Quality int `json:"quality"`
}

// DefaultConfig returns the 720p defaults used for guidance sessions.
func DefaultConfig() Config {
	return Config{
		Index:        0,
		Width:        1280,
		Height:       720,
		WarmupFrames: 10,
		Quality:      85,
	}
}

// Validate checks that the config values are usable.
func (c Config) Validate() error {
	if c.Index < 0 {
		return fmt.Errorf("camera: index must be >= 0")
	}
	if c.Width < 160 || c.Height < 120 {
		return fmt.Errorf("camera: resolution too small (%dx%d)", c.Width, c.Height)
	}
	if c.Quality < 1 || c.Quality > 100 {
		return fmt.Errorf("camera: quality must be between 1 and 100")
	}
	if c.WarmupFrames < 0 {
		return fmt.Errorf("camera: warmup frames must be >= 0")
	}
	return nil
}
