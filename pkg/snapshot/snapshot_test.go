package snapshot

import (
	"path/filepath"
	"testing"
	"time"
)

func TestFilenameFormat(t *testing.T) {
	ts := time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)

	got := filename("captures", ts)
	want := filepath.Join("captures", "assist_debug_20250314_150926.jpg")
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestNewWriterCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "captures")

	if _, err := NewWriter(dir); err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}
}
