package hand

import (
	"math"
	"testing"

	"github.com/teslashibe/go-pantry/pkg/guidance"
)

func TestCentroid(t *testing.T) {
	points := []guidance.Point{
		{X: 0.2, Y: 0.4},
		{X: 0.4, Y: 0.6},
		{X: 0.6, Y: 0.8},
	}

	c := centroid(points)
	if math.Abs(c.X-0.4) > 1e-9 || math.Abs(c.Y-0.6) > 1e-9 {
		t.Errorf("expected centroid (0.4,0.6), got (%v,%v)", c.X, c.Y)
	}
}

func TestCentroid_Empty(t *testing.T) {
	c := centroid(nil)
	if c.X != 0 || c.Y != 0 {
		t.Errorf("expected zero point for empty input, got %+v", c)
	}
}

func TestLandmarkPoints(t *testing.T) {
	// Two landmarks in a 224px input: (112,112,z) and (224,0,z).
	flat := []float32{112, 112, 5, 224, 0, -3}

	points := landmarkPoints(flat, 224)
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}
	if math.Abs(points[0].X-0.5) > 1e-6 || math.Abs(points[0].Y-0.5) > 1e-6 {
		t.Errorf("unexpected first point: %+v", points[0])
	}
	if points[1].X != 1 || points[1].Y != 0 {
		t.Errorf("unexpected second point: %+v", points[1])
	}
}

func TestLandmarkPoints_ClampsOutOfBounds(t *testing.T) {
	flat := []float32{-10, 300, 0}

	points := landmarkPoints(flat, 224)
	if len(points) != 1 {
		t.Fatalf("expected 1 point, got %d", len(points))
	}
	if points[0].X != 0 || points[0].Y != 1 {
		t.Errorf("expected clamped point (0,1), got %+v", points[0])
	}
}

func TestUnavailable_NeverSeesHand(t *testing.T) {
	tr := Unavailable()
	defer tr.Close()

	for i := 0; i < 3; i++ {
		_, ok, err := tr.Track([]byte("jpeg"))
		if ok {
			t.Fatal("unavailable tracker must never report a hand")
		}
		if err != nil {
			t.Fatalf("unavailable tracker must not error: %v", err)
		}
	}
}

func TestNewTracker_DowngradesOnMissingModel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ModelPath = "testdata/does_not_exist.onnx"

	tr := NewTracker(cfg)
	defer tr.Close()

	if _, ok, err := tr.Track([]byte("jpeg")); ok || err != nil {
		t.Errorf("expected permanent not-found downgrade, got ok=%v err=%v", ok, err)
	}
}
