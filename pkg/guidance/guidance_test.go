package guidance

import (
	"strings"
	"testing"
)

func TestDecide_AlignedWithinSmallThreshold(t *testing.T) {
	target := &Point{X: 0.50, Y: 0.50}

	hands := []Point{
		{X: 0.50, Y: 0.50},
		{X: 0.48, Y: 0.52},
		{X: 0.45, Y: 0.55},
		{X: 0.55, Y: 0.45},
	}

	for _, hand := range hands {
		h := hand
		p := Decide(target, &h)
		if p.Intent != IntentAligned {
			t.Errorf("hand %+v: expected aligned, got %q (%s)", hand, p.Text, p.Intent)
		}
		if p.Text != "good position" {
			t.Errorf("hand %+v: expected 'good position', got %q", hand, p.Text)
		}
	}
}

func TestDecide_SingleAxisPhrases(t *testing.T) {
	tests := []struct {
		name string
		dx   float64
		dy   float64
		want string
	}{
		{"far right", 0.20, 0, "move right more"},
		{"slightly right", 0.10, 0, "move right a bit"},
		{"far left", -0.20, 0, "move left more"},
		{"slightly left", -0.10, 0, "move left a bit"},
		{"far down", 0, 0.20, "move down more"},
		{"slightly down", 0, 0.10, "move down a bit"},
		{"far up", 0, -0.20, "move up more"},
		{"slightly up", 0, -0.10, "move up a bit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := &Point{X: 0.5 + tt.dx, Y: 0.5 + tt.dy}
			hand := &Point{X: 0.5, Y: 0.5}

			p := Decide(target, hand)
			if p.Intent != IntentGuide {
				t.Fatalf("expected guide intent, got %s", p.Intent)
			}
			if p.Text != tt.want {
				t.Errorf("expected %q, got %q", tt.want, p.Text)
			}
		})
	}
}

func TestDecide_CombinesAxesWithAnd(t *testing.T) {
	target := &Point{X: 0.70, Y: 0.30}
	hand := &Point{X: 0.50, Y: 0.50}

	p := Decide(target, hand)
	if p.Text != "move right more and move up more" {
		t.Errorf("unexpected combined phrase: %q", p.Text)
	}
	if !strings.Contains(p.Text, " and ") {
		t.Error("expected axis phrases joined with ' and '")
	}
}

func TestDecide_MixedMagnitudes(t *testing.T) {
	// dx in the (Small, Medium] band, dy past Medium.
	target := &Point{X: 0.60, Y: 0.70}
	hand := &Point{X: 0.50, Y: 0.50}

	p := Decide(target, hand)
	if p.Text != "move right a bit and move down more" {
		t.Errorf("unexpected phrase: %q", p.Text)
	}
}

func TestDecide_TargetLostIgnoresHand(t *testing.T) {
	hands := []*Point{
		nil,
		{X: 0.5, Y: 0.5},
		{X: 0.0, Y: 1.0},
	}

	for _, hand := range hands {
		p := Decide(nil, hand)
		if p.Intent != IntentTargetLost {
			t.Errorf("hand %+v: expected target-lost, got %s", hand, p.Intent)
		}
		if p.Text != "cannot see target" {
			t.Errorf("hand %+v: expected 'cannot see target', got %q", hand, p.Text)
		}
	}
}

func TestDecide_HandLost(t *testing.T) {
	p := Decide(&Point{X: 0.5, Y: 0.5}, nil)
	if p.Intent != IntentHandLost {
		t.Fatalf("expected hand-lost, got %s", p.Intent)
	}
	if p.Text != "cannot see hand" {
		t.Errorf("expected 'cannot see hand', got %q", p.Text)
	}
}

func TestDecide_BoxCenterScenario(t *testing.T) {
	// Target box [0.40,0.40,0.60,0.60] -> center (0.50, 0.50), hand at (0.30, 0.50).
	target := &Point{X: 0.50, Y: 0.50}
	hand := &Point{X: 0.30, Y: 0.50}

	p := Decide(target, hand)
	if p.Text != "move right more" {
		t.Errorf("expected 'move right more', got %q", p.Text)
	}
}

func TestDecide_ThresholdBoundaries(t *testing.T) {
	// The hand sits at the origin so dx is the target coordinate itself,
	// with no subtraction rounding at the threshold constants.
	hand := &Point{}

	// Exactly Medium away stays in the "a bit" band.
	p := Decide(&Point{X: Medium}, hand)
	if p.Text != "move right a bit" {
		t.Errorf("at dx=Medium expected 'move right a bit', got %q", p.Text)
	}

	// Just past Medium escalates.
	p = Decide(&Point{X: Medium + 0.001}, hand)
	if p.Text != "move right more" {
		t.Errorf("just past Medium expected 'move right more', got %q", p.Text)
	}

	// Exactly Small away is aligned.
	p = Decide(&Point{X: Small}, hand)
	if p.Intent != IntentAligned {
		t.Errorf("at dx=Small expected aligned, got %q", p.Text)
	}

	// Just past Small guides.
	p = Decide(&Point{X: Small + 0.001}, hand)
	if p.Text != "move right a bit" {
		t.Errorf("just past Small expected 'move right a bit', got %q", p.Text)
	}
}
