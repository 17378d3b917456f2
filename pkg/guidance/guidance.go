// Package guidance maps the offset between a target and the user's hand to a
// short spoken directive. The decision function is pure; all state (caching,
// pacing, speech) lives with the caller.
package guidance

import "math"

// Thresholds for directional phrases, in normalized frame units.
// Offsets at or below Small count as aligned on that axis; offsets above
// Medium get the stronger "more" phrasing.
const (
	Small  = 0.06
	Medium = 0.14
)

// Point is a normalized position in the frame. X grows rightward, Y grows
// downward, both in [0,1].
type Point struct {
	X float64
	Y float64
}

// Intent classifies what a phrase is telling the user.
type Intent int

const (
	// IntentGuide is a directional correction ("move left a bit").
	IntentGuide Intent = iota

	// IntentAligned means the hand is on the target.
	IntentAligned

	// IntentTargetLost means the target is not visible.
	IntentTargetLost

	// IntentHandLost means the target is visible but the hand is not.
	IntentHandLost
)

// String returns a short name for logging.
func (i Intent) String() string {
	switch i {
	case IntentGuide:
		return "guide"
	case IntentAligned:
		return "aligned"
	case IntentTargetLost:
		return "target-lost"
	case IntentHandLost:
		return "hand-lost"
	default:
		return "unknown"
	}
}

// Phrase is a single utterance. Exactly one Phrase is produced per decision.
type Phrase struct {
	Text   string
	Intent Intent
}

// Decide maps the current target and hand positions to one phrase.
// A nil target wins over everything else; a nil hand is only reported when
// the target is visible.
func Decide(target, hand *Point) Phrase {
	if target == nil {
		return Phrase{Text: "cannot see target", Intent: IntentTargetLost}
	}
	if hand == nil {
		return Phrase{Text: "cannot see hand", Intent: IntentHandLost}
	}

	dx := target.X - hand.X
	dy := target.Y - hand.Y

	xPhrase := axisPhrase(dx, "right", "left")
	yPhrase := axisPhrase(dy, "down", "up")

	switch {
	case xPhrase == "" && yPhrase == "":
		return Phrase{Text: "good position", Intent: IntentAligned}
	case xPhrase == "":
		return Phrase{Text: yPhrase, Intent: IntentGuide}
	case yPhrase == "":
		return Phrase{Text: xPhrase, Intent: IntentGuide}
	default:
		return Phrase{Text: xPhrase + " and " + yPhrase, Intent: IntentGuide}
	}
}

// axisPhrase selects the directive for one axis. positive/negative name the
// directions of growing and shrinking offset (right/left for x, down/up for y).
func axisPhrase(delta float64, positive, negative string) string {
	dir := positive
	if delta < 0 {
		dir = negative
	}

	switch {
	case math.Abs(delta) > Medium:
		return "move " + dir + " more"
	case math.Abs(delta) > Small:
		return "move " + dir + " a bit"
	default:
		return ""
	}
}
