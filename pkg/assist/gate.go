package assist

import "time"

// Gate permits an action at most once per interval. It fires on the first
// check and then not again until the interval has elapsed since the last
// firing, regardless of how often it is polled. Gates are not safe for
// concurrent use; each belongs to the single loop goroutine.
type Gate struct {
	interval time.Duration
	last     time.Time
}

// NewGate creates a gate that has never fired.
func NewGate(interval time.Duration) *Gate {
	return &Gate{interval: interval}
}

// Fire reports whether the action may run at the given instant, resetting
// the gate when it does. Passing the caller's single wall-clock read keeps
// all gates in one iteration consistent with each other.
func (g *Gate) Fire(now time.Time) bool {
	if now.Sub(g.last) > g.interval {
		g.last = now
		return true
	}
	return false
}

// Interval returns the configured interval.
func (g *Gate) Interval() time.Duration {
	return g.interval
}
