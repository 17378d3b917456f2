package hand

import (
	"sync"

	"github.com/teslashibe/go-pantry/pkg/guidance"
)

// Mock implements Tracker for testing.
type Mock struct {
	// TrackFunc is called when Track is invoked.
	// If nil, reports not-found.
	TrackFunc func(jpeg []byte) (guidance.Point, bool, error)

	mu    sync.Mutex
	count int
}

// NewMock creates a mock tracker that never sees a hand.
func NewMock() *Mock {
	return &Mock{}
}

// At creates a mock tracker that always reports the hand at the given point.
func At(p guidance.Point) *Mock {
	return &Mock{
		TrackFunc: func(jpeg []byte) (guidance.Point, bool, error) {
			return p, true, nil
		},
	}
}

// Track calls TrackFunc and counts the call.
func (m *Mock) Track(jpeg []byte) (guidance.Point, bool, error) {
	m.mu.Lock()
	m.count++
	m.mu.Unlock()

	if m.TrackFunc != nil {
		return m.TrackFunc(jpeg)
	}
	return guidance.Point{}, false, nil
}

// Close is a no-op.
func (m *Mock) Close() error { return nil }

// CallCount returns how many times Track was invoked.
func (m *Mock) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.count
}

var _ Tracker = (*Mock)(nil)
