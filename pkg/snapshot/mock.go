package snapshot

import (
	"sync"

	"github.com/teslashibe/go-pantry/pkg/guidance"
	"github.com/teslashibe/go-pantry/pkg/locator"
)

// Mock implements Recorder for testing.
type Mock struct {
	// Err, when set, is returned from every Record call.
	Err error

	mu    sync.Mutex
	calls []MockCall
}

// MockCall records one snapshot request.
type MockCall struct {
	Box   *locator.Box
	Hand  *guidance.Point
	Label string
}

// NewMock creates a recorder that accepts everything.
func NewMock() *Mock {
	return &Mock{}
}

// Record captures the call and returns Err.
func (m *Mock) Record(jpeg []byte, box *locator.Box, hand *guidance.Point, label string) error {
	m.mu.Lock()
	m.calls = append(m.calls, MockCall{Box: box, Hand: hand, Label: label})
	m.mu.Unlock()
	return m.Err
}

// Calls returns the recorded snapshot requests.
func (m *Mock) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]MockCall, len(m.calls))
	copy(result, m.calls)
	return result
}

// CallCount returns the number of Record invocations.
func (m *Mock) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

var _ Recorder = (*Mock)(nil)
