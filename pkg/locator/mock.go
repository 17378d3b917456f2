package locator

import (
	"context"
	"sync"
	"time"
)

// Mock implements Locator and ItemDetector for testing.
// All methods can be customized via function fields.
type Mock struct {
	// LocateFunc is called when Locate is invoked.
	// If nil, returns not-found.
	LocateFunc func(ctx context.Context, jpeg []byte, target string) (Observation, error)

	// DetectItemsFunc is called when DetectItems is invoked.
	// If nil, returns an empty map.
	DetectItemsFunc func(ctx context.Context, jpeg []byte, mode ScanMode) (map[string]int, error)

	// Tracking
	mu    sync.Mutex
	calls []MockCall
}

// MockCall records a method invocation for verification.
type MockCall struct {
	Method string
	Target string
	Time   time.Time
}

// NewMock creates a mock locator that reports not-found for everything.
func NewMock() *Mock {
	return &Mock{}
}

// WithObservation creates a mock that always returns the given observation.
func WithObservation(obs Observation) *Mock {
	return &Mock{
		LocateFunc: func(ctx context.Context, jpeg []byte, target string) (Observation, error) {
			return obs, nil
		},
	}
}

// WithError creates a mock that always fails with the given error.
func WithError(err error) *Mock {
	return &Mock{
		LocateFunc: func(ctx context.Context, jpeg []byte, target string) (Observation, error) {
			return Observation{}, err
		},
		DetectItemsFunc: func(ctx context.Context, jpeg []byte, mode ScanMode) (map[string]int, error) {
			return nil, err
		},
	}
}

// Locate calls LocateFunc and records the call.
func (m *Mock) Locate(ctx context.Context, jpeg []byte, target string) (Observation, error) {
	m.recordCall("Locate", target)
	if m.LocateFunc != nil {
		return m.LocateFunc(ctx, jpeg, target)
	}
	return Observation{}, nil
}

// DetectItems calls DetectItemsFunc and records the call.
func (m *Mock) DetectItems(ctx context.Context, jpeg []byte, mode ScanMode) (map[string]int, error) {
	m.recordCall("DetectItems", string(mode))
	if m.DetectItemsFunc != nil {
		return m.DetectItemsFunc(ctx, jpeg, mode)
	}
	return map[string]int{}, nil
}

// Close records the call and returns nil.
func (m *Mock) Close() error {
	m.recordCall("Close", "")
	return nil
}

func (m *Mock) recordCall(method, target string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, MockCall{Method: method, Target: target, Time: time.Now()})
}

// Calls returns all recorded method calls.
func (m *Mock) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]MockCall, len(m.calls))
	copy(result, m.calls)
	return result
}

// CallCount returns the number of times a method was called.
func (m *Mock) CallCount(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, c := range m.calls {
		if c.Method == method {
			count++
		}
	}
	return count
}

var (
	_ Locator      = (*Mock)(nil)
	_ ItemDetector = (*Mock)(nil)
)
