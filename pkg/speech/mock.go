package speech

import (
	"sync"
	"time"
)

// Mock implements Speaker and Synthesizer for testing.
type Mock struct {
	// SpeakFunc is called when Speak is invoked. If nil, succeeds silently.
	SpeakFunc func(text string) error

	mu    sync.Mutex
	calls []MockCall
}

// MockCall records one announcement.
type MockCall struct {
	Text string
	Time time.Time
}

// NewMock creates a mock speaker that accepts everything.
func NewMock() *Mock {
	return &Mock{}
}

// Failing creates a mock speaker whose backend always fails.
func Failing(err error) *Mock {
	return &Mock{
		SpeakFunc: func(text string) error { return err },
	}
}

// Announce records the text, ignoring backend failures like a real speaker.
func (m *Mock) Announce(text string) {
	m.Speak(text)
}

// Speak records the text and calls SpeakFunc.
func (m *Mock) Speak(text string) error {
	m.mu.Lock()
	m.calls = append(m.calls, MockCall{Text: text, Time: time.Now()})
	m.mu.Unlock()

	if m.SpeakFunc != nil {
		return m.SpeakFunc(text)
	}
	return nil
}

// Calls returns all recorded announcements.
func (m *Mock) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]MockCall, len(m.calls))
	copy(result, m.calls)
	return result
}

// Texts returns just the announced strings, in order.
func (m *Mock) Texts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	texts := make([]string, len(m.calls))
	for i, c := range m.calls {
		texts[i] = c.Text
	}
	return texts
}

// CallCount returns the number of announcements.
func (m *Mock) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

var (
	_ Speaker     = (*Mock)(nil)
	_ Synthesizer = (*Mock)(nil)
)
