package sink

import "sync"

// MockSink is a test implementation recording every dispatch. It satisfies
// both ContinuousSink and TriggerSink.
type MockSink struct {
	mu     sync.Mutex
	values []float64
	fires  int
	err    error
}

// NewMockSink creates an empty MockSink.
func NewMockSink() *MockSink {
	return &MockSink{}
}

// SetError makes every subsequent dispatch fail with err.
func (m *MockSink) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Set records the value.
func (m *MockSink) Set(value float64, channel, controller uint8) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.values = append(m.values, value)
	return nil
}

// Fire records the trigger.
func (m *MockSink) Fire() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.fires++
	return nil
}

// Values returns a copy of all recorded continuous values.
func (m *MockSink) Values() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]float64, len(m.values))
	copy(out, m.values)
	return out
}

// Fires returns the number of recorded trigger events.
func (m *MockSink) Fires() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fires
}
