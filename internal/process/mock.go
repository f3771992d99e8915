package process

import (
	"context"
	"sync"
)

// MockCall records a Spawn invocation for verification.
type MockCall struct {
	Argv []string
	Opts Options
}

// MockSpawner records every Spawn call and completes it with a canned
// outcome. With Deferred set, completions are held until Complete is called,
// which lets tests observe the window between launch and completion.
type MockSpawner struct {
	mu sync.Mutex

	// Result is delivered to onComplete for every successful spawn.
	Result Result
	// LaunchErr, when set, makes Spawn fail synchronously.
	LaunchErr error
	// Deferred holds completions until Complete is called.
	Deferred bool

	calls   []MockCall
	pending []func()
}

// NewMockSpawner creates a MockSpawner that completes successfully.
func NewMockSpawner() *MockSpawner {
	return &MockSpawner{}
}

// Spawn records the call and completes it, now or on Complete.
func (m *MockSpawner) Spawn(_ context.Context, argv []string, opts Options, onComplete func(Result)) (Handle, error) {
	m.mu.Lock()
	m.calls = append(m.calls, MockCall{Argv: append([]string(nil), argv...), Opts: opts})
	if m.LaunchErr != nil {
		err := m.LaunchErr
		m.mu.Unlock()
		return nil, err
	}
	res := m.Result
	done := func() { onComplete(res) }
	if m.Deferred {
		m.pending = append(m.pending, done)
		m.mu.Unlock()
		return mockHandle{}, nil
	}
	m.mu.Unlock()

	go done()
	return mockHandle{}, nil
}

// Complete runs every held completion, in launch order.
func (m *MockSpawner) Complete() {
	m.mu.Lock()
	pending := m.pending
	m.pending = nil
	m.mu.Unlock()
	for _, fn := range pending {
		fn()
	}
}

// GetCalls returns all recorded spawn invocations.
func (m *MockSpawner) GetCalls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := make([]MockCall, len(m.calls))
	copy(calls, m.calls)
	return calls
}

type mockHandle struct{}

func (mockHandle) PID() int { return 0 }

var _ Spawner = (*MockSpawner)(nil)
