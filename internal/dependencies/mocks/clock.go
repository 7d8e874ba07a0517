package mocks

import (
	"sync"
	"time"

	"github.com/mcoot/ranchgame/internal/dependencies/clock"
)

// MockClock is a Clock whose time only moves when a test moves it.
// Trades read it concurrently, so access is guarded.
type MockClock struct {
	mu      sync.Mutex
	current time.Time
	calls   int
}

// Ensure MockClock implements Clock
var _ clock.Clock = (*MockClock)(nil)

// NewMockClock creates a MockClock set to the given time
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{current: t}
}

// Now returns the mocked current time
func (c *MockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	return c.current
}

// Advance moves the clock forward by d
func (c *MockClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.current.Add(d)
}

// Set sets the clock to the given time
func (c *MockClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = t
}

// Calls reports how many times Now has been read
func (c *MockClock) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}
