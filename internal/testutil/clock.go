package testutil

import (
	"sync"
	"time"
)

// DeterministicClock provides a thread-safe monotonic clock for tests.
//
// Each call to Now advances time by a fixed step, so timestamps written
// during a test are stable across runs and strictly increasing. This
// enables golden snapshot comparison of audit entries.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type DeterministicClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

// NewDeterministicClock creates a clock starting at a fixed epoch,
// advancing one second per Now call.
func NewDeterministicClock() *DeterministicClock {
	return &DeterministicClock{
		now:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		step: time.Second,
	}
}

// Now advances the clock by one step and returns the new time.
//
// Monotonic: successive calls always return strictly increasing times.
func (c *DeterministicClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(c.step)
	return c.now
}

// Current returns the current time without advancing.
func (c *DeterministicClock) Current() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Reset rewinds the clock to its starting epoch.
//
// Used for test reuse. After Reset(), timestamps repeat from the start.
func (c *DeterministicClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
}
