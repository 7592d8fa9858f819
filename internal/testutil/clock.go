package testutil

import (
	"sync"
	"time"
)

// FixedClock is a settable wall clock for tests.
//
// It satisfies clock.Clock. Unlike the wall clock it never moves on its own,
// so window boundaries computed from it are reproducible.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type FixedClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFixedClock creates a clock frozen at now, truncated to the second.
func NewFixedClock(now time.Time) *FixedClock {
	return &FixedClock{now: now.Truncate(time.Second)}
}

// Now returns the frozen instant.
func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d (or back, for negative d).
func (c *FixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d).Truncate(time.Second)
}

// Set moves the clock to t.
func (c *FixedClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t.Truncate(time.Second)
}

// Reference is the instant most package tests freeze their clock at:
// Wednesday 2025-02-12 14:30:00 UTC.
var Reference = time.Date(2025, time.February, 12, 14, 30, 0, 0, time.UTC)
