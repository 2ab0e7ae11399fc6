// Package keepalivetest provides a manual clock for driving keepalive.Loop in
// tests without real waits.
package keepalivetest

import (
	"context"
	"sync"
	"time"
)

// ManualClock is both a keepalive.Clock and a keepalive.Sleeper. Sleep
// advances the clock by the requested duration and returns at once.
type ManualClock struct {
	mu  sync.Mutex
	now time.Time

	// OnSleep, if set, runs before each sleep with the 1-based call number.
	// A non-nil error is returned from Sleep instead of advancing.
	OnSleep func(call int) error
	sleeps  int
}

// NewManualClock starts at a fixed instant.
func NewManualClock() *ManualClock {
	return &ManualClock{now: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)}
}

func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func (c *ManualClock) Sleep(ctx context.Context, d time.Duration) error {
	c.mu.Lock()
	c.sleeps++
	call, hook := c.sleeps, c.OnSleep
	c.mu.Unlock()

	if hook != nil {
		if err := hook(call); err != nil {
			return err
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	c.Advance(d)
	return nil
}

// Sleeps returns how many times Sleep was called.
func (c *ManualClock) Sleeps() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sleeps
}
