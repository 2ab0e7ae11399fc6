package keepalive

import (
	"context"
	"time"
)

// Clock provides the current time. Swapped out in tests.
type Clock interface {
	Now() time.Time
}

// Sleeper blocks for d or until ctx is done, returning ctx.Err() in the
// latter case. It is the loop's only suspension point.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// SystemClock is the wall clock.
var SystemClock Clock = systemClock{}

// SystemSleeper waits on a real timer.
var SystemSleeper Sleeper = systemSleeper{}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

type systemSleeper struct{}

func (systemSleeper) Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
