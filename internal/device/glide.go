package device

import (
	"context"
	"time"
)

// glideStep is the pause between interpolated pointer positions.
const glideStep = 10 * time.Millisecond

// warpFunc places the pointer at an absolute position immediately.
type warpFunc func(ctx context.Context, x, y int) error

// glidePath returns the intermediate positions for a move from "from" to "to"
// spread over d. The final element is always "to".
func glidePath(from, to Position, d time.Duration) []Position {
	steps := int(d / glideStep)
	if steps < 1 {
		return []Position{to}
	}

	path := make([]Position, 0, steps)
	for i := 1; i <= steps; i++ {
		path = append(path, Position{
			X: from.X + (to.X-from.X)*i/steps,
			Y: from.Y + (to.Y-from.Y)*i/steps,
		})
	}
	path[len(path)-1] = to
	return path
}

// glide walks the pointer along glidePath, pausing glideStep between points.
// It stops early when ctx is done.
func glide(ctx context.Context, from, to Position, d time.Duration, warp warpFunc) error {
	path := glidePath(from, to, d)
	for i, p := range path {
		if err := warp(ctx, p.X, p.Y); err != nil {
			return err
		}
		if i == len(path)-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(glideStep):
		}
	}
	return nil
}
