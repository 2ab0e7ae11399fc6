package keepalive

import "github.com/stigoleg/mouse-keepalive/internal/device"

const (
	// DefaultOffset moves the pointer a single pixel; enough for OS idle
	// detection and invisible to the user.
	DefaultOffset = 1

	// VisibleOffset is large enough for chat and collaboration apps that
	// ignore single-pixel motion.
	VisibleOffset = 25
)

// Jitter computes round-trip targets for the pointer-jitter method.
type Jitter struct {
	Offset int
}

// NextPosition is Jitter{Offset: DefaultOffset}.Next.
func NextPosition(current device.Position, bounds device.ScreenBounds, tick int) device.Position {
	return Jitter{Offset: DefaultOffset}.Next(current, bounds, tick)
}

// Next offsets current by +Offset on both axes for even ticks and -Offset for
// odd ticks, then clamps each axis to [1, dimension-1]. The screen edges are
// never targeted.
func (j Jitter) Next(current device.Position, bounds device.ScreenBounds, tick int) device.Position {
	off := j.Offset
	if tick%2 != 0 {
		off = -off
	}
	return device.Position{
		X: clamp(current.X+off, 1, bounds.Width-1),
		Y: clamp(current.Y+off, 1, bounds.Height-1),
	}
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
