// Package device wraps the platform input primitives the keep-alive loop needs:
// reading the pointer, reading the screen size, moving the pointer and pressing
// a key. Implementations hold no policy; every failure is returned to the caller.
package device

import (
	"context"
	"errors"
	"io"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrUnsupported is returned by every operation on platforms without a backend.
	ErrUnsupported = errors.New("input device not supported on this platform")

	// ErrFailSafe is returned when the fail-safe is enabled and the pointer
	// rests in a screen corner.
	ErrFailSafe = errors.New("fail-safe triggered: pointer is in a screen corner")

	// ErrClosed is returned by a device used after Close.
	ErrClosed = errors.New("input device closed")
)

// Position is an absolute screen coordinate.
type Position struct {
	X int
	Y int
}

// ScreenBounds is the size of the primary display in pixels.
type ScreenBounds struct {
	Width  int
	Height int
}

// Device is the capability interface the activity loop drives.
type Device interface {
	Position(ctx context.Context) (Position, error)
	ScreenBounds(ctx context.Context) (ScreenBounds, error)
	MoveTo(ctx context.Context, x, y int, glide time.Duration) error
	PressKey(ctx context.Context, key string) error
}

// Options configures the platform device returned by New.
type Options struct {
	// FailSafe refuses moves and key presses while the pointer sits in a
	// screen corner. Off by default.
	FailSafe bool

	// Display is the X11 display used by the linux backend. Empty keeps the
	// inherited DISPLAY.
	Display string

	Logger *zap.Logger
}

// New returns the device for the running platform.
func New(opts Options) (Device, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	dev, err := newPlatformDevice(opts)
	if err != nil {
		return nil, err
	}
	if opts.FailSafe {
		dev = WithFailSafe(dev)
	}
	return dev, nil
}

// Close releases dev if it holds operating system resources.
func Close(dev Device) error {
	if c, ok := dev.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
