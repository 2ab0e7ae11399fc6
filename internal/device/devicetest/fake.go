// Package devicetest provides an in-memory device.Device for tests.
package devicetest

import (
	"context"
	"sync"
	"time"

	"github.com/stigoleg/mouse-keepalive/internal/device"
)

// Move records one MoveTo call.
type Move struct {
	X, Y  int
	Glide time.Duration
}

// Fake is a scriptable device. Errors set on the struct are returned by the
// matching operation; the *Err funcs take precedence and see the call number.
type Fake struct {
	mu sync.Mutex

	Pos    device.Position
	Bounds device.ScreenBounds

	PositionErr func(call int) error
	BoundsErr   func(call int) error
	MoveErr     func(call int) error
	KeyErr      func(call int) error

	Moves         []Move
	Keys          []string
	PositionCalls int
	BoundsCalls   int
	Closed        int
}

// NewFake returns a fake pointer at (100, 200) on a 1920x1080 screen.
func NewFake() *Fake {
	return &Fake{
		Pos:    device.Position{X: 100, Y: 200},
		Bounds: device.ScreenBounds{Width: 1920, Height: 1080},
	}
}

func (f *Fake) Position(ctx context.Context) (device.Position, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.PositionCalls++
	if f.PositionErr != nil {
		if err := f.PositionErr(f.PositionCalls); err != nil {
			return device.Position{}, err
		}
	}
	return f.Pos, nil
}

func (f *Fake) ScreenBounds(ctx context.Context) (device.ScreenBounds, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.BoundsCalls++
	if f.BoundsErr != nil {
		if err := f.BoundsErr(f.BoundsCalls); err != nil {
			return device.ScreenBounds{}, err
		}
	}
	return f.Bounds, nil
}

// MoveTo records the move and updates the pointer position.
func (f *Fake) MoveTo(ctx context.Context, x, y int, glide time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Moves = append(f.Moves, Move{X: x, Y: y, Glide: glide})
	if f.MoveErr != nil {
		if err := f.MoveErr(len(f.Moves)); err != nil {
			return err
		}
	}
	f.Pos = device.Position{X: x, Y: y}
	return nil
}

func (f *Fake) PressKey(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Keys = append(f.Keys, key)
	if f.KeyErr != nil {
		return f.KeyErr(len(f.Keys))
	}
	return nil
}

// Close counts calls so tests can check the device is released.
func (f *Fake) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Closed++
	return nil
}

// MoveCount returns the number of MoveTo calls so far.
func (f *Fake) MoveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Moves)
}
