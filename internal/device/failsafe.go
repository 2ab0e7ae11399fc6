package device

import (
	"context"
	"time"
)

type failSafeDevice struct {
	Device
}

// WithFailSafe wraps dev so that MoveTo and PressKey return ErrFailSafe while
// the pointer is in any corner of the screen.
func WithFailSafe(dev Device) Device {
	return &failSafeDevice{Device: dev}
}

func (d *failSafeDevice) MoveTo(ctx context.Context, x, y int, glide time.Duration) error {
	if err := d.check(ctx); err != nil {
		return err
	}
	return d.Device.MoveTo(ctx, x, y, glide)
}

func (d *failSafeDevice) PressKey(ctx context.Context, key string) error {
	if err := d.check(ctx); err != nil {
		return err
	}
	return d.Device.PressKey(ctx, key)
}

func (d *failSafeDevice) check(ctx context.Context) error {
	pos, err := d.Device.Position(ctx)
	if err != nil {
		return err
	}
	bounds, err := d.Device.ScreenBounds(ctx)
	if err != nil {
		return err
	}
	if InCorner(pos, bounds) {
		return ErrFailSafe
	}
	return nil
}

// InCorner reports whether p is one of the four corner pixels of b.
func InCorner(p Position, b ScreenBounds) bool {
	atX := p.X <= 0 || p.X >= b.Width-1
	atY := p.Y <= 0 || p.Y >= b.Height-1
	return atX && atY
}

// Close releases the wrapped device.
func (d *failSafeDevice) Close() error {
	return Close(d.Device)
}
