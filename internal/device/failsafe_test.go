package device_test

import (
	"context"
	"testing"
	"time"

	"github.com/stigoleg/mouse-keepalive/internal/device"
	"github.com/stigoleg/mouse-keepalive/internal/device/devicetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInCorner(t *testing.T) {
	b := device.ScreenBounds{Width: 1920, Height: 1080}
	tests := []struct {
		name string
		pos  device.Position
		want bool
	}{
		{name: "top left", pos: device.Position{X: 0, Y: 0}, want: true},
		{name: "top right", pos: device.Position{X: 1919, Y: 0}, want: true},
		{name: "bottom left", pos: device.Position{X: 0, Y: 1079}, want: true},
		{name: "bottom right", pos: device.Position{X: 1920, Y: 1080}, want: true},
		{name: "left edge", pos: device.Position{X: 0, Y: 500}, want: false},
		{name: "centre", pos: device.Position{X: 960, Y: 540}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, device.InCorner(tt.pos, b))
		})
	}
}

func TestFailSafeBlocksInCorner(t *testing.T) {
	fake := devicetest.NewFake()
	fake.Pos = device.Position{X: 0, Y: 0}
	dev := device.WithFailSafe(fake)
	ctx := context.Background()

	err := dev.MoveTo(ctx, 10, 10, 0)
	assert.ErrorIs(t, err, device.ErrFailSafe)
	assert.Empty(t, fake.Moves)

	err = dev.PressKey(ctx, device.DefaultKey)
	assert.ErrorIs(t, err, device.ErrFailSafe)
	assert.Empty(t, fake.Keys)
}

func TestFailSafePassesThrough(t *testing.T) {
	fake := devicetest.NewFake()
	dev := device.WithFailSafe(fake)
	ctx := context.Background()

	require.NoError(t, dev.MoveTo(ctx, 101, 201, 100*time.Millisecond))
	require.NoError(t, dev.PressKey(ctx, "shift"))

	assert.Equal(t, []devicetest.Move{{X: 101, Y: 201, Glide: 100 * time.Millisecond}}, fake.Moves)
	assert.Equal(t, []string{"shift"}, fake.Keys)
}
