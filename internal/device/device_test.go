package device

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Key
		wantErr bool
	}{
		{name: "default", input: DefaultKey, want: KeyShift},
		{name: "upper case", input: "SHIFT", want: KeyShift},
		{name: "x11 keysym", input: "Shift_L", want: KeyShift},
		{name: "left prefix", input: "left-shift", want: KeyShift},
		{name: "control", input: "Control", want: KeyControl},
		{name: "ctrl keysym", input: "Control_L", want: KeyControl},
		{name: "option is alt", input: "option", want: KeyAlt},
		{name: "f15", input: " F15 ", want: KeyF15},
		{name: "letter rejected", input: "a", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeKey(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrUnknownKey)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGlidePath(t *testing.T) {
	from := Position{X: 100, Y: 100}
	to := Position{X: 110, Y: 90}

	t.Run("zero duration warps", func(t *testing.T) {
		assert.Equal(t, []Position{to}, glidePath(from, to, 0))
	})

	t.Run("interpolates and ends on target", func(t *testing.T) {
		path := glidePath(from, to, 100*time.Millisecond)
		require.Len(t, path, 10)
		assert.Equal(t, Position{X: 101, Y: 99}, path[0])
		assert.Equal(t, Position{X: 105, Y: 95}, path[4])
		assert.Equal(t, to, path[len(path)-1])
	})
}

func TestGlideStopsOnWarpError(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	err := glide(context.Background(), Position{}, Position{X: 5, Y: 5}, 50*time.Millisecond,
		func(ctx context.Context, x, y int) error {
			calls++
			if calls == 2 {
				return boom
			}
			return nil
		})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, calls)
}

func TestGlideHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := glide(ctx, Position{}, Position{X: 50, Y: 50}, time.Second,
		func(ctx context.Context, x, y int) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseShellLocation(t *testing.T) {
	pos, err := parseShellLocation("X=640\nY=480\nSCREEN=0\nWINDOW=123456\n")
	require.NoError(t, err)
	assert.Equal(t, Position{X: 640, Y: 480}, pos)

	_, err = parseShellLocation("SCREEN=0")
	assert.Error(t, err)
}

func TestParsePair(t *testing.T) {
	tests := []struct {
		in      string
		a, b    int
		wantErr bool
	}{
		{in: "1920 1080", a: 1920, b: 1080},
		{in: "1440,900\n", a: 1440, b: 900},
		{in: "512.4,300.9", a: 512, b: 300},
		{in: "1920", wantErr: true},
		{in: "x y", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			a, b, err := parsePair(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.a, a)
			assert.Equal(t, tt.b, b)
		})
	}
}
