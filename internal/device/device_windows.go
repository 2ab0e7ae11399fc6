//go:build windows

package device

import (
	"context"
	"fmt"
	"time"
	"unsafe"

	"go.uber.org/zap"
	"golang.org/x/sys/windows"
)

const (
	smCxScreen = 0
	smCyScreen = 1

	inputMouse    = 0
	inputKeyboard = 1

	mouseeventfMove     = 0x0001
	mouseeventfAbsolute = 0x8000

	keyeventfKeyUp = 0x0002
)

var (
	moduser32            = windows.NewLazySystemDLL("user32.dll")
	procGetCursorPos     = moduser32.NewProc("GetCursorPos")
	procGetSystemMetrics = moduser32.NewProc("GetSystemMetrics")
	procSendInput        = moduser32.NewProc("SendInput")
)

// Virtual-key codes for the supported keys.
var virtualKeys = map[Key]uint16{
	KeyShift:   0x10,
	KeyControl: 0x11,
	KeyAlt:     0x12,
	KeyF15:     0x7E,
}

type point struct {
	X, Y int32
}

type mouseInput struct {
	dx, dy    int32
	mouseData uint32
	flags     uint32
	time      uint32
	extraInfo uintptr
}

type keybdInput struct {
	vk        uint16
	scan      uint16
	flags     uint32
	time      uint32
	extraInfo uintptr
	_         [8]byte // pad to the size of the INPUT union
}

type mouseINPUT struct {
	typ uint32
	mi  mouseInput
}

type keybdINPUT struct {
	typ uint32
	ki  keybdInput
}

// sendInputDevice injects events with SendInput so they reset the session
// idle timer the same way hardware input does.
type sendInputDevice struct {
	log *zap.Logger
}

func newPlatformDevice(opts Options) (Device, error) {
	if err := procSendInput.Find(); err != nil {
		return nil, fmt.Errorf("user32 SendInput unavailable: %w", err)
	}
	return &sendInputDevice{log: opts.Logger}, nil
}

func (d *sendInputDevice) Position(ctx context.Context) (Position, error) {
	var p point
	r, _, err := procGetCursorPos.Call(uintptr(unsafe.Pointer(&p)))
	if r == 0 {
		return Position{}, fmt.Errorf("GetCursorPos: %w", err)
	}
	return Position{X: int(p.X), Y: int(p.Y)}, nil
}

func (d *sendInputDevice) ScreenBounds(ctx context.Context) (ScreenBounds, error) {
	w, _, _ := procGetSystemMetrics.Call(smCxScreen)
	h, _, _ := procGetSystemMetrics.Call(smCyScreen)
	if w == 0 || h == 0 {
		return ScreenBounds{}, fmt.Errorf("GetSystemMetrics returned %dx%d", w, h)
	}
	return ScreenBounds{Width: int(w), Height: int(h)}, nil
}

func (d *sendInputDevice) MoveTo(ctx context.Context, x, y int, glideFor time.Duration) error {
	bounds, err := d.ScreenBounds(ctx)
	if err != nil {
		return err
	}
	warp := func(_ context.Context, x, y int) error {
		return d.sendMouseAbsolute(x, y, bounds)
	}
	if glideFor <= 0 {
		return warp(ctx, x, y)
	}
	from, err := d.Position(ctx)
	if err != nil {
		return err
	}
	return glide(ctx, from, Position{X: x, Y: y}, glideFor, warp)
}

// sendMouseAbsolute converts pixels to the 0..65535 normalized space
// MOUSEEVENTF_ABSOLUTE expects.
func (d *sendInputDevice) sendMouseAbsolute(x, y int, b ScreenBounds) error {
	in := mouseINPUT{
		typ: inputMouse,
		mi: mouseInput{
			dx:    int32(x * 65535 / max(b.Width-1, 1)),
			dy:    int32(y * 65535 / max(b.Height-1, 1)),
			flags: mouseeventfMove | mouseeventfAbsolute,
		},
	}
	n, _, err := procSendInput.Call(1, uintptr(unsafe.Pointer(&in)), unsafe.Sizeof(in))
	if n != 1 {
		return fmt.Errorf("SendInput(mouse): %w", err)
	}
	return nil
}

func (d *sendInputDevice) PressKey(ctx context.Context, name string) error {
	k, err := NormalizeKey(name)
	if err != nil {
		return err
	}
	vk := virtualKeys[k]
	inputs := [2]keybdINPUT{
		{typ: inputKeyboard, ki: keybdInput{vk: vk}},
		{typ: inputKeyboard, ki: keybdInput{vk: vk, flags: keyeventfKeyUp}},
	}
	n, _, err := procSendInput.Call(2, uintptr(unsafe.Pointer(&inputs[0])), unsafe.Sizeof(inputs[0]))
	if n != 2 {
		return fmt.Errorf("SendInput(key %s): %w", k, err)
	}
	d.log.Debug("key pressed", zap.Stringer("key", k))
	return nil
}
