//go:build linux

package device

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sync"
	"time"
	"unsafe"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

// uinput constants.
const (
	uinputDevicePath = "/dev/uinput"
	uinputDeviceName = "mouse-keepalive"
	uinputBusTypeUSB = 0x03
	uinputVendorID   = 0x1234
	uinputProductID  = 0x5678

	// Linux input event types
	evSyn = 0x00
	evKey = 0x01
	evRel = 0x02
	relX  = 0x00
	relY  = 0x01

	// libinput only treats the device as a mouse if it has a button.
	btnLeft = 0x110

	// uinput ioctl commands
	uiSetEvbit   = 0x40045564 // _IOW('U', 100, int)
	uiSetKeybit  = 0x40045565 // _IOW('U', 101, int)
	uiSetRelbit  = 0x40045566 // _IOW('U', 102, int)
	uiDevCreate  = 0x5501     // _IO('U', 1)
	uiDevDestroy = 0x5502     // _IO('U', 2)
)

// Linux key codes for the supported keys.
var uinputKeys = map[Key]uint16{
	KeyShift:   42,  // KEY_LEFTSHIFT
	KeyControl: 29,  // KEY_LEFTCTRL
	KeyAlt:     56,  // KEY_LEFTALT
	KeyF15:     185, // KEY_F15
}

// virtualBounds is the coordinate space of the uinput pointer. The kernel
// accepts only relative motion, so the position is tracked locally.
var virtualBounds = ScreenBounds{Width: 1920, Height: 1080}

type uinputUserDev struct {
	name [80]byte
	id   struct {
		bustype uint16
		vendor  uint16
		product uint16
		version uint16
	}
	ffEffectsMax uint32
	absmax       [64]int32
	absmin       [64]int32
	absfuzz      [64]int32
	absflat      [64]int32
}

type inputEvent struct {
	time  unix.Timeval
	etype uint16
	code  uint16
	value int32
}

// uinputDevice is a virtual relative pointer and keyboard created through
// /dev/uinput. Every move is emitted as a delta from the tracked position.
type uinputDevice struct {
	mu  sync.Mutex
	w   io.WriteCloser
	fd  int
	pos Position
	log *zap.Logger
}

func openUinput(log *zap.Logger) (*uinputDevice, error) {
	f, err := os.OpenFile(uinputDevicePath, os.O_WRONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w%s", uinputDevicePath, err, uinputHint(err))
	}

	d := newUinputDevice(f, int(f.Fd()), log)
	if err := d.create(); err != nil {
		f.Close()
		return nil, fmt.Errorf("create uinput device: %w", err)
	}
	return d, nil
}

func newUinputDevice(w io.WriteCloser, fd int, log *zap.Logger) *uinputDevice {
	if log == nil {
		log = zap.NewNop()
	}
	return &uinputDevice{
		w:   w,
		fd:  fd,
		pos: Position{X: virtualBounds.Width / 2, Y: virtualBounds.Height / 2},
		log: log,
	}
}

func uinputHint(err error) string {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return " (load the module: sudo modprobe uinput)"
	case errors.Is(err, fs.ErrPermission):
		return " (add your user to the input group: sudo usermod -aG input $USER, then log in again)"
	default:
		return ""
	}
}

func (d *uinputDevice) create() error {
	bits := []struct {
		req uint
		val int
	}{
		{uiSetEvbit, evKey},
		{uiSetEvbit, evRel},
		{uiSetRelbit, relX},
		{uiSetRelbit, relY},
		{uiSetKeybit, btnLeft},
	}
	for _, code := range uinputKeys {
		bits = append(bits, struct {
			req uint
			val int
		}{uiSetKeybit, int(code)})
	}
	for _, b := range bits {
		if err := unix.IoctlSetInt(d.fd, b.req, b.val); err != nil {
			return fmt.Errorf("ioctl %#x %d: %w", b.req, b.val, err)
		}
	}

	var dev uinputUserDev
	copy(dev.name[:], uinputDeviceName)
	dev.id.bustype = uinputBusTypeUSB
	dev.id.vendor = uinputVendorID
	dev.id.product = uinputProductID
	if _, err := d.w.Write((*[unsafe.Sizeof(dev)]byte)(unsafe.Pointer(&dev))[:]); err != nil {
		return fmt.Errorf("write device description: %w", err)
	}
	return unix.IoctlSetInt(d.fd, uiDevCreate, 0)
}

// emit writes events in order. Callers hold d.mu.
func (d *uinputDevice) emit(events ...inputEvent) error {
	if d.w == nil {
		return ErrClosed
	}
	for _, ev := range events {
		if _, err := d.w.Write((*[unsafe.Sizeof(ev)]byte)(unsafe.Pointer(&ev))[:]); err != nil {
			return fmt.Errorf("uinput write: %w", err)
		}
	}
	return nil
}

func (d *uinputDevice) Position(ctx context.Context) (Position, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pos, nil
}

func (d *uinputDevice) ScreenBounds(ctx context.Context) (ScreenBounds, error) {
	return virtualBounds, nil
}

func (d *uinputDevice) MoveTo(ctx context.Context, x, y int, glideFor time.Duration) error {
	from, _ := d.Position(ctx)
	return glide(ctx, from, Position{X: x, Y: y}, glideFor, d.warp)
}

func (d *uinputDevice) warp(ctx context.Context, x, y int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	dx, dy := x-d.pos.X, y-d.pos.Y
	if dx == 0 && dy == 0 {
		return nil
	}
	err := d.emit(
		inputEvent{etype: evRel, code: relX, value: int32(dx)},
		inputEvent{etype: evRel, code: relY, value: int32(dy)},
		inputEvent{etype: evSyn},
	)
	if err != nil {
		return err
	}
	d.pos = Position{X: x, Y: y}
	return nil
}

func (d *uinputDevice) PressKey(ctx context.Context, name string) error {
	k, err := NormalizeKey(name)
	if err != nil {
		return err
	}
	code := uinputKeys[k]

	d.mu.Lock()
	defer d.mu.Unlock()
	err = d.emit(
		inputEvent{etype: evKey, code: code, value: 1},
		inputEvent{etype: evSyn},
		inputEvent{etype: evKey, code: code, value: 0},
		inputEvent{etype: evSyn},
	)
	if err == nil {
		d.log.Debug("key pressed", zap.Uint16("code", code))
	}
	return err
}

// Close destroys the virtual device.
func (d *uinputDevice) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.w == nil {
		return nil
	}
	// Ignored: the kernel removes the device when the file closes anyway.
	_ = unix.IoctlSetInt(d.fd, uiDevDestroy, 0)
	err := d.w.Close()
	d.w = nil
	return err
}
