//go:build linux

package device

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/stigoleg/mouse-keepalive/internal/util"
	"go.uber.org/zap"
)

// xdotool keysyms for the supported keys.
var xdoKeys = map[Key]string{
	KeyShift:   "Shift_L",
	KeyControl: "Control_L",
	KeyAlt:     "Alt_L",
	KeyF15:     "F15",
}

// xdoDevice drives the X11 pointer and keyboard through the xdotool CLI.
// xdotool does not work on Wayland sessions.
type xdoDevice struct {
	display string
	log     *zap.Logger
}

// newPlatformDevice prefers xdotool and falls back to a uinput virtual
// pointer, which also works on Wayland.
func newPlatformDevice(opts Options) (Device, error) {
	xdoErr := checkXdotool(opts.Display)
	if xdoErr == nil {
		return &xdoDevice{display: opts.Display, log: opts.Logger}, nil
	}

	dev, err := openUinput(opts.Logger)
	if err != nil {
		return nil, errors.Join(xdoErr, err)
	}
	opts.Logger.Info("Using uinput virtual pointer", zap.NamedError("xdotool", xdoErr))
	return dev, nil
}

func checkXdotool(display string) error {
	if err := util.RequireCommand("xdotool", "e.g. apt install xdotool"); err != nil {
		return err
	}
	if os.Getenv("WAYLAND_DISPLAY") != "" && display == "" && os.Getenv("DISPLAY") == "" {
		return errors.New("xdotool requires an X11 session; WAYLAND_DISPLAY is set without DISPLAY")
	}
	return nil
}

// run executes xdotool and returns its trimmed combined output.
func (d *xdoDevice) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "xdotool", args...)
	if d.display != "" {
		cmd.Env = append(os.Environ(), "DISPLAY="+d.display)
	}
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	err := cmd.Run()
	out := strings.TrimSpace(buf.String())
	if err != nil {
		return out, fmt.Errorf("xdotool %s: %w (output: %q)", strings.Join(args, " "), err, out)
	}
	return out, nil
}

func (d *xdoDevice) Position(ctx context.Context) (Position, error) {
	out, err := d.run(ctx, "getmouselocation", "--shell")
	if err != nil {
		return Position{}, err
	}
	return parseShellLocation(out)
}

func (d *xdoDevice) ScreenBounds(ctx context.Context) (ScreenBounds, error) {
	out, err := d.run(ctx, "getdisplaygeometry")
	if err != nil {
		return ScreenBounds{}, err
	}
	w, h, err := parsePair(out)
	if err != nil {
		return ScreenBounds{}, fmt.Errorf("display geometry: %w", err)
	}
	return ScreenBounds{Width: w, Height: h}, nil
}

func (d *xdoDevice) MoveTo(ctx context.Context, x, y int, glideFor time.Duration) error {
	if glideFor <= 0 {
		return d.warp(ctx, x, y)
	}
	from, err := d.Position(ctx)
	if err != nil {
		return err
	}
	return glide(ctx, from, Position{X: x, Y: y}, glideFor, d.warp)
}

func (d *xdoDevice) warp(ctx context.Context, x, y int) error {
	_, err := d.run(ctx, "mousemove", "--sync", strconv.Itoa(x), strconv.Itoa(y))
	return err
}

func (d *xdoDevice) PressKey(ctx context.Context, name string) error {
	k, err := NormalizeKey(name)
	if err != nil {
		return err
	}
	_, err = d.run(ctx, "key", xdoKeys[k])
	if err == nil {
		d.log.Debug("key pressed", zap.String("key", xdoKeys[k]))
	}
	return err
}
