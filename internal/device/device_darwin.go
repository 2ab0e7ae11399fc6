//go:build darwin

package device

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"
)

// scriptExecutionTimeout bounds each osascript run. Accessibility prompts or a
// wedged scripting host would otherwise stall the tick.
const scriptExecutionTimeout = 3 * time.Second

// CGKeyCode values for the supported keys.
var macKeyCodes = map[Key]int{
	KeyShift:   0x38,
	KeyControl: 0x3B,
	KeyAlt:     0x3A,
	KeyF15:     0x71,
}

const jxaPrelude = `
ObjC.import('CoreGraphics');

function loc() {
	var ev = $.CGEventCreate(null);
	var p = $.CGEventGetLocation(ev);
	return {x: p.x, y: p.y};
}

function moveMouse(x, y) {
	var ev = $.CGEventCreateMouseEvent(null, $.kCGEventMouseMoved, {x: x, y: y}, $.kCGMouseButtonLeft);
	$.CGEventPost($.kCGHIDEventTap, ev);
}
`

// jxaDevice posts CoreGraphics events through osascript. The process running
// it needs the Accessibility permission.
type jxaDevice struct {
	log *zap.Logger
}

func newPlatformDevice(opts Options) (Device, error) {
	if _, err := exec.LookPath("osascript"); err != nil {
		return nil, fmt.Errorf("osascript not available: %w", err)
	}
	return &jxaDevice{log: opts.Logger}, nil
}

func runJXAScript(ctx context.Context, script string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, scriptExecutionTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "osascript", "-l", "JavaScript", "-e", script)
	out, err := cmd.CombinedOutput()
	trimmed := strings.TrimSpace(string(out))

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return trimmed, fmt.Errorf("osascript timed out after %s", scriptExecutionTimeout)
	}
	if err != nil {
		return trimmed, fmt.Errorf("osascript: %w (output: %q)", err, trimmed)
	}
	return trimmed, nil
}

func (d *jxaDevice) Position(ctx context.Context) (Position, error) {
	out, err := runJXAScript(ctx, jxaPrelude+`
var p = loc();
console.log(Math.round(p.x) + "," + Math.round(p.y));
`)
	if err != nil {
		return Position{}, err
	}
	x, y, err := parsePair(out)
	if err != nil {
		return Position{}, fmt.Errorf("pointer location: %w", err)
	}
	return Position{X: x, Y: y}, nil
}

func (d *jxaDevice) ScreenBounds(ctx context.Context) (ScreenBounds, error) {
	out, err := runJXAScript(ctx, `
ObjC.import('CoreGraphics');
var id = $.CGMainDisplayID();
console.log($.CGDisplayPixelsWide(id) + "," + $.CGDisplayPixelsHigh(id));
`)
	if err != nil {
		return ScreenBounds{}, err
	}
	w, h, err := parsePair(out)
	if err != nil {
		return ScreenBounds{}, fmt.Errorf("display size: %w", err)
	}
	return ScreenBounds{Width: w, Height: h}, nil
}

// MoveTo glides inside a single script so one osascript launch covers the
// whole path.
func (d *jxaDevice) MoveTo(ctx context.Context, x, y int, glideFor time.Duration) error {
	var b strings.Builder
	b.WriteString(jxaPrelude)
	steps := int(glideFor / glideStep)
	if steps < 1 {
		fmt.Fprintf(&b, "moveMouse(%d, %d);\n", x, y)
	} else {
		fmt.Fprintf(&b, "var o = loc();\nfor (var i = 1; i <= %d; i++) {\n", steps)
		fmt.Fprintf(&b, "\tmoveMouse(o.x + (%d - o.x) * i / %d, o.y + (%d - o.y) * i / %d);\n", x, steps, y, steps)
		fmt.Fprintf(&b, "\tdelay(%f);\n}\n", glideStep.Seconds())
	}
	b.WriteString(`console.log("ok");`)

	_, err := runJXAScript(ctx, b.String())
	return err
}

func (d *jxaDevice) PressKey(ctx context.Context, name string) error {
	k, err := NormalizeKey(name)
	if err != nil {
		return err
	}
	script := fmt.Sprintf(`
ObjC.import('CoreGraphics');
var down = $.CGEventCreateKeyboardEvent(null, %d, true);
var up = $.CGEventCreateKeyboardEvent(null, %d, false);
$.CGEventPost($.kCGHIDEventTap, down);
delay(0.01);
$.CGEventPost($.kCGHIDEventTap, up);
console.log("ok");
`, macKeyCodes[k], macKeyCodes[k])
	if _, err := runJXAScript(ctx, script); err != nil {
		return fmt.Errorf("key %s: %w", k, err)
	}
	d.log.Debug("key pressed", zap.Stringer("key", k))
	return nil
}
