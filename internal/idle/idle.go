// Package idle reads the OS-reported time since the last user input. It is a
// read-only diagnostic; nothing in the activity loop depends on its result.
package idle

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// ErrNotSupported is returned on platforms without an idle counter.
var ErrNotSupported = errors.New("idle time probe not supported on this platform")

// Probe reads the current idle duration.
type Probe interface {
	IdleTime(ctx context.Context) (time.Duration, error)
}

// ProbeFunc adapts a function to Probe.
type ProbeFunc func(ctx context.Context) (time.Duration, error)

func (f ProbeFunc) IdleTime(ctx context.Context) (time.Duration, error) {
	return f(ctx)
}

// New returns the probe for the running platform. On unsupported platforms
// the probe always returns ErrNotSupported.
func New() Probe {
	return ProbeFunc(osIdleTime)
}

// Supported reports whether the running platform exposes an idle counter.
func Supported() bool {
	return supported
}

var hidIdleTimeRe = regexp.MustCompile(`"HIDIdleTime"\s*=\s*(\d+)`)

// parseHIDIdleTime extracts HIDIdleTime (nanoseconds) from `ioreg -c IOHIDSystem` output.
func parseHIDIdleTime(out []byte) (time.Duration, error) {
	m := hidIdleTimeRe.FindSubmatch(out)
	if len(m) < 2 {
		return 0, fmt.Errorf("HIDIdleTime not found in ioreg output")
	}
	nanos, err := strconv.ParseInt(string(m[1]), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse HIDIdleTime: %w", err)
	}
	return time.Duration(nanos), nil
}
