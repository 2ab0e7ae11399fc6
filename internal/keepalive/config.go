package keepalive

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/stigoleg/mouse-keepalive/internal/device"
)

var (
	ErrInvalidInterval = errors.New("interval must be greater than 0")
	ErrInvalidDuration = errors.New("duration must be greater than 0")
	ErrInvalidMethod   = errors.New("unknown activity method")
	ErrInvalidOffset   = errors.New("offset must be greater than 0")
)

// Method selects the activity action performed each tick.
type Method string

const (
	MethodPointerJitter Method = "pointer-jitter"
	MethodKeyPress      Method = "key-press"
)

// DefaultGlide is how long each half of a pointer round trip takes.
const DefaultGlide = 100 * time.Millisecond

// Unbounded is the Duration of a run that only ends on cancellation.
const Unbounded time.Duration = 0

// ParseMethod accepts the canonical method names and a few short aliases.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "pointer-jitter", "pointer", "mouse", "jitter":
		return MethodPointerJitter, nil
	case "key-press", "key", "keyboard":
		return MethodKeyPress, nil
	default:
		return "", fmt.Errorf("%w %q (use pointer-jitter or key-press)", ErrInvalidMethod, s)
	}
}

// Config controls a single Run.
type Config struct {
	// Interval is the pause between ticks.
	Interval time.Duration

	// Duration is the time budget; Unbounded runs until cancelled.
	Duration time.Duration

	Verbose bool
	Method  Method

	// Offset is the jitter magnitude in pixels. Zero means DefaultOffset.
	Offset int

	// Glide is the duration of each pointer move. Zero warps instantly.
	Glide time.Duration

	// Key is pressed by MethodKeyPress. Empty means device.DefaultKey.
	Key string
}

// DefaultConfig returns a one-minute, unbounded, pointer-jitter config.
func DefaultConfig() Config {
	return Config{
		Interval: 60 * time.Second,
		Duration: Unbounded,
		Method:   MethodPointerJitter,
		Offset:   DefaultOffset,
		Glide:    DefaultGlide,
		Key:      device.DefaultKey,
	}
}

// Validate rejects configurations that must not start a run.
func (c Config) Validate() error {
	if c.Interval <= 0 {
		return fmt.Errorf("%w, got %s", ErrInvalidInterval, c.Interval)
	}
	if c.Duration < 0 {
		return fmt.Errorf("%w, got %s", ErrInvalidDuration, c.Duration)
	}
	if c.Offset < 0 {
		return fmt.Errorf("%w, got %d", ErrInvalidOffset, c.Offset)
	}
	switch c.Method {
	case "", MethodPointerJitter:
	case MethodKeyPress:
		if c.Key != "" {
			if _, err := device.NormalizeKey(c.Key); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("%w %q", ErrInvalidMethod, c.Method)
	}
	if c.Glide < 0 {
		return fmt.Errorf("glide must not be negative, got %s", c.Glide)
	}
	return nil
}

// Bounded reports whether the run has a duration budget.
func (c Config) Bounded() bool {
	return c.Duration > 0
}

func (c Config) withDefaults() Config {
	if c.Method == "" {
		c.Method = MethodPointerJitter
	}
	if c.Offset == 0 {
		c.Offset = DefaultOffset
	}
	if c.Key == "" {
		c.Key = device.DefaultKey
	}
	return c
}
