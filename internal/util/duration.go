package util

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// maxSeconds is the largest magnitude in seconds a time.Duration can hold.
const maxSeconds = float64(math.MaxInt64) / float64(time.Second)

// ParseDuration accepts a plain number of seconds ("60", "0.5") or a Go
// duration string ("1m30s", "2h").
func ParseDuration(input string) (time.Duration, error) {
	s := strings.TrimSpace(input)
	if secs, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(secs) {
		if math.Abs(secs) >= maxSeconds {
			return 0, formatError(input, "duration out of range")
		}
		return time.Duration(secs * float64(time.Second)), nil
	}

	duration, err := time.ParseDuration(s)
	if err != nil {
		return 0, formatError(input, "invalid duration format")
	}
	return duration, nil
}

func formatError(input, reason string) error {
	return fmt.Errorf("%s: %q\n\nValid formats:\n"+
		"• seconds: 60, 0.5\n"+
		"• duration: 90s, 5m, 1h30m", reason, input)
}
