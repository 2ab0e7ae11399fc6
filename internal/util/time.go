package util

import (
	"fmt"
	"strings"
	"time"
)

// clockLayouts are tried in order; 24-hour first.
var clockLayouts = []string{"15:04", "3:04PM", "3:04 PM", "03:04PM", "03:04 PM"}

// ParseClock returns the wall-clock time s ("23:30", "11:30PM", "9:45 AM")
// on the calendar day of day, in day's location.
func ParseClock(s string, day time.Time) (time.Time, error) {
	s = strings.TrimSpace(strings.ToUpper(s))
	for _, layout := range clockLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location()), nil
	}
	return time.Time{}, fmt.Errorf("invalid time format: %q\n\nValid formats:\n"+
		"• 24-hour: HH:MM (e.g. '23:30', '09:45')\n"+
		"• 12-hour: HH:MM[AM|PM] (e.g. '11:30PM', '9:45 AM')", s)
}

// DurationUntil returns the time from now until the next occurrence of the
// clock time in s. A time that has already passed today means tomorrow.
func DurationUntil(s string, now time.Time) (time.Duration, error) {
	target, err := ParseClock(s, now)
	if err != nil {
		return 0, err
	}
	if !target.After(now) {
		target = target.AddDate(0, 0, 1)
	}
	return target.Sub(now), nil
}
