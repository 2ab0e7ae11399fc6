package util

import (
	"strings"
	"testing"
	"time"
)

func TestParseClock(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	day := time.Date(2024, 3, 15, 18, 5, 0, 0, loc)

	tests := []struct {
		name      string
		input     string
		wantHour  int
		wantMin   int
		wantError bool
	}{
		{name: "24h evening", input: "22:30", wantHour: 22, wantMin: 30},
		{name: "24h morning", input: "09:45", wantHour: 9, wantMin: 45},
		{name: "24h midnight", input: "00:00", wantHour: 0, wantMin: 0},
		{name: "24h noon", input: "12:00", wantHour: 12, wantMin: 0},
		{name: "12h PM", input: "10:30PM", wantHour: 22, wantMin: 30},
		{name: "12h AM single digit", input: "9:45AM", wantHour: 9, wantMin: 45},
		{name: "12h with space", input: "10:30 PM", wantHour: 22, wantMin: 30},
		{name: "12h lowercase", input: "09:45am", wantHour: 9, wantMin: 45},
		{name: "12h noon", input: "12:00PM", wantHour: 12, wantMin: 0},
		{name: "12h midnight", input: "12:00AM", wantHour: 0, wantMin: 0},
		{name: "surrounding space", input: "  07:15 ", wantHour: 7, wantMin: 15},

		{name: "no minutes", input: "22:", wantError: true},
		{name: "no separator", input: "2230", wantError: true},
		{name: "wrong separator", input: "22.30", wantError: true},
		{name: "trailing text", input: "22:30xyz", wantError: true},
		{name: "hour out of range", input: "25:00", wantError: true},
		{name: "minute out of range", input: "22:60", wantError: true},
		{name: "empty", input: "", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseClock(tt.input, day)

			if tt.wantError {
				if err == nil {
					t.Fatalf("ParseClock(%q) expected error but got none", tt.input)
				}
				if !strings.Contains(err.Error(), "Valid formats") {
					t.Errorf("ParseClock(%q) error should contain format help, got: %v", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseClock(%q) unexpected error: %v", tt.input, err)
			}

			want := time.Date(2024, 3, 15, tt.wantHour, tt.wantMin, 0, 0, loc)
			if !got.Equal(want) || got.Location() != loc {
				t.Errorf("ParseClock(%q) = %v, want %v", tt.input, got, want)
			}
		})
	}
}

func TestDurationUntil(t *testing.T) {
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		input     string
		want      time.Duration
		wantError bool
	}{
		{name: "later today", input: "12:00", want: 2 * time.Hour},
		{name: "later today 12h", input: "10:30PM", want: 12*time.Hour + 30*time.Minute},
		{name: "already passed rolls to tomorrow", input: "09:00", want: 23 * time.Hour},
		{name: "exactly now rolls to tomorrow", input: "10:00", want: 24 * time.Hour},
		{name: "invalid", input: "25:00", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DurationUntil(tt.input, now)
			if tt.wantError {
				if err == nil {
					t.Errorf("DurationUntil(%q) expected error but got none", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("DurationUntil(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("DurationUntil(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
