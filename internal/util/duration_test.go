package util

import (
	"strings"
	"testing"
	"time"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  time.Duration
		wantError bool
	}{
		// Plain seconds
		{
			name:     "integer seconds - 60",
			input:    "60",
			expected: 60 * time.Second,
		},
		{
			name:     "integer seconds - 0",
			input:    "0",
			expected: 0,
		},
		{
			name:     "fractional seconds",
			input:    "0.5",
			expected: 500 * time.Millisecond,
		},
		{
			name:     "negative seconds parse",
			input:    "-5",
			expected: -5 * time.Second,
		},
		{
			name:     "surrounding space",
			input:    " 30 ",
			expected: 30 * time.Second,
		},

		// Duration strings
		{
			name:     "duration string - hours only",
			input:    "2h",
			expected: 2 * time.Hour,
		},
		{
			name:     "duration string - minutes only",
			input:    "45m",
			expected: 45 * time.Minute,
		},
		{
			name:     "duration string - hours and minutes",
			input:    "2h30m",
			expected: 2*time.Hour + 30*time.Minute,
		},
		{
			name:     "duration string - seconds only",
			input:    "90s",
			expected: 90 * time.Second,
		},
		{
			name:     "duration string - with seconds",
			input:    "1h30m45s",
			expected: 1*time.Hour + 30*time.Minute + 45*time.Second,
		},

		// Error cases
		{
			name:      "invalid format - letters",
			input:     "abc",
			wantError: true,
		},
		{
			name:      "invalid format - mixed invalid",
			input:     "2x30m",
			wantError: true,
		},
		{
			name:      "empty string",
			input:     "",
			wantError: true,
		},
		{
			name:      "seconds beyond duration range",
			input:     "1e10",
			wantError: true,
		},
		{
			name:      "negative seconds beyond duration range",
			input:     "-1e10",
			wantError: true,
		},
		{
			name:      "infinite seconds",
			input:     "Inf",
			wantError: true,
		},
		{
			name:     "large seconds within range",
			input:    "9e9",
			expected: 9e9 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDuration(tt.input)

			if tt.wantError {
				if err == nil {
					t.Errorf("ParseDuration(%q) expected error but got none", tt.input)
				}
				// Verify error message contains helpful format info
				if err != nil && !strings.Contains(err.Error(), "Valid formats") {
					t.Errorf("ParseDuration(%q) error should contain format help, got: %v", tt.input, err)
				}
				return
			}

			if err != nil {
				t.Errorf("ParseDuration(%q) unexpected error: %v", tt.input, err)
				return
			}

			if got != tt.expected {
				t.Errorf("ParseDuration(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}
