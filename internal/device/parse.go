package device

import (
	"fmt"
	"strconv"
	"strings"
)

// parseShellLocation parses `xdotool getmouselocation --shell` output.
func parseShellLocation(out string) (Position, error) {
	var pos Position
	var gotX, gotY bool
	for _, line := range strings.Split(out, "\n") {
		key, val, ok := strings.Cut(strings.TrimSpace(line), "=")
		if !ok {
			continue
		}
		n, err := strconv.Atoi(val)
		if err != nil {
			continue
		}
		switch key {
		case "X":
			pos.X, gotX = n, true
		case "Y":
			pos.Y, gotY = n, true
		}
	}
	if !gotX || !gotY {
		return Position{}, fmt.Errorf("unexpected pointer location output %q", out)
	}
	return pos, nil
}

// parsePair parses two integers separated by whitespace or a comma, as printed
// by `xdotool getdisplaygeometry` and the JXA scripts.
func parsePair(out string) (int, int, error) {
	fields := strings.FieldsFunc(strings.TrimSpace(out), func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t' || r == '\n'
	})
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("expected two numbers, got %q", out)
	}
	a, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parse %q: %w", fields[0], err)
	}
	b, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parse %q: %w", fields[1], err)
	}
	return int(a), int(b), nil
}
