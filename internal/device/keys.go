package device

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownKey is returned for key names no backend can press.
var ErrUnknownKey = errors.New("unknown key")

// Key is a platform-neutral key identifier.
type Key int

const (
	KeyShift Key = iota
	KeyControl
	KeyAlt
	KeyF15
)

// DefaultKey is pressed by the key-press method. Shift has no visible effect
// on a focused input field.
const DefaultKey = "shift"

var keyAliases = map[string]Key{
	"shift":   KeyShift,
	"lshift":  KeyShift,
	"ctrl":    KeyControl,
	"control": KeyControl,
	"lctrl":   KeyControl,
	"alt":     KeyAlt,
	"option":  KeyAlt,
	"lalt":    KeyAlt,
	"f15":     KeyF15,
}

func (k Key) String() string {
	switch k {
	case KeyShift:
		return "shift"
	case KeyControl:
		return "ctrl"
	case KeyAlt:
		return "alt"
	case KeyF15:
		return "f15"
	default:
		return "unknown"
	}
}

// NormalizeKey maps a user supplied key name to a Key. Matching ignores case,
// surrounding space and a "left"/"_l" qualifier.
func NormalizeKey(name string) (Key, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.TrimSuffix(n, "_l")
	n = strings.TrimPrefix(n, "left")
	n = strings.Trim(n, "-_ ")
	if k, ok := keyAliases[n]; ok {
		return k, nil
	}
	return 0, fmt.Errorf("%w: %q (supported: shift, ctrl, alt, f15)", ErrUnknownKey, name)
}
