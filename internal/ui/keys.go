package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the dashboard key bindings.
type KeyMap struct {
	Stop       key.Binding
	Quit       key.Binding
	ToggleHelp key.Binding
}

// DefaultKeys returns the default key bindings for the dashboard.
func DefaultKeys() KeyMap {
	return KeyMap{
		Stop: key.NewBinding(
			key.WithKeys("s", "esc"),
			key.WithHelp("s/esc", "stop"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		ToggleHelp: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "toggle help"),
		),
	}
}

// NewHelpModel returns a configured help model.
func NewHelpModel() help.Model {
	h := help.New()
	h.ShortSeparator = " • "
	return h
}

// phaseKeyMap adapts bindings to the current phase for contextual help.
type phaseKeyMap struct {
	keys  KeyMap
	phase Phase
}

// ForPhase returns a contextual key map implementing help.KeyMap.
func (k KeyMap) ForPhase(p Phase) help.KeyMap {
	return phaseKeyMap{keys: k, phase: p}
}

func (p phaseKeyMap) ShortHelp() []key.Binding {
	switch p.phase {
	case PhaseStarting, PhaseRunning:
		return []key.Binding{p.keys.Stop, p.keys.Quit, p.keys.ToggleHelp}
	default:
		return []key.Binding{p.keys.Quit}
	}
}

func (p phaseKeyMap) FullHelp() [][]key.Binding {
	switch p.phase {
	case PhaseStarting, PhaseRunning:
		return [][]key.Binding{{p.keys.Stop, p.keys.Quit}, {p.keys.ToggleHelp}}
	default:
		return [][]key.Binding{{p.keys.Quit}}
	}
}
