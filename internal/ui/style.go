// Package ui renders keepalive progress, either as plain status lines or as
// an interactive bubbletea dashboard.
package ui

import "github.com/charmbracelet/lipgloss"

// Colors defines the color scheme used throughout the application
type Colors struct {
	Subtle    lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
	Special   lipgloss.AdaptiveColor
	Warning   lipgloss.AdaptiveColor
	Error     lipgloss.AdaptiveColor
}

var defaultColors = Colors{
	Subtle:    lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"},
	Highlight: lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"},
	Special:   lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"},
	Warning:   lipgloss.AdaptiveColor{Light: "#C7A000", Dark: "#F5D300"},
	Error:     lipgloss.AdaptiveColor{Light: "#FF0000", Dark: "#FF4040"},
}

// Style represents a collection of styles used in the application
type Style struct {
	Title                lipgloss.Style
	Label                lipgloss.Style
	Value                lipgloss.Style
	Success              lipgloss.Style
	Warning              lipgloss.Style
	Error                lipgloss.Style
	Help                 lipgloss.Style
	Countdown            lipgloss.Style
	Rule                 lipgloss.Style
	ProgressBar          lipgloss.Style
	ProgressBarContainer lipgloss.Style
}

// DefaultStyle returns the default style configuration
func DefaultStyle() Style {
	base := lipgloss.NewStyle()

	return Style{
		Title: base.
			Bold(true).
			Foreground(defaultColors.Highlight),

		Label: base.
			Foreground(defaultColors.Subtle).
			Width(12),

		Value: base.
			Bold(true),

		Success: base.
			Foreground(defaultColors.Special),

		Warning: base.
			Foreground(defaultColors.Warning),

		Error: base.
			Foreground(defaultColors.Error),

		Help: base.
			Foreground(defaultColors.Subtle),

		Countdown: base.
			Foreground(defaultColors.Highlight).
			Bold(true),

		Rule: base.
			Foreground(defaultColors.Subtle),

		ProgressBar: base.
			Background(lipgloss.AdaptiveColor{Light: "#DDDDDD", Dark: "#333333"}),

		ProgressBarContainer: base.
			Border(lipgloss.RoundedBorder()).
			BorderForeground(defaultColors.Subtle),
	}
}

// Current holds the current style configuration
var Current = DefaultStyle()
