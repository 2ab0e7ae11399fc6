package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// FormatError renders a fatal error for the terminal. Errors carrying a
// "Valid formats" hint are boxed with the hint underneath.
func FormatError(err error) string {
	msg := err.Error()
	if strings.Contains(msg, "Valid formats:") {
		parts := strings.SplitN(msg, "\n\n", 2)
		if len(parts) == 2 {
			errorBox := lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(defaultColors.Error).
				Padding(0, 1)

			header := lipgloss.NewStyle().
				Bold(true).
				Foreground(defaultColors.Error).
				Render(parts[0])

			details := Current.Help.Render(parts[1])

			return errorBox.Render(fmt.Sprintf("%s\n\n%s", header, details))
		}
	}
	return Current.Error.Render("Error: " + msg)
}
