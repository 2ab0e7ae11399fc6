package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const progressWidth = 30

// gradientColors runs from purple to green across the progress bar.
var gradientColors = []string{
	"#7D56F4", "#6E5AF5", "#5F5FF7", "#5063F8", "#4168FA",
	"#326CFB", "#2371FD", "#1475FE", "#057AFF", "#007FF5",
	"#0085E6", "#008BD7", "#0091C8", "#0097B9", "#009DAA",
	"#00A39B", "#00A98C", "#00AF7D", "#00B56E", "#00BB5F",
	"#43BF6D",
}

// View renders the current state of the model to a string.
func View(m Model) string {
	var b strings.Builder

	b.WriteString(Current.Title.Render("Mouse Keepalive"))
	b.WriteString("  ")
	b.WriteString(phaseBadge(m.Phase))
	b.WriteString("\n\n")

	row(&b, "Method", string(m.Config.Method))
	row(&b, "Interval", m.Config.Interval.String())
	row(&b, "Ticks", ticksValue(m))
	if m.Last != nil {
		row(&b, "Position", fmt.Sprintf("(%d, %d)", m.Last.Position.X, m.Last.Position.Y))
	}
	row(&b, "Elapsed", formatClock(m.Elapsed()))

	if m.Config.Bounded() {
		remaining := Current.Countdown.Render(formatClock(m.TimeRemaining()) + " remaining")
		if m.Until != "" {
			remaining += Current.Help.Render(" (until " + m.Until + ")")
		}
		row(&b, "Remaining", remaining)
		b.WriteString("\n")
		b.WriteString(Current.ProgressBarContainer.Render(progressBar(m.Progress(), progressWidth)))
		b.WriteString("\n")
	}

	if m.Last != nil && m.Last.Err != nil {
		b.WriteString("\n" + Current.Warning.Render("Last tick failed: "+m.Last.Err.Error()))
		b.WriteString("\n")
	}

	if m.Result != nil {
		b.WriteString("\n" + Current.Success.Render(fmt.Sprintf("Finished (%s): %d ticks, %d successful",
			m.Result.State, m.Result.Ticks, m.Result.Successes)))
		b.WriteString("\n")
	}

	b.WriteString("\n" + m.help.View(m.keys.ForPhase(m.Phase)))
	return b.String()
}

func row(b *strings.Builder, label, value string) {
	b.WriteString(Current.Label.Render(label))
	b.WriteString(Current.Value.Render(value))
	b.WriteString("\n")
}

func ticksValue(m Model) string {
	if m.Last == nil {
		return "0"
	}
	v := fmt.Sprintf("%d (%d successful", m.Last.Tick, m.Last.Successes)
	if m.Failures > 0 {
		v += fmt.Sprintf(", %d failed", m.Failures)
	}
	return v + ")"
}

func phaseBadge(p Phase) string {
	switch p {
	case PhaseRunning:
		return Current.Success.Render("● running")
	case PhaseStopping:
		return Current.Warning.Render("● stopping")
	case PhaseDone:
		return Current.Help.Render("● done")
	default:
		return Current.Help.Render("● starting")
	}
}

func formatClock(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

func progressBar(progress float64, width int) string {
	filled := int(progress * float64(width))
	if filled > width {
		filled = width
	}

	var bar strings.Builder
	for i := 0; i < width; i++ {
		if i < filled {
			colorIndex := int(float64(i) / float64(width) * float64(len(gradientColors)-1))
			block := Current.ProgressBar.Background(lipgloss.Color(gradientColors[colorIndex]))
			bar.WriteString(block.Render(" "))
		} else {
			bar.WriteString(Current.ProgressBar.Render(" "))
		}
	}
	return bar.String()
}
