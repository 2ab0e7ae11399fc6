package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/stigoleg/mouse-keepalive/internal/keepalive"
)

// StartMsg is sent when the loop starts.
type StartMsg struct {
	Config keepalive.Config
}

// TickMsg carries one completed tick.
type TickMsg keepalive.TickEvent

// FinishMsg carries the final result of the run.
type FinishMsg keepalive.Result

// refreshMsg is sent once a second to redraw the clock.
type refreshMsg time.Time

// Update handles messages and updates the model accordingly.
func Update(msg tea.Msg, m Model) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case StartMsg:
		m.Config = msg.Config
		m.StartTime = m.clock()
		m.Now = m.StartTime
		if m.Phase == PhaseStarting {
			m.Phase = PhaseRunning
		}
		return m, nil

	case TickMsg:
		ev := keepalive.TickEvent(msg)
		m.Last = &ev
		if !ev.Success {
			m.Failures++
		}
		return m, nil

	case FinishMsg:
		res := keepalive.Result(msg)
		m.Result = &res
		m.Phase = PhaseDone
		return m, tea.Quit

	case refreshMsg:
		m.Now = time.Time(msg)
		if m.Phase == PhaseDone {
			return m, nil
		}
		return m, refresh()

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.ToggleHelp):
			m.ShowHelp = !m.ShowHelp
			m.help.ShowAll = m.ShowHelp
			return m, nil
		case key.Matches(msg, m.keys.Quit):
			m.requestStop()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Stop):
			// The program quits once the loop reports its finish.
			m.requestStop()
			return m, nil
		}
	}

	return m, nil
}

func (m *Model) requestStop() {
	if m.Phase == PhaseDone || m.Phase == PhaseStopping {
		return
	}
	m.Phase = PhaseStopping
	m.stop()
}

func refresh() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return refreshMsg(t)
	})
}
