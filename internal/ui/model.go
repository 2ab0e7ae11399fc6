package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/stigoleg/mouse-keepalive/internal/keepalive"
)

// Model is the bubbletea model of the --tui dashboard. It only mirrors loop
// events; the loop itself runs on its own goroutine.
type Model struct {
	Phase     Phase
	Config    keepalive.Config
	Until     string
	StartTime time.Time
	Now       time.Time
	Last      *keepalive.TickEvent
	Failures  int
	Result    *keepalive.Result
	ShowHelp  bool

	keys  KeyMap
	help  help.Model
	stop  func()
	clock func() time.Time
}

// NewModel returns a dashboard for cfg. stop cancels the running loop.
func NewModel(cfg keepalive.Config, stop func()) Model {
	if stop == nil {
		stop = func() {}
	}
	now := time.Now()
	return Model{
		Phase:     PhaseStarting,
		Config:    cfg,
		StartTime: now,
		Now:       now,
		keys:      DefaultKeys(),
		help:      NewHelpModel(),
		stop:      stop,
		clock:     time.Now,
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return refresh()
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := Update(msg, m)
	return newModel, cmd
}

// View implements tea.Model
func (m Model) View() string {
	return View(m)
}

// Elapsed is the wall time since the loop started, frozen once it finished.
func (m Model) Elapsed() time.Duration {
	if m.Result != nil {
		return m.Result.Elapsed
	}
	if m.Now.Before(m.StartTime) {
		return 0
	}
	return m.Now.Sub(m.StartTime)
}

// TimeRemaining returns the remaining budget of a bounded run.
func (m Model) TimeRemaining() time.Duration {
	if !m.Config.Bounded() {
		return 0
	}
	remaining := m.Config.Duration - m.Elapsed()
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Progress is the spent fraction of a bounded run in [0, 1].
func (m Model) Progress() float64 {
	if !m.Config.Bounded() {
		return 0
	}
	p := float64(m.Elapsed()) / float64(m.Config.Duration)
	if p > 1 {
		return 1
	}
	return p
}
