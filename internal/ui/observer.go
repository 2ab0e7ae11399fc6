package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/stigoleg/mouse-keepalive/internal/keepalive"
)

// Sender is the part of *tea.Program the observer needs.
type Sender interface {
	Send(msg tea.Msg)
}

// ProgramObserver forwards loop events to a running bubbletea program.
type ProgramObserver struct {
	p Sender
}

// NewProgramObserver returns an observer that sends to p.
func NewProgramObserver(p Sender) *ProgramObserver {
	return &ProgramObserver{p: p}
}

func (o *ProgramObserver) OnStart(cfg keepalive.Config) {
	o.p.Send(StartMsg{Config: cfg})
}

func (o *ProgramObserver) OnTick(ev keepalive.TickEvent) {
	o.p.Send(TickMsg(ev))
}

func (o *ProgramObserver) OnFinish(res keepalive.Result) {
	o.p.Send(FinishMsg(res))
}
