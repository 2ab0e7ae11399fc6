package ui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/stigoleg/mouse-keepalive/internal/keepalive"
)

// RunFunc runs the loop, reporting to obs.
type RunFunc func(ctx context.Context, obs keepalive.Observer) (keepalive.Result, error)

type outcome struct {
	res keepalive.Result
	err error
}

// RunDashboard runs the loop on its own goroutine behind a bubbletea
// dashboard. Stopping or quitting the dashboard cancels the loop; the loop
// finishing quits the dashboard. It returns what run returned.
func RunDashboard(ctx context.Context, cfg keepalive.Config, until string, run RunFunc, opts ...tea.ProgramOption) (keepalive.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := NewModel(cfg, cancel)
	m.Until = until
	p := tea.NewProgram(m, opts...)

	done := make(chan outcome, 1)
	go func() {
		res, err := run(ctx, NewProgramObserver(p))
		done <- outcome{res: res, err: err}
		p.Quit()
	}()

	_, progErr := p.Run()
	cancel()
	out := <-done

	if progErr != nil {
		return out.res, fmt.Errorf("dashboard: %w", progErr)
	}
	return out.res, out.err
}
