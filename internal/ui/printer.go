package ui

import (
	"fmt"
	"io"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/stigoleg/mouse-keepalive/internal/keepalive"
)

// Printer writes plain status lines for runs without the dashboard.
type Printer struct {
	mu    sync.Mutex
	w     io.Writer
	until string
	os    string

	verbose bool
}

// NewPrinter returns a Printer writing to w. until is the raw --until value
// shown in the start banner, if any.
func NewPrinter(w io.Writer, until string) *Printer {
	return &Printer{w: w, until: until, os: runtime.GOOS}
}

func (p *Printer) OnStart(cfg keepalive.Config) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.verbose = cfg.Verbose

	var b strings.Builder
	b.WriteString(Current.Title.Render("Mouse keepalive started"))
	b.WriteString("\n")
	banner(&b, "Interval", cfg.Interval.String())
	switch {
	case p.until != "":
		banner(&b, "Duration", fmt.Sprintf("%s (until %s)", cfg.Duration.Round(time.Second), p.until))
	case cfg.Bounded():
		banner(&b, "Duration", cfg.Duration.String())
	default:
		banner(&b, "Duration", "until interrupted (press Ctrl+C to stop)")
	}
	banner(&b, "OS", p.os)
	method := string(cfg.Method)
	if cfg.Method == keepalive.MethodKeyPress {
		method += " (" + cfg.Key + ")"
	}
	banner(&b, "Method", method)
	b.WriteString(Current.Rule.Render(strings.Repeat("-", 50)))
	b.WriteString("\n")

	fmt.Fprint(p.w, b.String())
}

func (p *Printer) OnTick(ev keepalive.TickEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()

	stamp := fmt.Sprintf("[%ds]", int(ev.Elapsed.Seconds()))

	var line string
	switch {
	case !ev.Success:
		line = Current.Warning.Render(fmt.Sprintf("%s tick %d failed: %v", stamp, ev.Tick, ev.Err))
	case p.verbose:
		line = fmt.Sprintf("%s tick %d ok, %d successful (position: %d, %d)",
			stamp, ev.Tick, ev.Successes, ev.Position.X, ev.Position.Y)
	default:
		line = fmt.Sprintf("%s activity %d", stamp, ev.Successes)
	}
	if ev.Idle != nil {
		line += " " + Current.Help.Render(idleSuffix(*ev.Idle))
	}

	fmt.Fprintln(p.w, line)
}

func (p *Printer) OnFinish(res keepalive.Result) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var b strings.Builder
	b.WriteString("\n")
	if res.State == keepalive.StateFinished {
		b.WriteString(Current.Success.Render("Duration reached, stopping"))
	} else {
		b.WriteString(Current.Warning.Render("Interrupted, stopping"))
	}
	b.WriteString("\n")
	banner(&b, "Ticks", fmt.Sprintf("%d", res.Ticks))
	banner(&b, "Successful", fmt.Sprintf("%d", res.Successes))
	banner(&b, "Elapsed", fmt.Sprintf("%ds", int(res.Elapsed.Seconds())))
	if res.Health() == keepalive.HealthFailing {
		b.WriteString(Current.Error.Render(fmt.Sprintf("Last %d tick(s) failed", res.ConsecutiveFailures)))
		b.WriteString("\n")
	}

	fmt.Fprint(p.w, b.String())
}

func banner(b *strings.Builder, label, value string) {
	b.WriteString(Current.Label.Render(label + ":"))
	b.WriteString(value)
	b.WriteString("\n")
}

func idleSuffix(r keepalive.IdleReading) string {
	if r.Err != nil {
		return fmt.Sprintf("(idle: %v)", r.Err)
	}
	return fmt.Sprintf("(idle %s -> %s)", r.Before.Round(time.Millisecond), r.After.Round(time.Millisecond))
}
