package keepalive

import (
	"time"

	"github.com/stigoleg/mouse-keepalive/internal/device"
)

// IdleReading is the diagnostic idle time sampled around one tick.
type IdleReading struct {
	Before time.Duration
	After  time.Duration
	Err    error
}

// TickEvent describes one completed tick. Tick counts attempts from 1.
type TickEvent struct {
	Tick      int
	Successes int
	Position  device.Position
	Elapsed   time.Duration
	Success   bool
	Err       error
	Method    Method

	// Idle is nil unless an idle probe is attached to the loop.
	Idle *IdleReading
}

// Observer receives loop lifecycle events. Events are values; observers
// cannot change the loop's counters.
type Observer interface {
	OnStart(cfg Config)
	OnTick(ev TickEvent)
	OnFinish(res Result)
}

// ObserverFuncs adapts optional functions to Observer.
type ObserverFuncs struct {
	Start  func(cfg Config)
	Tick   func(ev TickEvent)
	Finish func(res Result)
}

func (o ObserverFuncs) OnStart(cfg Config) {
	if o.Start != nil {
		o.Start(cfg)
	}
}

func (o ObserverFuncs) OnTick(ev TickEvent) {
	if o.Tick != nil {
		o.Tick(ev)
	}
}

func (o ObserverFuncs) OnFinish(res Result) {
	if o.Finish != nil {
		o.Finish(res)
	}
}

// Observers fans events out in order.
type Observers []Observer

func (all Observers) OnStart(cfg Config) {
	for _, o := range all {
		o.OnStart(cfg)
	}
}

func (all Observers) OnTick(ev TickEvent) {
	for _, o := range all {
		o.OnTick(ev)
	}
}

func (all Observers) OnFinish(res Result) {
	for _, o := range all {
		o.OnFinish(res)
	}
}
