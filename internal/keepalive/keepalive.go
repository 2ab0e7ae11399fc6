// Package keepalive implements the activity loop: one small input action per
// interval until a time budget is spent or the context is cancelled.
package keepalive

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/stigoleg/mouse-keepalive/internal/device"
	"github.com/stigoleg/mouse-keepalive/internal/idle"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// State is the lifecycle state of a Loop.
type State int32

const (
	StateIdle State = iota
	StateRunning
	StateFinished
	StateInterrupted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateFinished:
		return "finished"
	case StateInterrupted:
		return "interrupted"
	default:
		return "unknown"
	}
}

// Health summarises whether recent ticks are succeeding.
type Health int

const (
	HealthUnknown Health = iota
	HealthOK
	HealthFailing
)

// Result is the outcome of a run, also delivered to Observer.OnFinish.
type Result struct {
	Ticks               int
	Successes           int
	ConsecutiveFailures int
	Elapsed             time.Duration
	State               State
}

// Health reports HealthFailing when the latest tick failed.
func (r Result) Health() Health {
	switch {
	case r.Ticks == 0:
		return HealthUnknown
	case r.ConsecutiveFailures > 0:
		return HealthFailing
	default:
		return HealthOK
	}
}

// Option configures a Loop.
type Option func(*Loop)

// WithClock replaces the wall clock.
func WithClock(c Clock) Option {
	return func(l *Loop) { l.clock = c }
}

// WithSleeper replaces the interval wait.
func WithSleeper(s Sleeper) Option {
	return func(l *Loop) { l.sleeper = s }
}

// WithLogger sets the logger; the default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(l *Loop) { l.log = log }
}

// WithIdleProbe samples the OS idle time before and after every tick.
// Readings are reported on TickEvent.Idle and never affect control flow.
func WithIdleProbe(p idle.Probe) Option {
	return func(l *Loop) { l.probe = p }
}

// Loop drives a device. Counters live in a per-Run state and are only
// exposed to observers as copies.
type Loop struct {
	dev     device.Device
	clock   Clock
	sleeper Sleeper
	probe   idle.Probe
	log     *zap.Logger
	state   atomic.Int32
}

// runState is created by Run and discarded when it returns.
type runState struct {
	moveCount           int
	successCount        int
	consecutiveFailures int
	startTime           time.Time

	// failureWarn throttles the warning logged while ticks keep failing.
	failureWarn rate.Sometimes
}

// returnMoveTimeout bounds the move back to the starting position when the
// tick was cancelled halfway through its round trip.
const returnMoveTimeout = 2 * time.Second

// NewLoop binds a loop to dev.
func NewLoop(dev device.Device, opts ...Option) *Loop {
	l := &Loop{
		dev:     dev,
		clock:   SystemClock,
		sleeper: SystemSleeper,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.log = l.log.Named("keepalive")
	return l
}

// State returns the current lifecycle state. Safe to call from any goroutine.
func (l *Loop) State() State {
	return State(l.state.Load())
}

// Run executes ticks until the duration budget is reached or ctx is
// cancelled. A device error fails only the tick it happened in.
//
// When the wait between ticks is interrupted, OnFinish runs once and the
// sleeper's error (normally ctx.Err()) is returned unchanged.
func (l *Loop) Run(ctx context.Context, cfg Config, obs Observer) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{State: l.State()}, err
	}
	cfg = cfg.withDefaults()
	if obs == nil {
		obs = ObserverFuncs{}
	}

	l.state.Store(int32(StateRunning))
	obs.OnStart(cfg)

	rs := &runState{
		startTime:   l.clock.Now(),
		failureWarn: rate.Sometimes{First: 1, Interval: time.Minute},
	}
	l.log.Info("activity loop started",
		zap.String("method", string(cfg.Method)),
		zap.Duration("interval", cfg.Interval),
		zap.Duration("duration", cfg.Duration))

	for {
		if err := ctx.Err(); err != nil {
			return l.stop(rs, l.elapsed(rs), StateInterrupted, obs), err
		}

		tickStart := l.elapsed(rs)
		before, beforeErr := l.sampleIdle(ctx)

		pos, err := l.act(ctx, cfg, rs.moveCount)
		if err != nil && ctx.Err() != nil {
			// Cut short by cancellation: neither a tick nor a failure.
			l.log.Debug("tick interrupted", zap.Int("tick", rs.moveCount+1), zap.Error(err))
			return l.stop(rs, l.elapsed(rs), StateInterrupted, obs), ctx.Err()
		}
		rs.moveCount++
		if err == nil {
			rs.successCount++
			rs.consecutiveFailures = 0
		} else {
			rs.consecutiveFailures++
			l.logFailure(rs, err)
		}

		ev := TickEvent{
			Tick:      rs.moveCount,
			Successes: rs.successCount,
			Position:  pos,
			Success:   err == nil,
			Err:       err,
			Method:    cfg.Method,
		}
		if l.probe != nil {
			after, afterErr := l.sampleIdle(ctx)
			ev.Idle = &IdleReading{Before: before, After: after, Err: firstErr(beforeErr, afterErr)}
		}

		elapsed := l.elapsed(rs)
		ev.Elapsed = elapsed
		l.log.Debug("tick",
			zap.Int("tick", ev.Tick),
			zap.Bool("success", ev.Success),
			zap.Duration("started_at", tickStart),
			zap.Duration("elapsed", elapsed))
		obs.OnTick(ev)

		if cfg.Bounded() && elapsed >= cfg.Duration {
			return l.stop(rs, elapsed, StateFinished, obs), nil
		}

		if err := l.sleeper.Sleep(ctx, cfg.Interval); err != nil {
			return l.stop(rs, l.elapsed(rs), StateInterrupted, obs), err
		}
	}
}

// act performs one activity action and returns the pointer position it saw.
func (l *Loop) act(ctx context.Context, cfg Config, tick int) (device.Position, error) {
	pos, err := l.dev.Position(ctx)
	if err != nil {
		return device.Position{}, fmt.Errorf("read pointer position: %w", err)
	}

	if cfg.Method == MethodKeyPress {
		if err := l.dev.PressKey(ctx, cfg.Key); err != nil {
			return pos, fmt.Errorf("press %s: %w", cfg.Key, err)
		}
		return pos, nil
	}

	bounds, err := l.dev.ScreenBounds(ctx)
	if err != nil {
		return pos, fmt.Errorf("read screen bounds: %w", err)
	}
	next := Jitter{Offset: cfg.Offset}.Next(pos, bounds, tick)
	outErr := l.dev.MoveTo(ctx, next.X, next.Y, cfg.Glide)
	if outErr != nil && ctx.Err() == nil {
		return pos, fmt.Errorf("move to (%d, %d): %w", next.X, next.Y, outErr)
	}
	if err := l.moveBack(ctx, pos, cfg.Glide); err != nil {
		return pos, fmt.Errorf("move back to (%d, %d): %w", pos.X, pos.Y, err)
	}
	if outErr != nil {
		return pos, fmt.Errorf("move to (%d, %d): %w", next.X, next.Y, outErr)
	}
	return pos, nil
}

// moveBack returns the pointer to pos even when ctx has been cancelled, so
// an interrupted tick never leaves the pointer displaced. Once cancelled it
// warps instead of gliding.
func (l *Loop) moveBack(ctx context.Context, pos device.Position, glide time.Duration) error {
	if ctx.Err() == nil {
		if err := l.dev.MoveTo(ctx, pos.X, pos.Y, glide); err == nil || ctx.Err() == nil {
			return err
		}
	}
	backCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), returnMoveTimeout)
	defer cancel()
	return l.dev.MoveTo(backCtx, pos.X, pos.Y, 0)
}

func (l *Loop) stop(rs *runState, elapsed time.Duration, final State, obs Observer) Result {
	l.state.Store(int32(final))
	res := Result{
		Ticks:               rs.moveCount,
		Successes:           rs.successCount,
		ConsecutiveFailures: rs.consecutiveFailures,
		Elapsed:             elapsed,
		State:               final,
	}
	l.log.Info("activity loop stopped",
		zap.Stringer("state", final),
		zap.Int("ticks", res.Ticks),
		zap.Int("successes", res.Successes),
		zap.Duration("elapsed", elapsed))
	obs.OnFinish(res)
	return res
}

func (l *Loop) elapsed(rs *runState) time.Duration {
	return l.clock.Now().Sub(rs.startTime)
}

func (l *Loop) sampleIdle(ctx context.Context) (time.Duration, error) {
	if l.probe == nil {
		return 0, nil
	}
	return l.probe.IdleTime(ctx)
}

func (l *Loop) logFailure(rs *runState, err error) {
	l.log.Debug("tick failed", zap.Int("tick", rs.moveCount), zap.Error(err))
	rs.failureWarn.Do(func() {
		l.log.Warn("activity action failing; the loop keeps running",
			zap.Int("consecutive_failures", rs.consecutiveFailures),
			zap.Error(err))
	})
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
