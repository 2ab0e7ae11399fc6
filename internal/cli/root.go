// Package cli wires configuration, logging, the input device and the
// keepalive loop into the mouse-keepalive command.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/stigoleg/mouse-keepalive/internal/config"
	"github.com/stigoleg/mouse-keepalive/internal/device"
	"github.com/stigoleg/mouse-keepalive/internal/idle"
	"github.com/stigoleg/mouse-keepalive/internal/keepalive"
	"github.com/stigoleg/mouse-keepalive/internal/observability"
	"github.com/stigoleg/mouse-keepalive/internal/ui"
)

const cleanupTimeout = 2 * time.Second

// Options customise the command. Zero values select the real implementations.
type Options struct {
	Version string

	NewDevice    func(opts device.Options) (device.Device, error)
	NewIdleProbe func() idle.Probe
	Now          func() time.Time

	// LoopOptions are appended after the defaults, e.g. a fake clock in tests.
	LoopOptions []keepalive.Option
}

func (o Options) withDefaults() Options {
	if o.Version == "" {
		o.Version = "dev"
	}
	if o.NewDevice == nil {
		o.NewDevice = device.New
	}
	if o.NewIdleProbe == nil {
		o.NewIdleProbe = func() idle.Probe {
			if !idle.Supported() {
				return nil
			}
			return idle.New()
		}
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// NewRootCommand builds the mouse-keepalive command.
func NewRootCommand(opts Options) *cobra.Command {
	opts = opts.withDefaults()
	v := config.NewViper()

	cmd := &cobra.Command{
		Use:   "mouse-keepalive",
		Short: "Keep the session active with a tiny periodic pointer or key action",
		Long: `mouse-keepalive performs one small input action per interval so the
desktop session, screen saver and chat presence stay active.

The default action nudges the pointer by one pixel and moves it straight
back, alternating direction every tick. The key-press method taps a
modifier key instead.`,
		Example: `  mouse-keepalive                   # every 60 seconds until Ctrl+C
  mouse-keepalive -i 30 -d 2h       # every 30 seconds for two hours
  mouse-keepalive -u 17:30 --tui    # until 17:30 with a dashboard
  mouse-keepalive -m key-press --key f15`,
		Version:       opts.Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, v, opts)
		},
	}
	cmd.SetVersionTemplate(`{{printf "mouse-keepalive %s\n" .Version}}`)
	cobra.CheckErr(config.BindFlags(cmd.Flags(), v))

	return cmd
}

func run(cmd *cobra.Command, v *viper.Viper, opts Options) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if err := config.ReadConfigFile(v); err != nil {
		return err
	}
	cfg, err := config.Load(v, opts.Now())
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	var console io.Writer = cmd.ErrOrStderr()
	if cfg.TUI {
		// The dashboard owns the terminal; logs go to --log-file only.
		console = nil
	}
	log := observability.NewLogger(cfg.Log, console)

	cleanup := keepalive.NewCleanupManager(cleanupTimeout, log)
	defer func() {
		// Flushed last so the other steps can still log.
		cleanup.RegisterFunc("logger", func() error {
			// Syncing a terminal fails on some platforms; nothing is lost.
			_ = log.Sync()
			return nil
		})
		cleanup.Execute()
	}()

	log.Debug("Configuration loaded",
		zap.String("config_file", cfg.ConfigFile),
		zap.Duration("interval", cfg.Loop.Interval),
		zap.Duration("duration", cfg.Loop.Duration),
		zap.String("method", string(cfg.Loop.Method)),
		zap.Bool("failsafe", cfg.FailSafe),
		zap.Bool("tui", cfg.TUI))

	dev, err := opts.NewDevice(device.Options{
		FailSafe: cfg.FailSafe,
		Display:  cfg.Display,
		Logger:   log.Named("device"),
	})
	if err != nil {
		return fmt.Errorf("open input device: %w", err)
	}
	cleanup.RegisterFunc("device", func() error { return device.Close(dev) })

	loopOpts := []keepalive.Option{keepalive.WithLogger(log)}
	if cfg.Diagnose {
		if probe := opts.NewIdleProbe(); probe != nil {
			loopOpts = append(loopOpts, keepalive.WithIdleProbe(probe))
		} else {
			log.Warn("Idle time diagnostics are not available on this platform")
		}
	}
	loop := keepalive.NewLoop(dev, append(loopOpts, opts.LoopOptions...)...)

	out := cmd.OutOrStdout()
	var res keepalive.Result
	if cfg.TUI {
		res, err = ui.RunDashboard(ctx, cfg.Loop, cfg.Until,
			func(ctx context.Context, obs keepalive.Observer) (keepalive.Result, error) {
				return loop.Run(ctx, cfg.Loop, obs)
			},
			tea.WithContext(ctx),
			tea.WithAltScreen(),
			tea.WithOutput(out),
			tea.WithoutSignalHandler(),
		)
		if res.State != keepalive.StateIdle {
			// The alt screen is gone; leave the summary in the scrollback.
			ui.NewPrinter(out, cfg.Until).OnFinish(res)
		}
	} else {
		res, err = loop.Run(ctx, cfg.Loop, ui.NewPrinter(out, cfg.Until))
	}

	if err != nil && !isCancellation(ctx, err) {
		return err
	}

	log.Info("Keepalive stopped",
		zap.Stringer("state", res.State),
		zap.Int("ticks", res.Ticks),
		zap.Int("successes", res.Successes),
		zap.Duration("elapsed", res.Elapsed))
	return nil
}

// isCancellation reports whether err only says the run was stopped on request.
func isCancellation(ctx context.Context, err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return true
	}
	return false
}
