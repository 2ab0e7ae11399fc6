package config

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/stigoleg/mouse-keepalive/internal/device"
	"github.com/stigoleg/mouse-keepalive/internal/keepalive"
)

// flagKeys maps viper keys to the flag that overrides them.
var flagKeys = map[string]string{
	"config":     "config",
	"interval":   "interval",
	"duration":   "duration",
	"until":      "until",
	"method":     "method",
	"offset":     "offset",
	"glide":      "glide",
	"key":        "key",
	"verbose":    "verbose",
	"failsafe":   "failsafe",
	"diagnose":   "diagnose",
	"tui":        "tui",
	"display":    "display",
	"log.level":  "log-level",
	"log.format": "log-format",
	"log.file":   "log-file",
}

// BindFlags registers the command-line flags on fs and binds each one into v.
func BindFlags(fs *pflag.FlagSet, v *viper.Viper) error {
	fs.String("config", "", "config file (default "+DefaultConfigPath+")")

	fs.StringP("interval", "i", DefaultInterval, "time between ticks, in seconds or as a duration (e.g. 30, 90s, 5m)")
	fs.StringP("duration", "d", "", "stop after this long (e.g. 3600, 2h30m); runs until interrupted when omitted")
	fs.StringP("until", "u", "", "stop at a clock time (e.g. 22:30, 10:30PM)")
	fs.StringP("method", "m", string(keepalive.MethodPointerJitter), "activity method: pointer-jitter or key-press")
	fs.Int("offset", keepalive.DefaultOffset, fmt.Sprintf("jitter size in pixels (%d is visible to most apps)", keepalive.VisibleOffset))
	fs.String("glide", keepalive.DefaultGlide.String(), "time taken by each pointer move, 0 to warp")
	fs.String("key", device.DefaultKey, "key pressed by the key-press method: shift, ctrl, alt or f15")
	fs.BoolP("verbose", "v", false, "print position and status for every tick")
	fs.Bool("failsafe", false, "stop moving while the pointer sits in a screen corner")
	fs.Bool("diagnose", false, "report OS idle time before and after each tick")
	fs.Bool("tui", false, "show an interactive dashboard instead of plain output")
	fs.String("display", "", "X11 display for the linux backend (default $DISPLAY)")
	fs.String("log-level", "info", "log level: debug, info, warn or error")
	fs.String("log-format", "console", "log format: console or json")
	fs.String("log-file", "", "also write JSON logs to this rotated file")

	for key, name := range flagKeys {
		if err := v.BindPFlag(key, fs.Lookup(name)); err != nil {
			return fmt.Errorf("bind --%s: %w", name, err)
		}
	}
	return nil
}
