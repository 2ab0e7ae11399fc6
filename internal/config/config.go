// Package config merges defaults, the config file, environment variables and
// command-line flags into a validated run configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/stigoleg/mouse-keepalive/internal/device"
	"github.com/stigoleg/mouse-keepalive/internal/keepalive"
	"github.com/stigoleg/mouse-keepalive/internal/util"
)

const (
	// EnvPrefix prefixes every environment override, e.g. MOUSE_KEEPALIVE_INTERVAL.
	EnvPrefix = "MOUSE_KEEPALIVE"

	// DefaultConfigPath is read when --config is not given. A missing file is not an error.
	DefaultConfigPath = "~/.config/mouse-keepalive/config.yaml"

	DefaultInterval = "60"
)

var ErrConflictingDeadline = errors.New("--until and --duration cannot be used together")

// LogConfig configures the zap logger and its optional rotating file.
type LogConfig struct {
	Level      string `mapstructure:"level" yaml:"level"`
	Format     string `mapstructure:"format" yaml:"format"`
	File       string `mapstructure:"file" yaml:"file"`
	MaxSize    int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge     int    `mapstructure:"max_age" yaml:"max_age"`
	Compress   bool   `mapstructure:"compress" yaml:"compress"`
}

// Config is everything the command needs to start a run.
type Config struct {
	Loop keepalive.Config

	FailSafe bool
	Diagnose bool
	TUI      bool
	Display  string

	// Until is the raw --until clock time, kept for the start banner.
	Until string

	// ConfigFile is the file that was actually read, empty if none.
	ConfigFile string

	Log LogConfig
}

// SetDefaults registers the default value of every key.
func SetDefaults(v *viper.Viper) {
	// -- Loop --
	v.SetDefault("interval", DefaultInterval)
	v.SetDefault("duration", "")
	v.SetDefault("until", "")
	v.SetDefault("method", string(keepalive.MethodPointerJitter))
	v.SetDefault("offset", keepalive.DefaultOffset)
	v.SetDefault("glide", keepalive.DefaultGlide.String())
	v.SetDefault("key", device.DefaultKey)
	v.SetDefault("verbose", false)

	// -- Device --
	v.SetDefault("failsafe", false)
	v.SetDefault("display", "")

	// -- Front end --
	v.SetDefault("diagnose", false)
	v.SetDefault("tui", false)

	// -- Logger --
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age", 28)
	v.SetDefault("log.compress", true)
}

// NewViper returns a viper instance with defaults and environment overrides
// wired up. Flags are bound separately with BindFlags.
func NewViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// ReadConfigFile loads the file named by the "config" key, or
// DefaultConfigPath when none is set.
func ReadConfigFile(v *viper.Viper) error {
	path := v.GetString("config")
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath
	}

	expanded, err := homedir.Expand(path)
	if err != nil {
		return fmt.Errorf("expand config path %q: %w", path, err)
	}

	v.SetConfigFile(expanded)
	if err := v.ReadInConfig(); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config file %s: %w", expanded, err)
	}
	return nil
}

// Load converts the merged values in v into a validated Config. now anchors
// the --until clock time.
func Load(v *viper.Viper, now time.Time) (*Config, error) {
	interval, err := util.ParseDuration(v.GetString("interval"))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", keepalive.ErrInvalidInterval, err)
	}
	if interval <= 0 {
		return nil, fmt.Errorf("%w, got %s", keepalive.ErrInvalidInterval, interval)
	}

	budget, until, err := loadDeadline(v, now)
	if err != nil {
		return nil, err
	}

	method, err := keepalive.ParseMethod(v.GetString("method"))
	if err != nil {
		return nil, err
	}

	offset := v.GetInt("offset")
	if offset <= 0 {
		return nil, fmt.Errorf("%w, got %d", keepalive.ErrInvalidOffset, offset)
	}

	glide, err := util.ParseDuration(v.GetString("glide"))
	if err != nil {
		return nil, fmt.Errorf("invalid glide: %w", err)
	}

	key, err := device.NormalizeKey(v.GetString("key"))
	if err != nil {
		return nil, err
	}

	log, err := loadLog(v)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Loop: keepalive.Config{
			Interval: interval,
			Duration: budget,
			Verbose:  v.GetBool("verbose"),
			Method:   method,
			Offset:   offset,
			Glide:    glide,
			Key:      key.String(),
		},
		FailSafe:   v.GetBool("failsafe"),
		Diagnose:   v.GetBool("diagnose"),
		TUI:        v.GetBool("tui"),
		Display:    v.GetString("display"),
		Until:      until,
		ConfigFile: v.ConfigFileUsed(),
		Log:        log,
	}

	if err := cfg.Loop.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadDeadline(v *viper.Viper, now time.Time) (time.Duration, string, error) {
	duration := strings.TrimSpace(v.GetString("duration"))
	until := strings.TrimSpace(v.GetString("until"))

	switch {
	case duration != "" && until != "":
		return 0, "", ErrConflictingDeadline
	case duration != "":
		d, err := util.ParseDuration(duration)
		if err != nil {
			return 0, "", fmt.Errorf("%w: %v", keepalive.ErrInvalidDuration, err)
		}
		if d <= 0 {
			return 0, "", fmt.Errorf("%w, got %s", keepalive.ErrInvalidDuration, d)
		}
		return d, "", nil
	case until != "":
		d, err := util.DurationUntil(until, now)
		if err != nil {
			return 0, "", fmt.Errorf("invalid --until: %w", err)
		}
		return d, until, nil
	default:
		return keepalive.Unbounded, "", nil
	}
}

func loadLog(v *viper.Viper) (LogConfig, error) {
	// Per-key reads so flag and env overrides of nested keys are honoured.
	log := LogConfig{
		Level:      v.GetString("log.level"),
		Format:     v.GetString("log.format"),
		File:       v.GetString("log.file"),
		MaxSize:    v.GetInt("log.max_size"),
		MaxBackups: v.GetInt("log.max_backups"),
		MaxAge:     v.GetInt("log.max_age"),
		Compress:   v.GetBool("log.compress"),
	}

	if _, err := zapcore.ParseLevel(log.Level); err != nil {
		return LogConfig{}, fmt.Errorf("invalid log level: %w", err)
	}
	switch log.Format {
	case "console", "json":
	default:
		return LogConfig{}, fmt.Errorf("invalid log format %q (use console or json)", log.Format)
	}
	if log.File != "" {
		expanded, err := homedir.Expand(log.File)
		if err != nil {
			return LogConfig{}, fmt.Errorf("expand log file path: %w", err)
		}
		log.File = expanded
	}
	return log, nil
}
