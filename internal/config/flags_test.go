package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stigoleg/mouse-keepalive/internal/device"
	"github.com/stigoleg/mouse-keepalive/internal/keepalive"
)

func parseArgs(t *testing.T, args ...string) *viper.Viper {
	t.Helper()
	v := NewViper()
	fs := pflag.NewFlagSet("mouse-keepalive", pflag.ContinueOnError)
	require.NoError(t, BindFlags(fs, v))
	require.NoError(t, fs.Parse(args))
	return v
}

func TestLoad(t *testing.T) {
	// Use a fixed time for consistent testing
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.Local)

	tests := []struct {
		name      string
		args      []string
		check     func(t *testing.T, cfg *Config)
		wantErrIs error
		wantErr   string
	}{
		{
			name: "defaults",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 60*time.Second, cfg.Loop.Interval)
				assert.Equal(t, keepalive.Unbounded, cfg.Loop.Duration)
				assert.Equal(t, keepalive.MethodPointerJitter, cfg.Loop.Method)
				assert.Equal(t, keepalive.DefaultOffset, cfg.Loop.Offset)
				assert.Equal(t, keepalive.DefaultGlide, cfg.Loop.Glide)
				assert.Equal(t, device.DefaultKey, cfg.Loop.Key)
				assert.False(t, cfg.Loop.Verbose)
				assert.False(t, cfg.FailSafe)
				assert.False(t, cfg.TUI)
				assert.Equal(t, "info", cfg.Log.Level)
				assert.Equal(t, "console", cfg.Log.Format)
			},
		},
		{
			name: "interval in seconds",
			args: []string{"-i", "30"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 30*time.Second, cfg.Loop.Interval)
			},
		},
		{
			name: "interval as duration",
			args: []string{"--interval", "1m30s"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 90*time.Second, cfg.Loop.Interval)
			},
		},
		{
			name: "duration budget",
			args: []string{"-d", "2h30m"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 150*time.Minute, cfg.Loop.Duration)
				assert.True(t, cfg.Loop.Bounded())
			},
		},
		{
			name: "until 24h clock",
			args: []string{"-u", "22:30"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 12*time.Hour+30*time.Minute, cfg.Loop.Duration)
				assert.Equal(t, "22:30", cfg.Until)
			},
		},
		{
			name: "until 12h clock in the past rolls to tomorrow",
			args: []string{"--until", "09:45AM"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 23*time.Hour+45*time.Minute, cfg.Loop.Duration)
			},
		},
		{
			name: "key press with alias",
			args: []string{"-m", "keyboard", "--key", "Control_L"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, keepalive.MethodKeyPress, cfg.Loop.Method)
				assert.Equal(t, "ctrl", cfg.Loop.Key)
			},
		},
		{
			name: "front end and device flags",
			args: []string{"-v", "--tui", "--failsafe", "--diagnose", "--display", ":1", "--offset", "25", "--glide", "0"},
			check: func(t *testing.T, cfg *Config) {
				assert.True(t, cfg.Loop.Verbose)
				assert.True(t, cfg.TUI)
				assert.True(t, cfg.FailSafe)
				assert.True(t, cfg.Diagnose)
				assert.Equal(t, ":1", cfg.Display)
				assert.Equal(t, keepalive.VisibleOffset, cfg.Loop.Offset)
				assert.Zero(t, cfg.Loop.Glide)
			},
		},
		{
			name:      "zero interval",
			args:      []string{"-i", "0"},
			wantErrIs: keepalive.ErrInvalidInterval,
		},
		{
			name:      "negative interval",
			args:      []string{"--interval=-5"},
			wantErrIs: keepalive.ErrInvalidInterval,
		},
		{
			name:      "garbage interval",
			args:      []string{"-i", "soon"},
			wantErrIs: keepalive.ErrInvalidInterval,
		},
		{
			name:      "explicit zero duration",
			args:      []string{"-d", "0"},
			wantErrIs: keepalive.ErrInvalidDuration,
		},
		{
			name:      "both duration and until",
			args:      []string{"-d", "2h", "-u", "22:30"},
			wantErrIs: ErrConflictingDeadline,
		},
		{
			name:    "invalid until",
			args:    []string{"-u", "25:00"},
			wantErr: "invalid --until",
		},
		{
			name:      "unknown method",
			args:      []string{"-m", "wiggle"},
			wantErrIs: keepalive.ErrInvalidMethod,
		},
		{
			name:      "zero offset",
			args:      []string{"--offset", "0"},
			wantErrIs: keepalive.ErrInvalidOffset,
		},
		{
			name:      "unknown key",
			args:      []string{"--key", "capslock"},
			wantErrIs: device.ErrUnknownKey,
		},
		{
			name:    "invalid log level",
			args:    []string{"--log-level", "loud"},
			wantErr: "invalid log level",
		},
		{
			name:    "invalid log format",
			args:    []string{"--log-format", "xml"},
			wantErr: "invalid log format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(parseArgs(t, tt.args...), now)

			switch {
			case tt.wantErrIs != nil:
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErrIs)
				assert.Nil(t, cfg)
			case tt.wantErr != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Nil(t, cfg)
			default:
				require.NoError(t, err)
				tt.check(t, cfg)
			}
		})
	}
}

func TestEnvironmentOverridesDefaults(t *testing.T) {
	t.Setenv("MOUSE_KEEPALIVE_INTERVAL", "15")
	t.Setenv("MOUSE_KEEPALIVE_LOG_LEVEL", "debug")

	cfg, err := Load(parseArgs(t), time.Now())
	require.NoError(t, err)
	assert.Equal(t, 15*time.Second, cfg.Loop.Interval)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("MOUSE_KEEPALIVE_INTERVAL", "15")

	cfg, err := Load(parseArgs(t, "-i", "45"), time.Now())
	require.NoError(t, err)
	assert.Equal(t, 45*time.Second, cfg.Loop.Interval)
}

func TestReadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
interval: 20
method: key-press
key: alt
log:
  level: warn
  max_size: 5
`), 0o600))

	v := parseArgs(t, "--config", path, "--key", "f15")
	require.NoError(t, ReadConfigFile(v))

	cfg, err := Load(v, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 20*time.Second, cfg.Loop.Interval)
	assert.Equal(t, keepalive.MethodKeyPress, cfg.Loop.Method)
	assert.Equal(t, "f15", cfg.Loop.Key, "flags win over the config file")
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 5, cfg.Log.MaxSize)
	assert.Equal(t, path, cfg.ConfigFile)
}

func TestReadConfigFileMissing(t *testing.T) {
	t.Run("explicit path must exist", func(t *testing.T) {
		v := parseArgs(t, "--config", filepath.Join(t.TempDir(), "nope.yaml"))
		err := ReadConfigFile(v)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read config file")
	})

	t.Run("default path may be absent", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())
		t.Setenv("USERPROFILE", os.Getenv("HOME"))
		v := parseArgs(t)
		assert.NoError(t, ReadConfigFile(v))
	})
}
