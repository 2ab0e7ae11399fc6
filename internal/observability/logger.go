// Package observability builds the zap logger used across the application.
package observability

import (
	"io"
	"os"

	"github.com/stigoleg/mouse-keepalive/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// NewLogger builds a logger from cfg. Console output goes to console unless
// it is nil (the TUI owns the terminal); the log file, when configured, is
// always JSON and rotated by lumberjack.
func NewLogger(cfg config.LogConfig, console io.Writer) *zap.Logger {
	level := zap.NewAtomicLevel()
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level.SetLevel(zap.InfoLevel)
	}

	var cores []zapcore.Core
	if console != nil {
		cores = append(cores, zapcore.NewCore(encoder(cfg.Format), zapcore.Lock(zapcore.AddSync(console)), level))
	}
	if cfg.File != "" {
		fileWriter := zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		})
		cores = append(cores, zapcore.NewCore(encoder("json"), fileWriter, level))
	}
	if len(cores) == 0 {
		return zap.NewNop()
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddStacktrace(zap.ErrorLevel)).Named("mouse-keepalive")
}

// NewConsoleLogger logs to stderr at the configured level.
func NewConsoleLogger(cfg config.LogConfig) *zap.Logger {
	return NewLogger(cfg, os.Stderr)
}

func encoder(format string) zapcore.Encoder {
	if format == "json" {
		encCfg := zap.NewProductionEncoderConfig()
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		return zapcore.NewJSONEncoder(encCfg)
	}
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return zapcore.NewConsoleEncoder(encCfg)
}
