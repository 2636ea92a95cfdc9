// Package logging builds the zap loggers used across the CLI
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds logging configuration
type Config struct {
	Level       string // debug, info, warn, error
	Format      string // "console" or "json"
	Development bool
}

// NewLogger creates a logger writing to stderr, so command output on stdout stays clean
func NewLogger(config Config) (*zap.Logger, error) {
	var zapConfig zap.Config
	if config.Development {
		zapConfig = zap.NewDevelopmentConfig()
	} else {
		zapConfig = zap.NewProductionConfig()
	}

	level, err := zap.ParseAtomicLevel(config.Level)
	if err != nil {
		level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	zapConfig.Level = level

	if config.Format == "json" {
		zapConfig.Encoding = "json"
	} else {
		zapConfig.Encoding = "console"
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapConfig.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	}

	zapConfig.OutputPaths = []string{"stderr"}
	zapConfig.ErrorOutputPaths = []string{"stderr"}
	zapConfig.DisableStacktrace = !config.Development

	return zapConfig.Build()
}

// NewDefaultLogger returns a warn-level console logger, falling back to a no-op logger
func NewDefaultLogger() *zap.Logger {
	logger, err := NewLogger(Config{Level: "warn", Format: "console"})
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
