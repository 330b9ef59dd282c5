// Package logging builds the shared zap logger. Subsystems take named child
// loggers so log lines are attributable (engine, server, store, watch).
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the process logger. verbose lowers the level to debug.
func New(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	cfg.DisableStacktrace = true
	return cfg.Build()
}

// NewTUI builds a logger safe to run underneath a fullscreen terminal UI:
// everything below the error level is dropped so log output cannot corrupt
// the rendered frame.
func NewTUI() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
	cfg.DisableStacktrace = true
	return cfg.Build()
}
