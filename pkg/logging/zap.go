// Package logging adapts a zap production logger to the pkg/core.Logger
// interface the rest of the module is built against, keeping the core
// packages free of a direct zap dependency.
package logging

import (
	"go.uber.org/zap"

	"github.com/windlorne/luxtracer/pkg/core"
)

// ZapLogger forwards core.Logger.Printf calls to a *zap.SugaredLogger.
type ZapLogger struct {
	sugar *zap.SugaredLogger
}

// NewProduction builds a ZapLogger backed by zap's production config
// (JSON-encoded, info level and above).
func NewProduction() (*ZapLogger, error) {
	base, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return &ZapLogger{sugar: base.Sugar()}, nil
}

// NewDevelopment builds a ZapLogger backed by zap's development config
// (human-readable console output), suitable for cmd/luxtracer's default.
func NewDevelopment() (*ZapLogger, error) {
	base, err := zap.NewDevelopment()
	if err != nil {
		return nil, err
	}
	return &ZapLogger{sugar: base.Sugar()}, nil
}

// Printf implements core.Logger.
func (z *ZapLogger) Printf(format string, args ...interface{}) {
	z.sugar.Infof(format, args...)
}

// Sync flushes any buffered log entries; call before process exit.
func (z *ZapLogger) Sync() error {
	return z.sugar.Sync()
}

var _ core.Logger = (*ZapLogger)(nil)
