// Package diag provides the compiler's shared structured logger.
package diag

import (
	"sync"

	"go.uber.org/zap"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the process-wide logger. It is a no-op logger by default;
// callers that want diagnostics wire a real one in with SetLogger before
// compiling.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger replaces the process-wide logger. Used by cmd/toycompile when
// -debug is passed.
func SetLogger(l *zap.Logger) {
	loggerOnce.Do(func() {})
	logger = l
}

var debug = false

// SetDebug toggles the per-stage debug messages emitted through Logger().
func SetDebug(v bool) { debug = v }

// Debugf logs a debug-level message when debug mode is enabled.
func Debugf(format string, args ...any) {
	if debug {
		Logger().Sugar().Debugf(format, args...)
	}
}
