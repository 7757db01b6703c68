package rpcclient

import (
	"log/slog"
	"sync/atomic"
)

var logger atomic.Pointer[slog.Logger]

// Logger returns the package logger, defaulting to slog.Default().
func Logger() *slog.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return slog.Default().With("component", "ranenv.rpcclient")
}

// SetLogger replaces the package logger. Passing nil restores the default.
func SetLogger(l *slog.Logger) {
	logger.Store(l)
}
