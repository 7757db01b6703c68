package core

import (
	"log/slog"
	"sync/atomic"
)

// logger holds a caller-provided logger; nil means fall back to the cached
// default.
var logger atomic.Pointer[slog.Logger]

// defaultLogger caches slog.Default() with the component attribute. It is
// cleared by SetLogger so that SetLogger(nil) picks up a new slog default.
var defaultLogger atomic.Pointer[slog.Logger]

// Logger returns the package-level logger. It is safe for concurrent use.
func Logger() *slog.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	if l := defaultLogger.Load(); l != nil {
		return l
	}
	l := slog.Default().With("component", "ranenv")
	if defaultLogger.CompareAndSwap(nil, l) {
		return l
	}
	if l2 := defaultLogger.Load(); l2 != nil {
		return l2
	}
	return l
}

// SetLogger replaces the package-level logger. Passing nil restores the
// default derived from slog.Default().
func SetLogger(l *slog.Logger) {
	logger.Store(l)
	defaultLogger.Store(nil)
}
