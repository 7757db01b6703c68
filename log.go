package ranenv

import (
	"log/slog"

	"github.com/giantswarm/ranenv/internal/core"
	"github.com/giantswarm/ranenv/internal/rpcclient"
)

// SetLogger replaces the package-level logger used by ranenv and its
// remote handles. The provided logger should already carry any desired
// attributes.
//
// If l is nil, the logger resets to slog.Default() with a "component"
// attribute. Call SetLogger(nil) after slog.SetDefault() to pick up
// changes.
//
// SetLogger is safe to call concurrently with other ranenv operations, but
// an operation already in flight may keep logging to the previous logger.
//
// Example:
//
//	ranenv.SetLogger(myLogger.With("component", "ranenv"))
func SetLogger(l *slog.Logger) {
	core.SetLogger(l)
	rpcclient.SetLogger(l)
}
