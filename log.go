package casstest

import (
	"log/slog"

	"github.com/giantswarm/casstest/internal/core"
)

// SetLogger replaces the package-level logger used by casstest. The
// provided logger should already carry any desired attributes.
//
// If l is nil, the logger resets to slog.Default() with a "component"
// attribute, re-derived on the next use. Call SetLogger(nil) after
// slog.SetDefault() to pick up the change.
//
// SetLogger is safe to call concurrently with Start and Stop; for a strict
// happens-before guarantee call it before starting goroutines (e.g. in
// TestMain).
//
// Example:
//
//	casstest.SetLogger(myLogger.With("component", "casstest"))
func SetLogger(l *slog.Logger) {
	core.SetLogger(l)
}
