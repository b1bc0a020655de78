package core

import (
	"log/slog"
	"sync/atomic"
)

// component is attached to every record logged through the default logger.
const component = "casstest"

// custom holds the logger installed with SetLogger, nil when unset.
var custom atomic.Pointer[slog.Logger]

// Logger returns the logger installed with SetLogger. Without one it derives
// a logger from slog.Default on each call, so a later slog.SetDefault in the
// host program is honored.
func Logger() *slog.Logger {
	if l := custom.Load(); l != nil {
		return l
	}
	return slog.Default().With("component", component)
}

// SetLogger installs l for all provisioning and termination messages. Nil
// restores the slog.Default based logger.
func SetLogger(l *slog.Logger) {
	custom.Store(l)
}
