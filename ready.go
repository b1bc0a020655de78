package casstest

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/giantswarm/casstest/internal/core"
	"github.com/giantswarm/casstest/internal/process"
)

// ErrServerExited is returned by WaitReady when the recorded server process
// is gone before it accepted a connection.
const ErrServerExited = process.ErrProcessExited

// WaitReady blocks until inst accepts TCP connections on its client port,
// the server process exits, or timeout elapses. Start never calls it; a
// Cassandra 1.1 JVM takes several seconds to open its Thrift port.
//
// Returns an error matching ErrNotFound if inst has no pid record and
// ErrServerExited if the recorded process dies while waiting.
func WaitReady(ctx context.Context, inst *Instance, timeout time.Duration) error {
	pid, err := inst.PID()
	if err != nil {
		return fmt.Errorf("wait for port %d: %w: %w", inst.Port, ErrNotFound, err)
	}

	addr := inst.Address()
	dialer := net.Dialer{Timeout: DefaultReadyInterval}
	log := core.Logger().With("port", inst.Port)

	return process.WaitReady(ctx, process.WaitReadyConfig{
		Interval: DefaultReadyInterval,
		Timeout:  timeout,
		Name:     "cassandra",
		Port:     inst.Port,
		Logger:   log,
		Alive:    func() bool { return process.Alive(pid) },
	}, func(ctx context.Context, attempt int) (bool, error) {
		conn, err := dialer.DialContext(ctx, "tcp", addr)
		if err != nil {
			if attempt%20 == 0 {
				log.Debug("cassandra not accepting connections yet", "attempt", attempt, "error", err)
			}
			return false, nil
		}
		_ = conn.Close()
		return true, nil
	})
}
