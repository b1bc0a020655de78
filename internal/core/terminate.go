package core

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/giantswarm/casstest/internal/process"
)

// Stop kills the instance started on port and removes its working
// directory.
//
// The pid record must exist: a port that was never started, or whose
// directory is already gone, yields ErrNotFound; a record that does not
// hold a positive integer yields ErrInvalidPID. In both cases nothing is
// removed. Otherwise SIGKILL is sent on a best-effort basis (a process that
// is already gone is not an error) and the directory is removed
// unconditionally.
//
// Stop trusts the pid record: it does not check that the pid still belongs
// to the server it launched.
func (p *Provisioner) Stop(ctx context.Context, port int) error {
	if err := validatePort(port); err != nil {
		return err
	}
	log := Logger().With("port", port)
	dir := workDir(p.cfg, port)

	if _, err := os.Stat(dir); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("stop port %d: %w: %w", port, ErrNotFound, err)
		}
		return fsError("stat working directory", err)
	}

	fl, err := p.lock(ctx, port)
	if err != nil {
		return err
	}
	defer releaseFileLock(log, fl)

	inst := newInstance(p.cfg, port)
	pid, err := inst.PID()
	switch {
	case errors.Is(err, process.ErrInvalidPID):
		return fmt.Errorf("stop port %d: %w", port, err)
	case err != nil:
		return fmt.Errorf("stop port %d: %w: %w", port, ErrNotFound, err)
	}

	log.Info("killing cassandra", "pid", pid)
	if err := process.Kill(pid); err != nil {
		log.Debug("kill failed; removing working directory anyway", "pid", pid, "error", err)
	}

	if err := os.RemoveAll(dir); err != nil {
		return fsError("remove working directory", err)
	}
	return nil
}
