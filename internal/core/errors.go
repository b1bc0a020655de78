package core

import (
	"fmt"

	"github.com/giantswarm/casstest/internal/process"
	"github.com/giantswarm/casstest/internal/sentinel"
)

// ErrFilesystem marks failures of directory or file operations while laying
// out or removing a working directory. The underlying OS error stays in the
// chain, so errors.Is(err, fs.ErrExist) and friends still work.
const ErrFilesystem = sentinel.Error("filesystem error")

// ErrNotFound is returned by Stop when no pid record exists for the port.
const ErrNotFound = sentinel.Error("instance not found")

// ErrInvalidPort is returned for ports outside 1..65535.
const ErrInvalidPort = sentinel.Error("invalid port")

// ErrConfigPatch is returned when the patched configuration does not carry
// the expected ports or paths, typically because the distribution's
// defaults differ from the literals being replaced.
const ErrConfigPatch = sentinel.Error("configuration not patched")

// ErrInvalidPID is returned by Stop when the pid record is corrupt.
const ErrInvalidPID = process.ErrInvalidPID

// fsError tags err as a filesystem failure of the named step.
func fsError(step string, err error) error {
	return fmt.Errorf("%s: %w: %w", step, ErrFilesystem, err)
}

func validatePort(port int) error {
	if port <= 0 || port > 65535 {
		return fmt.Errorf("%d: %w", port, ErrInvalidPort)
	}
	return nil
}
