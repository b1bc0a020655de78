package casstest

import "github.com/giantswarm/casstest/internal/core"

// Sentinel errors for error inspection with errors.Is.
const (
	// ErrFilesystem is returned when laying out or removing a working
	// directory fails. The OS error stays in the chain: a Start on a port
	// whose directory exists matches both ErrFilesystem and fs.ErrExist.
	ErrFilesystem = core.ErrFilesystem

	// ErrNotFound is returned by Stop when the port has no pid record.
	ErrNotFound = core.ErrNotFound

	// ErrInvalidPID is returned by Stop when the pid record is corrupt.
	// The working directory is left in place.
	ErrInvalidPID = core.ErrInvalidPID

	// ErrInvalidPort is returned for ports outside 1..65535.
	ErrInvalidPort = core.ErrInvalidPort

	// ErrConfigPatch is returned by Start when the rewritten configuration
	// does not carry the instance's ports and paths, usually because the
	// archive is not a 1.1.x distribution.
	ErrConfigPatch = core.ErrConfigPatch
)
