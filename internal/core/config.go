package core

import (
	"errors"
	"fmt"
	"time"
)

// Config holds configuration for a Provisioner. All fields are immutable
// after NewProvisioner.
type Config struct {
	// Archive is the path to the distribution tarball (.tar.gz).
	Archive string

	// Distribution is the single top-level directory inside Archive,
	// e.g. "apache-cassandra-1.1.7".
	Distribution string

	// BaseDir holds the per-instance working directories.
	BaseDir string

	// Prefix names working directories: <BaseDir>/<Prefix>.<port>.
	Prefix string

	// MaxHeapSize and HeapNewSize replace the commented-out defaults in
	// cassandra-env.sh (e.g. "256M", "100M").
	MaxHeapSize string
	HeapNewSize string

	// LogLevel replaces INFO in log4j-server.properties.
	LogLevel string

	// LaunchTimeout bounds the launcher script. It does not cover server
	// readiness, which Start never waits for.
	LaunchTimeout time.Duration

	// OutputWaitDelay bounds how long the launcher's output is collected
	// after the script exits while the backgrounded server still holds
	// its stdout/stderr.
	OutputWaitDelay time.Duration

	// LockTimeout bounds waiting for the per-port instance lock.
	LockTimeout time.Duration
}

// Validate checks all Config invariants and reports every violation at once.
func (c Config) Validate() error {
	var errs []error

	if c.Archive == "" {
		errs = append(errs, errors.New("archive path must not be empty"))
	}
	if c.Distribution == "" {
		errs = append(errs, errors.New("distribution directory must not be empty"))
	}
	if c.BaseDir == "" {
		errs = append(errs, errors.New("base directory must not be empty"))
	}
	if c.Prefix == "" {
		errs = append(errs, errors.New("working directory prefix must not be empty"))
	}
	if c.MaxHeapSize == "" {
		errs = append(errs, errors.New("max heap size must not be empty"))
	}
	if c.HeapNewSize == "" {
		errs = append(errs, errors.New("heap new size must not be empty"))
	}
	if c.LogLevel == "" {
		errs = append(errs, errors.New("log level must not be empty"))
	}
	if c.LaunchTimeout <= 0 {
		errs = append(errs, fmt.Errorf("launch timeout must be greater than 0, got %s", c.LaunchTimeout))
	}
	if c.OutputWaitDelay <= 0 {
		errs = append(errs, fmt.Errorf("output wait delay must be greater than 0, got %s", c.OutputWaitDelay))
	}
	if c.LockTimeout <= 0 {
		errs = append(errs, fmt.Errorf("lock timeout must be greater than 0, got %s", c.LockTimeout))
	}

	return errors.Join(errs...)
}
