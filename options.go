package casstest

import (
	"fmt"
	"time"
)

// requirePositive panics if d <= 0 with a descriptive message.
func requirePositive(name string, d time.Duration) {
	if d <= 0 {
		panic(fmt.Sprintf("casstest: %s must be greater than 0, got %v", name, d))
	}
}

// requireNonEmpty panics if s is empty with a descriptive message.
func requireNonEmpty(name, s string) {
	if s == "" {
		panic(fmt.Sprintf("casstest: %s must not be empty", name))
	}
}

// Option configures a Provisioner during construction via New.
//
// With* functions panic on invalid input (empty paths, non-positive
// durations). Option values are typically constants, so an invalid value is
// a programmer error and fails at construction rather than on first Start.
type Option func(*config)

// WithArchive sets the path of the distribution tarball (.tar.gz).
// Relative paths are resolved against the working directory at Start time.
//
// Default: DefaultArchive.
//
// Panics if path is empty.
func WithArchive(path string) Option {
	requireNonEmpty("archive path", path)
	return func(c *config) {
		c.Archive = path
	}
}

// WithDistribution sets the name of the single top-level directory inside
// the archive, e.g. "apache-cassandra-1.1.12".
//
// Panics if name is empty.
func WithDistribution(name string) Option {
	requireNonEmpty("distribution directory", name)
	return func(c *config) {
		c.Distribution = name
	}
}

// WithBaseDir sets the directory that holds working directories. Useful in
// CI, where several suites on one machine would otherwise share the system
// temp directory.
//
// Default: os.TempDir().
//
// Panics if dir is empty.
func WithBaseDir(dir string) Option {
	requireNonEmpty("base directory", dir)
	return func(c *config) {
		c.BaseDir = dir
	}
}

// WithPrefix sets the working directory name prefix.
//
// Panics if prefix is empty.
func WithPrefix(prefix string) Option {
	requireNonEmpty("working directory prefix", prefix)
	return func(c *config) {
		c.Prefix = prefix
	}
}

// WithHeap sets the JVM heap sizes written to cassandra-env.sh, in the
// script's own notation ("256M", "1G").
//
// Default: DefaultMaxHeapSize, DefaultHeapNewSize.
//
// Panics if either size is empty.
func WithHeap(maxHeap, newSize string) Option {
	requireNonEmpty("max heap size", maxHeap)
	requireNonEmpty("heap new size", newSize)
	return func(c *config) {
		c.MaxHeapSize = maxHeap
		c.HeapNewSize = newSize
	}
}

// WithLogLevel sets the log4j root level of the server.
//
// Panics if level is empty.
func WithLogLevel(level string) Option {
	requireNonEmpty("log level", level)
	return func(c *config) {
		c.LogLevel = level
	}
}

// WithLaunchTimeout bounds how long Start waits for the launcher script.
// It does not cover server readiness.
//
// Panics if d <= 0.
func WithLaunchTimeout(d time.Duration) Option {
	requirePositive("launch timeout", d)
	return func(c *config) {
		c.LaunchTimeout = d
	}
}

// WithOutputWaitDelay bounds how long Start keeps collecting launcher output
// after the script has exited but the backgrounded server still holds its
// output streams.
//
// Panics if d <= 0.
func WithOutputWaitDelay(d time.Duration) Option {
	requirePositive("output wait delay", d)
	return func(c *config) {
		c.OutputWaitDelay = d
	}
}

// WithLockTimeout bounds how long Start and Stop wait for a concurrent
// operation on the same port.
//
// Panics if d <= 0.
func WithLockTimeout(d time.Duration) Option {
	requirePositive("lock timeout", d)
	return func(c *config) {
		c.LockTimeout = d
	}
}
