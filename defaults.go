package casstest

import "time"

// Default configuration values for New and the package-level Start and
// Stop. These constants are exported so callers can build configurations
// relative to them.
const (
	// DefaultArchive is the distribution tarball, resolved against the
	// current working directory.
	DefaultArchive = "apache-cassandra-1.1.7-bin.tar.gz"

	// DefaultDistribution is the top-level directory inside DefaultArchive.
	DefaultDistribution = "apache-cassandra-1.1.7"

	// DefaultPrefix names working directories: <base>/<prefix>.<port>.
	DefaultPrefix = "cassandra"

	// DefaultMaxHeapSize and DefaultHeapNewSize size the JVM heap; small
	// enough for several instances on one CI machine.
	DefaultMaxHeapSize = "256M"
	DefaultHeapNewSize = "100M"

	// DefaultLogLevel is the log4j root level written to the server config.
	DefaultLogLevel = "DEBUG"

	// DefaultLaunchTimeout bounds the launcher script. The script only
	// backgrounds the JVM, so it normally returns within a second.
	DefaultLaunchTimeout = 30 * time.Second

	// DefaultOutputWaitDelay bounds how long launcher output is collected
	// after the script exits.
	DefaultOutputWaitDelay = time.Second

	// DefaultLockTimeout bounds waiting for another Start or Stop on the
	// same port.
	DefaultLockTimeout = 30 * time.Second

	// DefaultReadyInterval is the poll interval of WaitReady.
	DefaultReadyInterval = 250 * time.Millisecond
)
