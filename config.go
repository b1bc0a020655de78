package casstest

import (
	"os"

	"github.com/giantswarm/casstest/internal/core"
)

// config holds configuration for a Provisioner. This unexported type wraps
// core.Config via embedding, keeping internal/core types out of the public
// API signature while avoiding field-by-field duplication.
type config struct {
	core.Config
}

// toCoreConfig returns the embedded core.Config.
func (c config) toCoreConfig() core.Config {
	return c.Config
}

// defaultConfig returns a config populated with all default values. The
// base directory is the system temp directory, so working directories land
// at /tmp/cassandra.<port> on most systems.
func defaultConfig() config {
	return config{core.Config{
		Archive:         DefaultArchive,
		Distribution:    DefaultDistribution,
		BaseDir:         os.TempDir(),
		Prefix:          DefaultPrefix,
		MaxHeapSize:     DefaultMaxHeapSize,
		HeapNewSize:     DefaultHeapNewSize,
		LogLevel:        DefaultLogLevel,
		LaunchTimeout:   DefaultLaunchTimeout,
		OutputWaitDelay: DefaultOutputWaitDelay,
		LockTimeout:     DefaultLockTimeout,
	}}
}
