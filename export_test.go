package casstest

import "time"

// ResetForTesting drops the default provisioner so that the next Default
// call builds a fresh one. Exported only for package casstest_test.
func ResetForTesting() { resetForTesting() }

// ConfigSnapshot holds a copy of config fields for test assertions.
// Exported only via export_test.go so that the _test package can verify
// option closures actually mutate the config without accessing internals.
type ConfigSnapshot struct {
	Archive         string
	Distribution    string
	BaseDir         string
	Prefix          string
	MaxHeapSize     string
	HeapNewSize     string
	LogLevel        string
	LaunchTimeout   time.Duration
	OutputWaitDelay time.Duration
	LockTimeout     time.Duration
}

// ApplyOptionsForTesting creates a default config, applies the given
// options, and returns a ConfigSnapshot of the result.
func ApplyOptionsForTesting(opts ...Option) ConfigSnapshot {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return ConfigSnapshot{
		Archive:         cfg.Archive,
		Distribution:    cfg.Distribution,
		BaseDir:         cfg.BaseDir,
		Prefix:          cfg.Prefix,
		MaxHeapSize:     cfg.MaxHeapSize,
		HeapNewSize:     cfg.HeapNewSize,
		LogLevel:        cfg.LogLevel,
		LaunchTimeout:   cfg.LaunchTimeout,
		OutputWaitDelay: cfg.OutputWaitDelay,
		LockTimeout:     cfg.LockTimeout,
	}
}
