package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/giantswarm/casstest"
)

// Duration is a time.Duration that decodes from TOML strings such as "30s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// FileConfig is the TOML config file. Every field is optional; unset fields
// keep the library defaults.
//
//	archive = "/opt/dist/apache-cassandra-1.1.7-bin.tar.gz"
//	base_dir = "/var/tmp/casstest"
//	max_heap_size = "512M"
//	launch_timeout = "1m"
type FileConfig struct {
	Archive         string   `toml:"archive"`
	Distribution    string   `toml:"distribution"`
	BaseDir         string   `toml:"base_dir"`
	Prefix          string   `toml:"prefix"`
	MaxHeapSize     string   `toml:"max_heap_size"`
	HeapNewSize     string   `toml:"heap_new_size"`
	LogLevel        string   `toml:"log_level"`
	LaunchTimeout   Duration `toml:"launch_timeout"`
	OutputWaitDelay Duration `toml:"output_wait_delay"`
	LockTimeout     Duration `toml:"lock_timeout"`
}

// LoadFileConfig decodes the TOML file at path. Unknown keys are an error
// so that typos do not silently fall back to defaults.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	md, err := toml.DecodeFile(path, &fc)
	if err != nil {
		return FileConfig{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("load config %s: unknown keys %v", path, undecoded)
	}
	return fc, nil
}

// Merge returns fc with every non-empty field of override applied.
func (fc FileConfig) Merge(override FileConfig) FileConfig {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&fc.Archive, override.Archive)
	set(&fc.Distribution, override.Distribution)
	set(&fc.BaseDir, override.BaseDir)
	set(&fc.Prefix, override.Prefix)
	set(&fc.MaxHeapSize, override.MaxHeapSize)
	set(&fc.HeapNewSize, override.HeapNewSize)
	set(&fc.LogLevel, override.LogLevel)
	if override.LaunchTimeout.Duration != 0 {
		fc.LaunchTimeout = override.LaunchTimeout
	}
	if override.OutputWaitDelay.Duration != 0 {
		fc.OutputWaitDelay = override.OutputWaitDelay
	}
	if override.LockTimeout.Duration != 0 {
		fc.LockTimeout = override.LockTimeout
	}
	return fc
}

// Options converts fc into provisioner options. Negative durations are
// rejected here rather than left to the option constructors, which panic.
func (fc FileConfig) Options() ([]casstest.Option, error) {
	var errs []error
	for name, d := range map[string]time.Duration{
		"launch_timeout":    fc.LaunchTimeout.Duration,
		"output_wait_delay": fc.OutputWaitDelay.Duration,
		"lock_timeout":      fc.LockTimeout.Duration,
	} {
		if d < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative, got %s", name, d))
		}
	}
	if (fc.MaxHeapSize == "") != (fc.HeapNewSize == "") {
		errs = append(errs, errors.New("max_heap_size and heap_new_size must be set together"))
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	var opts []casstest.Option
	if fc.Archive != "" {
		opts = append(opts, casstest.WithArchive(fc.Archive))
	}
	if fc.Distribution != "" {
		opts = append(opts, casstest.WithDistribution(fc.Distribution))
	}
	if fc.BaseDir != "" {
		opts = append(opts, casstest.WithBaseDir(fc.BaseDir))
	}
	if fc.Prefix != "" {
		opts = append(opts, casstest.WithPrefix(fc.Prefix))
	}
	if fc.MaxHeapSize != "" {
		opts = append(opts, casstest.WithHeap(fc.MaxHeapSize, fc.HeapNewSize))
	}
	if fc.LogLevel != "" {
		opts = append(opts, casstest.WithLogLevel(fc.LogLevel))
	}
	if fc.LaunchTimeout.Duration > 0 {
		opts = append(opts, casstest.WithLaunchTimeout(fc.LaunchTimeout.Duration))
	}
	if fc.OutputWaitDelay.Duration > 0 {
		opts = append(opts, casstest.WithOutputWaitDelay(fc.OutputWaitDelay.Duration))
	}
	if fc.LockTimeout.Duration > 0 {
		opts = append(opts, casstest.WithLockTimeout(fc.LockTimeout.Duration))
	}
	return opts, nil
}
