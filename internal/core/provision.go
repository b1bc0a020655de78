package core

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/giantswarm/casstest/internal/fileutil"
	"github.com/giantswarm/casstest/internal/netutil"
	"github.com/giantswarm/casstest/internal/process"
	"github.com/gofrs/flock"
)

// Provisioner starts and stops Cassandra instances laid out under a common
// base directory. Start and Stop are synchronous; calls for distinct ports
// are independent, and calls for the same port are serialized across
// processes by a lock file next to the working directory.
type Provisioner struct {
	cfg Config
}

// NewProvisioner returns a Provisioner for cfg. It performs no I/O.
// Panics if cfg is invalid, since configuration is a programmer error.
func NewProvisioner(cfg Config) *Provisioner {
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("casstest: invalid provisioner config: %v", err))
	}
	return &Provisioner{cfg: cfg}
}

// Config returns the provisioner's configuration.
func (p *Provisioner) Config() Config {
	return p.cfg
}

// Dir returns the working directory an instance on port uses.
func (p *Provisioner) Dir(port int) string {
	return workDir(p.cfg, port)
}

// Start provisions and launches an instance whose client port is port.
//
// It creates the working directory (failing with ErrFilesystem if it
// already exists), unpacks the distribution, creates the commit, data and
// saved_caches directories, reserves a storage and a JMX port, rewrites the
// configuration and runs the launcher. Start returns once the launcher
// script has returned; it does not wait for the server to accept
// connections.
//
// On failure nothing is rolled back: a partially provisioned working
// directory may remain and must be removed by the caller.
func (p *Provisioner) Start(ctx context.Context, port int) (*Instance, error) {
	if err := validatePort(port); err != nil {
		return nil, err
	}
	log := Logger().With("port", port)

	if err := fileutil.EnsureDir(p.cfg.BaseDir); err != nil {
		return nil, fsError("prepare base directory", err)
	}
	fl, err := p.lock(ctx, port)
	if err != nil {
		return nil, err
	}
	defer releaseFileLock(log, fl)

	inst := newInstance(p.cfg, port)

	if err := fileutil.CreateDir(inst.Dir); err != nil {
		return nil, fsError("create working directory", err)
	}

	log.Info("installing cassandra", "dir", inst.Dir, "archive", p.cfg.Archive)
	if err := fileutil.ExtractTarGz(p.cfg.Archive, inst.Dir); err != nil {
		return nil, fsError("extract distribution", err)
	}
	if _, err := os.Stat(inst.ConfDir); err != nil {
		return nil, fsError(fmt.Sprintf("locate %s in archive", p.cfg.Distribution), err)
	}

	if err := fileutil.CreateDirs(inst.Dir, CommitDirName, DataDirName, SavedCachesDirName); err != nil {
		return nil, fsError("create data directories", err)
	}

	// Hold the reserved ports while the config is written; release right
	// before launch so the server can bind them.
	res, err := netutil.Reserve(2, log)
	if err != nil {
		return nil, fmt.Errorf("reserve ports: %w", err)
	}
	defer res.Release()
	ports := res.Ports()
	inst.StoragePort, inst.JMXPort = ports[0], ports[1]

	log.Info("cassandra client port", "storage_port", inst.StoragePort, "jmx_port", inst.JMXPort)

	if err := patchConfig(p.cfg, inst); err != nil {
		return nil, err
	}
	if err := verifyConfig(inst); err != nil {
		return nil, err
	}

	res.Release()
	if err := p.launch(ctx, inst, log); err != nil {
		return nil, err
	}
	return inst, nil
}

// launch runs the distribution's start script, which backgrounds the server
// and writes its pid to inst.PIDFile. The script's exit status is logged but
// not treated as a failure; a server that did not come up shows as a
// missing pid record at Stop or as a refused connection for the caller.
func (p *Provisioner) launch(ctx context.Context, inst *Instance, log *slog.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, p.cfg.LaunchTimeout)
	defer cancel()

	res, err := process.Run(ctx, process.Command{
		Argv:      []string{inst.Launcher(), "-p", inst.PIDFile},
		Dir:       inst.Dir,
		WaitDelay: p.cfg.OutputWaitDelay,
		Detach:    true,
	})
	if err != nil {
		return fmt.Errorf("launch cassandra: %w", err)
	}

	log.Debug("cassandra launcher finished",
		"exit_code", res.ExitCode,
		"stdout", strings.TrimSpace(string(res.Stdout)),
		"stderr", strings.TrimSpace(string(res.Stderr)))
	if res.ExitCode != 0 {
		log.Warn("cassandra launcher exited non-zero", "exit_code", res.ExitCode)
	}
	return nil
}

// lock takes the instance lock for port, bounded by LockTimeout.
func (p *Provisioner) lock(ctx context.Context, port int) (*flock.Flock, error) {
	ctx, cancel := context.WithTimeout(ctx, p.cfg.LockTimeout)
	defer cancel()

	fl, err := acquireFileLock(ctx, lockPath(p.cfg, port))
	if err != nil {
		return nil, fmt.Errorf("lock instance %d: %w", port, err)
	}
	return fl, nil
}
