package casstest

import (
	"context"
	"sync"

	"github.com/giantswarm/casstest/internal/core"
	"github.com/giantswarm/casstest/internal/netutil"
)

// Instance describes a started server: its client, storage and JMX ports
// and the paths of its working directory, pid record and log.
type Instance = core.Instance

// Compile-time interface satisfaction check.
var _ Controller = (*Provisioner)(nil)

// Provisioner starts and stops Cassandra instances with one configuration.
// It is safe for concurrent use; operations on distinct ports are
// independent, and operations on the same port are serialized, also across
// processes sharing the base directory.
//
// The core.Provisioner is stored as a named field rather than embedded so
// that its internal methods stay out of the public API.
type Provisioner struct {
	p *core.Provisioner
}

// New returns a Provisioner configured by opts on top of the defaults. It
// performs no I/O.
//
// Panics if any option receives an invalid value. See individual With*
// functions for constraints.
func New(opts ...Option) *Provisioner {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Provisioner{p: core.NewProvisioner(cfg.toCoreConfig())}
}

// Start provisions and launches an instance listening for clients on port.
//
// The working directory must not exist: a second Start on a port returns an
// error matching both ErrFilesystem and fs.ErrExist and leaves the first
// instance untouched. Start returns once the launcher has backgrounded the
// server; use WaitReady to wait for it to accept connections.
//
// A failed Start is not rolled back. Remove Dir(port) before retrying.
func (p *Provisioner) Start(ctx context.Context, port int) (*Instance, error) {
	return p.p.Start(ctx, port)
}

// Stop kills the instance on port with SIGKILL and removes its working
// directory. It returns ErrNotFound if the port has no pid record and
// ErrInvalidPID if the record is corrupt; in both cases nothing is removed.
func (p *Provisioner) Stop(ctx context.Context, port int) error {
	return p.p.Stop(ctx, port)
}

// Dir returns the working directory used for port.
func (p *Provisioner) Dir(port int) string {
	return p.p.Dir(port)
}

// Default provisioner state for the package-level Start and Stop.
// defaultMu protects both defaultProv and defaultOnce so that
// resetForTesting is concurrency-safe with Default.
var (
	defaultMu   sync.Mutex
	defaultProv *Provisioner
	defaultOnce sync.Once
)

// Default returns the Provisioner behind the package-level Start and Stop,
// created with all defaults on first use.
func Default() *Provisioner {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	defaultOnce.Do(func() {
		defaultProv = New()
	})
	return defaultProv
}

// resetForTesting drops the default provisioner so that the next Default
// call builds a fresh one. It must only be called from tests.
func resetForTesting() {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	defaultProv = nil
	defaultOnce = sync.Once{}
}

// Start starts an instance on port with the default provisioner.
func Start(ctx context.Context, port int) (*Instance, error) {
	return Default().Start(ctx, port)
}

// Stop stops the instance on port with the default provisioner.
func Stop(ctx context.Context, port int) error {
	return Default().Stop(ctx, port)
}

// FreePort returns a TCP port that was free when checked, for use as an
// instance's client port. The port is not held; another process may take it
// before Start.
func FreePort() (int, error) {
	return netutil.FreePort()
}
