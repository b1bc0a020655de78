package core

import (
	"fmt"
	"path/filepath"

	"github.com/giantswarm/casstest/internal/process"
)

// Names of the entries Start creates inside a working directory.
const (
	CommitDirName      = "commit"
	DataDirName        = "data"
	SavedCachesDirName = "saved_caches"
	PIDFileName        = "pid"
	LogFileName        = "system.log"
)

// Instance describes one provisioned server: its ports and where its files
// live. It is a plain value; Stop needs only the client port.
type Instance struct {
	Port        int // client (Thrift RPC) port, the instance identifier
	StoragePort int // inter-node storage port
	JMXPort     int // management port

	Dir     string // working directory, removed by Stop
	DistDir string // extracted distribution
	ConfDir string // DistDir/conf
	PIDFile string // written by the launcher, read by Stop
	LogFile string // server log
}

// newInstance derives all paths for port. Ports other than Port are filled
// in by Start once reserved.
func newInstance(cfg Config, port int) *Instance {
	dir := workDir(cfg, port)
	dist := filepath.Join(dir, cfg.Distribution)
	return &Instance{
		Port:    port,
		Dir:     dir,
		DistDir: dist,
		ConfDir: filepath.Join(dist, "conf"),
		PIDFile: filepath.Join(dir, PIDFileName),
		LogFile: filepath.Join(dir, LogFileName),
	}
}

// workDir returns <BaseDir>/<Prefix>.<port>.
func workDir(cfg Config, port int) string {
	return filepath.Join(cfg.BaseDir, fmt.Sprintf("%s.%d", cfg.Prefix, port))
}

// lockPath returns the instance lock file, a sibling of the working
// directory so that removing the directory never removes a held lock.
func lockPath(cfg Config, port int) string {
	return workDir(cfg, port) + ".lock"
}

// Launcher returns the path of the server start script.
func (i *Instance) Launcher() string {
	return filepath.Join(i.DistDir, "bin", "cassandra")
}

// PID reads the recorded process id.
func (i *Instance) PID() (int, error) {
	return process.ReadPIDFile(i.PIDFile)
}

// Address returns the client endpoint as host:port on the loopback interface.
func (i *Instance) Address() string {
	return fmt.Sprintf("127.0.0.1:%d", i.Port)
}
