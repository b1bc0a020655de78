package core

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/giantswarm/casstest/internal/textpatch"
)

// Config files rewritten before launch, relative to the conf directory.
const (
	CassandraYAMLFile = "cassandra.yaml"
	Log4jFile         = "log4j-server.properties"
	CassandraEnvFile  = "cassandra-env.sh"
)

// Literals shipped in the stock 1.1.x configuration.
const (
	defaultRPCPort        = "rpc_port: 9160"
	defaultStoragePort    = "storage_port: 7000"
	defaultDataDir        = "/var/lib/cassandra/data"
	defaultCommitLogDir   = "/var/lib/cassandra/commitlog"
	defaultSavedCachesDir = "/var/lib/cassandra/saved_caches"
	defaultSystemLog      = "/var/log/cassandra/system.log"
	defaultLogLevel       = "INFO"
	defaultJMXPort        = `JMX_PORT="7199"`
	defaultMaxHeapSize    = `#MAX_HEAP_SIZE="4G"`
	defaultHeapNewSize    = `#HEAP_NEWSIZE="800M"`
)

// filePatch is the ordered list of replacements for one config file.
type filePatch struct {
	file  string
	repls []textpatch.Replacement
}

// configPatches returns the rewrites that point a stock distribution at
// inst's ports and working directory. Files are patched in order, and
// within a file the replacements apply cumulatively.
func configPatches(cfg Config, inst *Instance) []filePatch {
	return []filePatch{
		{
			file: CassandraYAMLFile,
			repls: []textpatch.Replacement{
				textpatch.R(defaultRPCPort, "rpc_port: "+strconv.Itoa(inst.Port)),
				textpatch.R(defaultStoragePort, "storage_port: "+strconv.Itoa(inst.StoragePort)),
				textpatch.R(defaultDataDir, filepath.Join(inst.Dir, DataDirName)),
				textpatch.R(defaultCommitLogDir, filepath.Join(inst.Dir, CommitDirName)),
				textpatch.R(defaultSavedCachesDir, filepath.Join(inst.Dir, SavedCachesDirName)),
			},
		},
		{
			file: Log4jFile,
			repls: []textpatch.Replacement{
				textpatch.R(defaultSystemLog, inst.LogFile),
				textpatch.R(defaultLogLevel, cfg.LogLevel),
			},
		},
		{
			file: CassandraEnvFile,
			repls: []textpatch.Replacement{
				textpatch.R(defaultJMXPort, fmt.Sprintf(`JMX_PORT="%d"`, inst.JMXPort)),
				textpatch.R(defaultMaxHeapSize, fmt.Sprintf(`MAX_HEAP_SIZE="%s"`, cfg.MaxHeapSize)),
				textpatch.R(defaultHeapNewSize, fmt.Sprintf(`HEAP_NEWSIZE="%s"`, cfg.HeapNewSize)),
			},
		},
	}
}

// patchConfig applies configPatches to the files under inst.ConfDir.
func patchConfig(cfg Config, inst *Instance) error {
	for _, p := range configPatches(cfg, inst) {
		if err := textpatch.Apply(filepath.Join(inst.ConfDir, p.file), p.repls); err != nil {
			return fsError("patch "+p.file, err)
		}
	}
	return nil
}
