package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// cassandraYAML is the subset of cassandra.yaml that patchConfig rewrites.
type cassandraYAML struct {
	RPCPort              int      `yaml:"rpc_port"`
	StoragePort          int      `yaml:"storage_port"`
	DataFileDirectories  []string `yaml:"data_file_directories"`
	CommitlogDirectory   string   `yaml:"commitlog_directory"`
	SavedCachesDirectory string   `yaml:"saved_caches_directory"`
}

// verifyConfig parses the patched cassandra.yaml and checks that the server
// will listen on inst's ports and keep its state inside inst.Dir. Directory
// keys that are absent are not checked; Cassandra then falls back to its
// built-in defaults, which is the distribution's business.
func verifyConfig(inst *Instance) error {
	path := filepath.Join(inst.ConfDir, CassandraYAMLFile)
	data, err := os.ReadFile(path) //nolint:gosec // G304: config inside our working directory
	if err != nil {
		return fsError("read "+CassandraYAMLFile, err)
	}

	var c cassandraYAML
	if err := yaml.Unmarshal(data, &c); err != nil {
		return fmt.Errorf("parse %s: %w: %w", path, ErrConfigPatch, err)
	}

	if c.RPCPort != inst.Port {
		return fmt.Errorf("%s: rpc_port is %d, want %d: %w", path, c.RPCPort, inst.Port, ErrConfigPatch)
	}
	if c.StoragePort != inst.StoragePort {
		return fmt.Errorf("%s: storage_port is %d, want %d: %w", path, c.StoragePort, inst.StoragePort, ErrConfigPatch)
	}

	dirs := append([]string{c.CommitlogDirectory, c.SavedCachesDirectory}, c.DataFileDirectories...)
	for _, d := range dirs {
		if d != "" && !within(inst.Dir, d) {
			return fmt.Errorf("%s: directory %s outside %s: %w", path, d, inst.Dir, ErrConfigPatch)
		}
	}
	return nil
}

// within reports whether path lies inside dir.
func within(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}
