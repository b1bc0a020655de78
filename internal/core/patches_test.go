package core

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/giantswarm/casstest/internal/testutil"
)

// layoutConf writes the fake distribution's config files under a fresh
// instance directory and returns the instance with ports assigned.
func layoutConf(t *testing.T, yaml string) (Config, *Instance) {
	t.Helper()
	cfg := validConfig()
	cfg.BaseDir = t.TempDir()
	inst := newInstance(cfg, 40123)
	inst.StoragePort, inst.JMXPort = 40124, 40125

	if err := os.MkdirAll(inst.ConfDir, 0o755); err != nil {
		t.Fatalf("mkdir conf: %v", err)
	}
	files := map[string]string{
		CassandraYAMLFile: yaml,
		Log4jFile:         testutil.Log4jProperties,
		CassandraEnvFile:  testutil.CassandraEnv,
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(inst.ConfDir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return cfg, inst
}

func readConf(t *testing.T, inst *Instance, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(inst.ConfDir, name))
	if err != nil {
		t.Fatalf("read %s: %v", name, err)
	}
	return string(data)
}

func TestPatchConfig(t *testing.T) {
	t.Parallel()
	cfg, inst := layoutConf(t, testutil.CassandraYAML)

	if err := patchConfig(cfg, inst); err != nil {
		t.Fatalf("patchConfig() error: %v", err)
	}

	type check struct {
		file    string
		present []string
		absent  []string
	}
	checks := []check{
		{
			file: CassandraYAMLFile,
			present: []string{
				"rpc_port: 40123",
				"storage_port: 40124",
				"- " + filepath.Join(inst.Dir, "data"),
				"commitlog_directory: " + filepath.Join(inst.Dir, "commit"),
				"saved_caches_directory: " + filepath.Join(inst.Dir, "saved_caches"),
				"ssl_storage_port: 7001",
			},
			absent: []string{"rpc_port: 9160", "storage_port: 7000", "/var/lib/cassandra"},
		},
		{
			file:    Log4jFile,
			present: []string{"log4j.rootLogger=DEBUG,stdout,R", "File=" + inst.LogFile},
			absent:  []string{"INFO", "/var/log/cassandra"},
		},
		{
			file:    CassandraEnvFile,
			present: []string{`JMX_PORT="40125"`, "\nMAX_HEAP_SIZE=\"256M\"", "\nHEAP_NEWSIZE=\"100M\""},
			absent:  []string{`JMX_PORT="7199"`, `#MAX_HEAP_SIZE`, `#HEAP_NEWSIZE`},
		},
	}

	for _, c := range checks {
		got := readConf(t, inst, c.file)
		for _, s := range c.present {
			if !strings.Contains("\n"+got, s) {
				t.Errorf("%s: missing %q in:\n%s", c.file, s, got)
			}
		}
		for _, s := range c.absent {
			if strings.Contains(got, s) {
				t.Errorf("%s: still contains %q", c.file, s)
			}
		}
	}
}

func TestPatchConfig_MissingFile(t *testing.T) {
	t.Parallel()
	cfg, inst := layoutConf(t, testutil.CassandraYAML)
	if err := os.Remove(filepath.Join(inst.ConfDir, CassandraEnvFile)); err != nil {
		t.Fatalf("remove: %v", err)
	}

	err := patchConfig(cfg, inst)
	if !errors.Is(err, ErrFilesystem) {
		t.Fatalf("error = %v, want %v", err, ErrFilesystem)
	}
}

func TestVerifyConfig(t *testing.T) {
	t.Parallel()

	t.Run("patched config passes", func(t *testing.T) {
		t.Parallel()
		cfg, inst := layoutConf(t, testutil.CassandraYAML)
		if err := patchConfig(cfg, inst); err != nil {
			t.Fatalf("patchConfig() error: %v", err)
		}
		if err := verifyConfig(inst); err != nil {
			t.Fatalf("verifyConfig() error: %v", err)
		}
	})

	tests := map[string]string{
		"unpatched rpc port": strings.Replace(testutil.CassandraYAML, "rpc_port: 9160", "rpc_port:  9160", 1),
		"unpatched storage":  strings.Replace(testutil.CassandraYAML, "storage_port: 7000", "storage_port:  7000", 1),
		"foreign data dir":   strings.Replace(testutil.CassandraYAML, "/var/lib/cassandra/data", "/srv/cassandra/data", 1),
		"not yaml":           "rpc_port: [unterminated\n",
	}
	for name, yaml := range tests {
		name, yaml := name, yaml
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			cfg, inst := layoutConf(t, yaml)
			if err := patchConfig(cfg, inst); err != nil {
				t.Fatalf("patchConfig() error: %v", err)
			}
			if err := verifyConfig(inst); !errors.Is(err, ErrConfigPatch) {
				t.Fatalf("verifyConfig() error = %v, want %v", err, ErrConfigPatch)
			}
		})
	}
}

func TestWithin(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		path string
		want bool
	}{
		"child":        {path: "/tmp/cassandra.1/data", want: true},
		"nested":       {path: "/tmp/cassandra.1/a/b", want: true},
		"itself":       {path: "/tmp/cassandra.1", want: true},
		"sibling":      {path: "/tmp/cassandra.10/data", want: false},
		"parent":       {path: "/tmp", want: false},
		"system path":  {path: "/var/lib/cassandra/data", want: false},
		"dotdot trick": {path: "/tmp/cassandra.1/../x", want: false},
	}
	for name, tc := range tests {
		name, tc := name, tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			if got := within("/tmp/cassandra.1", tc.path); got != tc.want {
				t.Errorf("within(%q) = %v, want %v", tc.path, got, tc.want)
			}
		})
	}
}
