package core

import (
	"testing"
	"time"

	"github.com/giantswarm/casstest/internal/netutil"
	"github.com/giantswarm/casstest/internal/testutil"
)

// testConfig returns a valid Config rooted in a fresh temp directory and
// pointing at a fake distribution archive.
func testConfig(t *testing.T) Config {
	t.Helper()
	return Config{
		Archive:         testutil.CassandraArchive(t, t.TempDir()),
		Distribution:    testutil.Distribution,
		BaseDir:         t.TempDir(),
		Prefix:          "cassandra",
		MaxHeapSize:     "256M",
		HeapNewSize:     "100M",
		LogLevel:        "DEBUG",
		LaunchTimeout:   30 * time.Second,
		OutputWaitDelay: time.Second,
		LockTimeout:     5 * time.Second,
	}
}

func freePort(t *testing.T) int {
	t.Helper()
	port, err := netutil.FreePort()
	if err != nil {
		t.Fatalf("allocate port: %v", err)
	}
	return port
}
