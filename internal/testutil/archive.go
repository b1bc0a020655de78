// Package testutil builds fake Cassandra distributions for tests.
//
// The fake keeps the layout and default config literals of
// apache-cassandra-1.1.7 but replaces bin/cassandra with a POSIX shell script
// that backgrounds a long sleep and records its pid, which is all casstest
// needs from the real launcher.
package testutil

import (
	"archive/tar"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
)

// Distribution is the top-level directory name of the fake archive.
const Distribution = "apache-cassandra-1.1.7"

// Entry is one file in a test archive. Names ending in "/" are directories.
type Entry struct {
	Name     string
	Body     string
	Mode     int64
	Linkname string // non-empty makes the entry a symlink
}

// CassandraYAML is a trimmed cassandra.yaml carrying the literals casstest
// rewrites.
const CassandraYAML = `cluster_name: 'Test Cluster'
initial_token:
partitioner: org.apache.cassandra.dht.RandomPartitioner
data_file_directories:
    - /var/lib/cassandra/data
commitlog_directory: /var/lib/cassandra/commitlog
saved_caches_directory: /var/lib/cassandra/saved_caches
storage_port: 7000
ssl_storage_port: 7001
listen_address: localhost
rpc_address: localhost
rpc_port: 9160
`

// Log4jProperties is a trimmed log4j-server.properties.
const Log4jProperties = `log4j.rootLogger=INFO,stdout,R
log4j.appender.stdout=org.apache.log4j.ConsoleAppender
log4j.appender.stdout.layout.ConversionPattern=%5p %d{HH:mm:ss,SSS} %m%n
log4j.appender.R=org.apache.log4j.RollingFileAppender
log4j.appender.R.File=/var/log/cassandra/system.log
log4j.appender.R.layout.ConversionPattern=%5p [%t] %d{ISO8601} %F (line %L) %m%n
`

// CassandraEnv is a trimmed cassandra-env.sh.
const CassandraEnv = `#MAX_HEAP_SIZE="4G"
#HEAP_NEWSIZE="800M"
JMX_PORT="7199"
JVM_OPTS="$JVM_OPTS -Dcom.sun.management.jmxremote.port=$JMX_PORT"
`

// LauncherScript stands in for bin/cassandra. Invoked as "cassandra -p FILE",
// it backgrounds a sleep with its output detached and writes the sleep's pid
// to FILE, mirroring how the real script backgrounds the JVM.
const LauncherScript = `#!/bin/sh
pidfile=""
while [ $# -gt 0 ]; do
    case "$1" in
        -p) pidfile="$2"; shift 2 ;;
        *) shift ;;
    esac
done
sleep 300 >/dev/null 2>&1 </dev/null &
if [ -n "$pidfile" ]; then
    echo $! > "$pidfile"
fi
echo "launched $!"
`

// CassandraEntries returns the entries of a fake distribution rooted at
// Distribution.
func CassandraEntries() []Entry {
	return []Entry{
		{Name: Distribution + "/", Mode: 0o755},
		{Name: Distribution + "/bin/", Mode: 0o755},
		{Name: Distribution + "/bin/cassandra", Body: LauncherScript, Mode: 0o755},
		{Name: Distribution + "/conf/", Mode: 0o755},
		{Name: Distribution + "/conf/cassandra.yaml", Body: CassandraYAML, Mode: 0o644},
		{Name: Distribution + "/conf/log4j-server.properties", Body: Log4jProperties, Mode: 0o644},
		{Name: Distribution + "/conf/cassandra-env.sh", Body: CassandraEnv, Mode: 0o644},
		{Name: Distribution + "/lib/", Mode: 0o755},
		{Name: Distribution + "/lib/README", Body: "jars go here\n", Mode: 0o644},
	}
}

// WriteArchive writes a .tar.gz containing entries into dir and returns its
// path.
func WriteArchive(t *testing.T, dir, name string, entries []Entry) string {
	t.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path) //nolint:gosec // G304: test-controlled path
	if err != nil {
		t.Fatalf("create archive: %v", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			t.Fatalf("close archive: %v", err)
		}
	}()

	zw := gzip.NewWriter(f)
	tw := tar.NewWriter(zw)
	for _, e := range entries {
		hdr := &tar.Header{Name: e.Name, Mode: e.Mode}
		switch {
		case e.Linkname != "":
			hdr.Typeflag = tar.TypeSymlink
			hdr.Linkname = e.Linkname
		case len(e.Name) > 0 && e.Name[len(e.Name)-1] == '/':
			hdr.Typeflag = tar.TypeDir
		default:
			hdr.Typeflag = tar.TypeReg
			hdr.Size = int64(len(e.Body))
		}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatalf("write header %s: %v", e.Name, err)
		}
		if hdr.Typeflag == tar.TypeReg {
			if _, err := tw.Write([]byte(e.Body)); err != nil {
				t.Fatalf("write body %s: %v", e.Name, err)
			}
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("close tar: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close gzip: %v", err)
	}
	return path
}

// CassandraArchive writes the fake distribution into dir and returns the
// archive path.
func CassandraArchive(t *testing.T, dir string) string {
	t.Helper()
	return WriteArchive(t, dir, Distribution+"-bin.tar.gz", CassandraEntries())
}
