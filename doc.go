// Package casstest provisions throwaway Apache Cassandra 1.1.x servers for
// test suites.
//
// Each instance is identified by its client (Thrift RPC) port. Start unpacks
// the distribution tarball into a fresh working directory, rewrites the
// server configuration so that every port and every data path is private to
// that directory, and runs the distribution's launcher, which backgrounds the
// JVM. Stop kills the recorded process and deletes the directory.
//
// # Basic Usage
//
//	import "github.com/giantswarm/casstest"
//
//	ctx := context.Background()
//
//	port, err := casstest.FreePort()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	inst, err := casstest.Start(ctx, port)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer casstest.Stop(ctx, port)
//
//	// Start does not wait for the server to accept connections.
//	if err := casstest.WaitReady(ctx, inst, time.Minute); err != nil {
//	    log.Fatal(err)
//	}
//
// # Custom Layout
//
// The package-level functions use a default Provisioner that expects
// apache-cassandra-1.1.7-bin.tar.gz in the current directory. Use New to
// point elsewhere:
//
//	p := casstest.New(
//	    casstest.WithArchive("/opt/dist/apache-cassandra-1.1.7-bin.tar.gz"),
//	    casstest.WithBaseDir(t.TempDir()),
//	    casstest.WithHeap("512M", "128M"),
//	)
//	inst, err := p.Start(ctx, port)
//
// # Limitations
//
// Free ports are found by binding port 0 and releasing it, so another
// process can take a port between reservation and the server binding it.
// A failed Start is not rolled back; the working directory stays behind
// and blocks the port until it is removed. Stop sends SIGKILL to whatever
// pid the instance recorded without checking that it still belongs to the
// server.
package casstest
