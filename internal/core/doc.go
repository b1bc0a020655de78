// Package core implements casstest's provisioning and teardown of Cassandra
// test instances.
//
// A Provisioner lays out a working directory per client port, unpacks the
// distribution into it, points the server's configuration at that directory
// and at freshly reserved ports, and launches the server detached. Stop finds
// the server again through the pid it recorded and removes everything.
package core
