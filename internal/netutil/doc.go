// Package netutil reserves ephemeral TCP ports for a Cassandra instance.
//
// Ports are obtained by binding port 0 and reading back what the kernel
// assigned. A Reservation keeps its listeners open so that the ports it hands
// out are distinct from each other; once released, nothing stops another
// process from taking a port before the server binds it. casstest accepts
// that window rather than retrying.
package netutil
