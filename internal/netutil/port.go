package netutil

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
)

// listenAddr binds all interfaces, matching the widest address the server
// binds (JMX listens on 0.0.0.0).
const listenAddr = ":0"

// Reservation holds open listeners on kernel-assigned ports. The ports stay
// taken by this process until Release is called.
type Reservation struct {
	listeners []*net.TCPListener
	ports     []int
	log       *slog.Logger
}

// Reserve binds n ephemeral TCP ports and keeps them bound. All n listeners
// are open at the same time, so the returned ports are pairwise distinct.
// If logger is nil, slog.Default() is used.
func Reserve(n int, logger *slog.Logger) (*Reservation, error) {
	if n <= 0 {
		return nil, fmt.Errorf("reserve %d ports: count must be positive", n)
	}
	if logger == nil {
		logger = slog.Default()
	}

	r := &Reservation{log: logger}
	for i := 0; i < n; i++ {
		l, port, err := listen()
		if err != nil {
			r.Release()
			return nil, fmt.Errorf("reserve port %d of %d: %w", i+1, n, err)
		}
		r.listeners = append(r.listeners, l)
		r.ports = append(r.ports, port)
	}
	return r, nil
}

// Ports returns the reserved ports in allocation order.
func (r *Reservation) Ports() []int {
	out := make([]int, len(r.ports))
	copy(out, r.ports)
	return out
}

// Release closes every listener. The ports become available to anyone,
// including the server this reservation was made for. Safe to call more
// than once.
func (r *Reservation) Release() {
	for i, l := range r.listeners {
		if l == nil {
			continue
		}
		if err := l.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			r.log.Warn("close listener after port reservation", "port", r.ports[i], "error", err)
		}
		r.listeners[i] = nil
	}
}

// FreePort returns a port that was free at the time of the call. The
// listener used to find it is already closed.
func FreePort() (int, error) {
	l, port, err := listen()
	if err != nil {
		return 0, err
	}
	if err := l.Close(); err != nil {
		return 0, fmt.Errorf("close listener on port %d: %w", port, err)
	}
	return port, nil
}

// listen asks the kernel for a free port and returns the open listener.
func listen() (*net.TCPListener, int, error) {
	addr, err := net.ResolveTCPAddr("tcp", listenAddr)
	if err != nil {
		return nil, 0, fmt.Errorf("resolve tcp address: %w", err)
	}
	l, err := net.ListenTCP("tcp", addr)
	if err != nil {
		return nil, 0, fmt.Errorf("listen on tcp address: %w", err)
	}
	tcpAddr, ok := l.Addr().(*net.TCPAddr)
	if !ok {
		_ = l.Close()
		return nil, 0, fmt.Errorf("unexpected address type: %T", l.Addr())
	}
	return l, tcpAddr.Port, nil
}
