package netutil

import (
	"fmt"
	"net"
	"testing"
)

func TestReserve(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		n       int
		wantErr bool
	}{
		"single port":  {n: 1},
		"storage+jmx":  {n: 2},
		"several":      {n: 5},
		"zero count":   {n: 0, wantErr: true},
		"negative one": {n: -1, wantErr: true},
	}

	for name, tc := range tests {
		name, tc := name, tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			r, err := Reserve(tc.n, nil)
			if tc.wantErr {
				if err == nil {
					r.Release()
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Reserve(%d) error: %v", tc.n, err)
			}
			defer r.Release()

			ports := r.Ports()
			if len(ports) != tc.n {
				t.Fatalf("got %d ports, want %d", len(ports), tc.n)
			}
			seen := make(map[int]struct{}, len(ports))
			for _, p := range ports {
				if p <= 0 || p > 65535 {
					t.Errorf("port %d out of range", p)
				}
				if _, dup := seen[p]; dup {
					t.Errorf("duplicate port %d in %v", p, ports)
				}
				seen[p] = struct{}{}
			}
		})
	}
}

func TestReservation_HoldsPortsUntilRelease(t *testing.T) {
	t.Parallel()

	r, err := Reserve(1, nil)
	if err != nil {
		t.Fatalf("Reserve() error: %v", err)
	}
	port := r.Ports()[0]

	if l, err := net.Listen("tcp", fmt.Sprintf(":%d", port)); err == nil {
		_ = l.Close()
		r.Release()
		t.Fatalf("port %d should be held by the reservation", port)
	}

	r.Release()

	l, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		t.Fatalf("port %d should be bindable after Release: %v", port, err)
	}
	_ = l.Close()
}

func TestReservation_ReleaseIdempotent(t *testing.T) {
	t.Parallel()

	r, err := Reserve(2, nil)
	if err != nil {
		t.Fatalf("Reserve() error: %v", err)
	}
	r.Release()
	r.Release()
}

func TestReservation_PortsReturnsCopy(t *testing.T) {
	t.Parallel()

	r, err := Reserve(1, nil)
	if err != nil {
		t.Fatalf("Reserve() error: %v", err)
	}
	defer r.Release()

	ports := r.Ports()
	ports[0] = -1
	if got := r.Ports()[0]; got == -1 {
		t.Error("Ports() exposed internal slice")
	}
}

func TestFreePort(t *testing.T) {
	t.Parallel()

	port, err := FreePort()
	if err != nil {
		t.Fatalf("FreePort() error: %v", err)
	}
	if port <= 0 || port > 65535 {
		t.Fatalf("port %d out of range", port)
	}
}
