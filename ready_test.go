//go:build !windows

package casstest_test

import (
	"context"
	"errors"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/giantswarm/casstest"
)

// fakeInstance returns an Instance whose pid record holds pid, without any
// distribution behind it.
func fakeInstance(t *testing.T, port, pid int) *casstest.Instance {
	t.Helper()
	dir := t.TempDir()
	inst := &casstest.Instance{
		Port:    port,
		Dir:     dir,
		PIDFile: filepath.Join(dir, "pid"),
	}
	if pid > 0 {
		if err := os.WriteFile(inst.PIDFile, []byte(strconv.Itoa(pid)+"\n"), 0o644); err != nil {
			t.Fatalf("write pid file: %v", err)
		}
	}
	return inst
}

// exitedPID returns the pid of a child that has exited and been reaped.
func exitedPID(t *testing.T) int {
	t.Helper()
	cmd := exec.Command("true")
	if err := cmd.Run(); err != nil {
		t.Fatalf("run true: %v", err)
	}
	return cmd.Process.Pid
}

func TestWaitReady(t *testing.T) {
	t.Parallel()

	t.Run("accepting connections", func(t *testing.T) {
		t.Parallel()
		l, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			t.Fatalf("listen: %v", err)
		}
		defer func() { _ = l.Close() }()
		go func() {
			for {
				c, err := l.Accept()
				if err != nil {
					return
				}
				_ = c.Close()
			}
		}()

		inst := fakeInstance(t, l.Addr().(*net.TCPAddr).Port, os.Getpid())
		if err := casstest.WaitReady(context.Background(), inst, 5*time.Second); err != nil {
			t.Fatalf("WaitReady() error: %v", err)
		}
	})

	t.Run("nothing listening", func(t *testing.T) {
		t.Parallel()
		inst := fakeInstance(t, freePort(t), os.Getpid())

		err := casstest.WaitReady(context.Background(), inst, 600*time.Millisecond)
		if err == nil {
			t.Fatal("expected timeout error, got nil")
		}
		if errors.Is(err, casstest.ErrServerExited) {
			t.Fatalf("WaitReady() error = %v, want a timeout", err)
		}
	})

	t.Run("server exited", func(t *testing.T) {
		t.Parallel()
		inst := fakeInstance(t, freePort(t), exitedPID(t))

		err := casstest.WaitReady(context.Background(), inst, 5*time.Second)
		if !errors.Is(err, casstest.ErrServerExited) {
			t.Fatalf("WaitReady() error = %v, want %v", err, casstest.ErrServerExited)
		}
	})

	t.Run("no pid record", func(t *testing.T) {
		t.Parallel()
		inst := fakeInstance(t, freePort(t), 0)

		err := casstest.WaitReady(context.Background(), inst, time.Second)
		if !errors.Is(err, casstest.ErrNotFound) {
			t.Fatalf("WaitReady() error = %v, want %v", err, casstest.ErrNotFound)
		}
	})

	t.Run("non-positive timeout", func(t *testing.T) {
		t.Parallel()
		inst := fakeInstance(t, freePort(t), os.Getpid())

		if err := casstest.WaitReady(context.Background(), inst, 0); err == nil {
			t.Fatal("expected error for zero timeout")
		}
	})
}
