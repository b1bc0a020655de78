//go:build !windows

package process

import (
	"errors"
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

// configureSysProcAttr puts cmd in a new process group.
func configureSysProcAttr(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setpgid: true,
	}
}

// Kill sends SIGKILL to pid.
func Kill(pid int) error {
	if pid <= 0 {
		return ErrInvalidPID
	}
	return unix.Kill(pid, unix.SIGKILL)
}

// Alive reports whether a process with the given pid exists. A process we
// may not signal (EPERM) still counts as alive.
func Alive(pid int) bool {
	if pid <= 0 {
		return false
	}
	err := unix.Kill(pid, 0)
	return err == nil || errors.Is(err, unix.EPERM)
}
