//go:build windows

package process

import (
	"os"
	"os/exec"
)

// configureSysProcAttr is a no-op on Windows, which has no process groups
// in the POSIX sense.
func configureSysProcAttr(_ *exec.Cmd) {}

// Kill terminates the process with the given pid.
func Kill(pid int) error {
	if pid <= 0 {
		return ErrInvalidPID
	}
	p, err := os.FindProcess(pid)
	if err != nil {
		return err
	}
	return p.Kill()
}

// Alive reports whether a process with the given pid exists.
func Alive(pid int) bool {
	if pid <= 0 {
		return false
	}
	p, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	_ = p.Release()
	return true
}
