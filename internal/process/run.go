package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/giantswarm/casstest/internal/sentinel"
)

// ErrEmptyArgv is returned when Run is given no command.
const ErrEmptyArgv = sentinel.Error("command argv must not be empty")

// DefaultWaitDelay bounds how long Run keeps reading output after the
// command itself has exited. A command that backgrounds a child which
// inherits stdout/stderr would otherwise block Run until that child exits.
const DefaultWaitDelay = time.Second

// Command describes a command to run.
type Command struct {
	// Argv is the program followed by its arguments. Arguments are passed
	// as-is; no shell splitting or quoting is involved.
	Argv []string

	// Dir is the working directory. Empty means the caller's.
	Dir string

	// WaitDelay overrides DefaultWaitDelay when positive.
	WaitDelay time.Duration

	// Detach starts the command in its own process group so that signals
	// aimed at the caller's group (e.g. Ctrl-C on a test run) do not reach
	// it or the processes it leaves behind.
	Detach bool
}

// Result is the outcome of a command that ran.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int // -1 if the process was terminated by a signal
}

// Run executes c, waits for it to finish and returns everything it wrote.
//
// A non-zero exit status is not an error: it is reported in Result.ExitCode
// and the caller decides what it means. Run returns an error only when the
// command could not be started or ctx ended it.
func Run(ctx context.Context, c Command) (Result, error) {
	if len(c.Argv) == 0 || c.Argv[0] == "" {
		return Result{}, ErrEmptyArgv
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.Argv[0], c.Argv[1:]...) //nolint:gosec // G204: argv is built by casstest, not user input
	cmd.Dir = c.Dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = DefaultWaitDelay
	if c.WaitDelay > 0 {
		cmd.WaitDelay = c.WaitDelay
	}
	if c.Detach {
		configureSysProcAttr(cmd)
	}

	err := cmd.Run()
	res := Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if cmd.ProcessState != nil {
		res.ExitCode = cmd.ProcessState.ExitCode()
	}

	if ctxErr := ctx.Err(); ctxErr != nil && err != nil {
		return res, fmt.Errorf("run %s: %w", c.Argv[0], ctxErr)
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return res, nil
	case errors.Is(err, exec.ErrWaitDelay):
		// Exited cleanly; a backgrounded child still held the pipes.
		return res, nil
	case errors.As(err, &exitErr):
		return res, nil
	default:
		return res, fmt.Errorf("run %s: %w", c.Argv[0], err)
	}
}
