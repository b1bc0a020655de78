package process

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"k8s.io/apimachinery/pkg/util/wait"

	"github.com/giantswarm/casstest/internal/sentinel"
)

// Sentinel errors returned by WaitReady for invalid configuration and
// process lifecycle conditions.
const (
	// ErrEmptyName indicates a WaitReadyConfig without a Name.
	ErrEmptyName = sentinel.Error("name must not be empty")

	// ErrIntervalNotPositive indicates a non-positive poll interval.
	ErrIntervalNotPositive = sentinel.Error("interval must be positive")

	// ErrTimeoutNotPositive indicates a non-positive timeout.
	ErrTimeoutNotPositive = sentinel.Error("timeout must be positive")

	// ErrProcessExited indicates the process exited before becoming ready.
	ErrProcessExited = sentinel.Error("process exited before becoming ready")
)

// ReadinessCheck reports whether a process is ready. attempt is 1-based.
// A non-nil error aborts polling.
type ReadinessCheck func(ctx context.Context, attempt int) (ready bool, err error)

// WaitReadyConfig configures the wait behavior.
type WaitReadyConfig struct {
	Interval time.Duration // Poll interval
	Timeout  time.Duration // Overall timeout
	Name     string        // For logging (e.g., "cassandra")
	Port     int           // For logging context
	Logger   *slog.Logger  // Optional logger (defaults to slog.Default())

	// Alive, if set, is consulted before every attempt; polling stops with
	// ErrProcessExited as soon as it reports false. The server runs detached
	// from us, so liveness comes from its pid rather than a Wait channel.
	Alive func() bool
}

// WaitReady polls check until it reports ready, fails, or the timeout ends.
func WaitReady(ctx context.Context, cfg WaitReadyConfig, check ReadinessCheck) error {
	if cfg.Name == "" {
		return fmt.Errorf("wait ready: %w", ErrEmptyName)
	}
	if cfg.Interval <= 0 {
		return fmt.Errorf("wait for %s: %w", cfg.Name, ErrIntervalNotPositive)
	}
	if cfg.Timeout <= 0 {
		return fmt.Errorf("wait for %s: %w", cfg.Name, ErrTimeoutNotPositive)
	}

	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	// PollUntilContextTimeout calls the condition sequentially.
	attempt := 0
	if err := wait.PollUntilContextTimeout(ctx, cfg.Interval, cfg.Timeout, true,
		func(pollCtx context.Context) (bool, error) {
			if cfg.Alive != nil && !cfg.Alive() {
				return false, fmt.Errorf("process %s: %w", cfg.Name, ErrProcessExited)
			}

			attempt++
			ready, err := check(pollCtx, attempt)
			if err != nil {
				return false, err
			}
			if ready {
				log.Debug("wait succeeded", "name", cfg.Name, "port", cfg.Port, "attempt", attempt)
			}
			return ready, nil
		}); err != nil {
		return fmt.Errorf("wait for %s readiness on port %d: %w", cfg.Name, cfg.Port, err)
	}
	return nil
}
