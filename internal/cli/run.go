package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/giantswarm/casstest"
)

func newRunCommand(a *app) *cobra.Command {
	var (
		count int
		wait  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start instances on free ports",
		Long: `Pick free client ports and start an instance on each. Prints one
"PORT<TAB>DIR" line per instance, sorted by port.

If any instance fails to start, the ones that did start are stopped again.

Examples:
  casstest run
  casstest run --count 3 --wait 2m`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if count < 1 {
				return fmt.Errorf("--count must be at least 1, got %d", count)
			}
			c, err := a.controller()
			if err != nil {
				return err
			}
			insts, err := a.runMany(cmd.Context(), c, count, wait)
			if err != nil {
				return err
			}
			for _, inst := range insts {
				printInstance(cmd, inst)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 1, "Number of instances to start")
	cmd.Flags().DurationVar(&wait, "wait", 0, "Wait up to this long for each client port to accept connections")

	return cmd
}

// runMany allocates count distinct free ports and starts an instance on each
// concurrently. On failure every instance that did start is stopped.
//
// Siblings share ctx rather than a group context: canceling a Start midway
// can leave a detached server behind without reporting it as started.
func (a *app) runMany(ctx context.Context, c casstest.Controller, count int, wait time.Duration) ([]*casstest.Instance, error) {
	ports, err := a.freePorts(count)
	if err != nil {
		return nil, err
	}

	var (
		mu      sync.Mutex
		started []*casstest.Instance
	)
	var g errgroup.Group
	for _, port := range ports {
		port := port
		g.Go(func() error {
			inst, err := a.startOne(ctx, c, port, wait)
			if err != nil {
				return err
			}
			mu.Lock()
			started = append(started, inst)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		var stopErrs []error
		for _, inst := range started {
			if stopErr := c.Stop(ctx, inst.Port); stopErr != nil {
				stopErrs = append(stopErrs, stopErr)
			}
		}
		return nil, errors.Join(append([]error{err}, stopErrs...)...)
	}

	sort.Slice(started, func(i, j int) bool { return started[i].Port < started[j].Port })
	return started, nil
}

// freePorts returns n pairwise distinct free ports.
func (a *app) freePorts(n int) ([]int, error) {
	seen := make(map[int]struct{}, n)
	ports := make([]int, 0, n)
	for attempts := 0; len(ports) < n; attempts++ {
		if attempts >= 10*n {
			return nil, fmt.Errorf("allocate %d distinct ports: got only %d", n, len(ports))
		}
		port, err := a.freePort()
		if err != nil {
			return nil, fmt.Errorf("allocate port: %w", err)
		}
		if _, dup := seen[port]; dup {
			continue
		}
		seen[port] = struct{}{}
		ports = append(ports, port)
	}
	return ports, nil
}
