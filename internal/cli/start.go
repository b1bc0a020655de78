package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/giantswarm/casstest"
)

func newStartCommand(a *app) *cobra.Command {
	var wait time.Duration

	cmd := &cobra.Command{
		Use:   "start PORT",
		Short: "Start an instance on a given client port",
		Long: `Start an instance whose Thrift client port is PORT.

Fails if a working directory for PORT already exists. Prints the port and
the working directory on success.

Examples:
  casstest start 9170
  casstest start --wait 1m 9170`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			port, err := parsePort(args[0])
			if err != nil {
				return err
			}
			c, err := a.controller()
			if err != nil {
				return err
			}
			inst, err := a.startOne(cmd.Context(), c, port, wait)
			if err != nil {
				return err
			}
			printInstance(cmd, inst)
			return nil
		},
	}
	cmd.Flags().DurationVar(&wait, "wait", 0, "Wait up to this long for the client port to accept connections")

	return cmd
}

// startOne starts port and, if wait is positive, waits for readiness. An
// instance that never becomes ready is stopped again.
func (a *app) startOne(ctx context.Context, c casstest.Controller, port int, wait time.Duration) (*casstest.Instance, error) {
	inst, err := c.Start(ctx, port)
	if err != nil {
		return nil, fmt.Errorf("start port %d: %w", port, err)
	}
	if wait <= 0 {
		return inst, nil
	}
	if err := a.waitReady(ctx, inst, wait); err != nil {
		if stopErr := c.Stop(ctx, port); stopErr != nil {
			casstestLogger().Warn("stop after failed wait", "port", port, "error", stopErr)
		}
		return nil, fmt.Errorf("start port %d: %w", port, err)
	}
	return inst, nil
}

func parsePort(s string) (int, error) {
	port, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", s, casstest.ErrInvalidPort)
	}
	return port, nil
}

func printInstance(cmd *cobra.Command, inst *casstest.Instance) {
	fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", inst.Port, inst.Dir)
}
