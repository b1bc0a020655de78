package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStopCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stop PORT...",
		Short: "Kill instances and remove their working directories",
		Long: `Kill the instance started on each PORT with SIGKILL and remove its
working directory. Every port is attempted; the command fails if any of
them could not be stopped.

Examples:
  casstest stop 9170
  casstest stop 9170 9171 9172`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ports := make([]int, 0, len(args))
			for _, arg := range args {
				port, err := parsePort(arg)
				if err != nil {
					return err
				}
				ports = append(ports, port)
			}
			c, err := a.controller()
			if err != nil {
				return err
			}

			var failed int
			for _, port := range ports {
				if err := c.Stop(cmd.Context(), port); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "stop port %d: %v\n", port, err)
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d instances could not be stopped", failed, len(ports))
			}
			return nil
		},
	}
}
