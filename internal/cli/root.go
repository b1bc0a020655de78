// Package cli implements the cobra commands of the casstest binary.
//
// Each subcommand (run, start, stop) lives in its own file. This file
// defines the root command, its global flags, and the wiring from flags and
// the optional TOML config file to a casstest.Provisioner.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/giantswarm/casstest"
	"github.com/giantswarm/casstest/internal/core"
)

// Version is the version of the binary, injected from main.
var Version = "dev"

// app carries global flag values and the seams tests replace.
type app struct {
	configPath string
	verbose    bool
	flags      FileConfig

	stdout io.Writer
	stderr io.Writer

	newController func(opts ...casstest.Option) casstest.Controller
	freePort      func() (int, error)
	waitReady     func(ctx context.Context, inst *casstest.Instance, timeout time.Duration) error
}

func newApp() *app {
	return &app{
		stdout: os.Stdout,
		stderr: os.Stderr,
		newController: func(opts ...casstest.Option) casstest.Controller {
			return casstest.New(opts...)
		},
		freePort:  casstest.FreePort,
		waitReady: casstest.WaitReady,
	}
}

// NewRootCommand creates the root command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	return newRootCommand(newApp())
}

func newRootCommand(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "casstest",
		Short: "Start and stop throwaway Cassandra instances",
		Long: `casstest provisions Apache Cassandra 1.1 instances for test suites.

Each instance lives in its own working directory named after its client
port and listens on private storage and JMX ports. Instances keep running
after casstest exits; stop them with "casstest stop PORT".`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			level := slog.LevelInfo
			if a.verbose {
				level = slog.LevelDebug
			}
			casstest.SetLogger(slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level})).
				With("component", "casstest"))
			return nil
		},
	}
	rootCmd.SetOut(a.stdout)
	rootCmd.SetErr(a.stderr)

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", "", "TOML file with provisioner defaults")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	pf.StringVar(&a.flags.Archive, "archive", "", "Distribution tarball (default "+casstest.DefaultArchive+")")
	pf.StringVar(&a.flags.Distribution, "distribution", "", "Top-level directory inside the tarball")
	pf.StringVar(&a.flags.BaseDir, "base-dir", "", "Directory holding working directories (default system temp dir)")
	pf.StringVar(&a.flags.Prefix, "prefix", "", "Working directory name prefix")
	pf.StringVar(&a.flags.MaxHeapSize, "max-heap", "", "JVM MAX_HEAP_SIZE")
	pf.StringVar(&a.flags.HeapNewSize, "heap-new", "", "JVM HEAP_NEWSIZE")
	pf.StringVar(&a.flags.LogLevel, "log-level", "", "Cassandra log4j root level")

	rootCmd.AddCommand(newRunCommand(a))
	rootCmd.AddCommand(newStartCommand(a))
	rootCmd.AddCommand(newStopCommand(a))

	return rootCmd
}

// controller loads the config file, layers flags over it and builds the
// provisioner.
func (a *app) controller() (casstest.Controller, error) {
	fc := FileConfig{}
	if a.configPath != "" {
		loaded, err := LoadFileConfig(a.configPath)
		if err != nil {
			return nil, err
		}
		fc = loaded
	}
	fc = fc.Merge(a.flags)

	opts, err := fc.Options()
	if err != nil {
		return nil, err
	}
	return a.newController(opts...), nil
}

// casstestLogger is the logger the CLI shares with the library.
func casstestLogger() *slog.Logger {
	return core.Logger()
}

// Execute runs rootCmd and exits non-zero on error.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		os.Exit(1)
	}
}
