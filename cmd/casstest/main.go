// Package main is the entry point for the casstest CLI.
//
// The binary starts and stops throwaway Cassandra instances from shell
// scripts and CI jobs. All functionality lives in internal/cli.
package main

import "github.com/giantswarm/casstest/internal/cli"

// version is set at build time via ldflags.
var version = "dev"

func main() {
	cli.Version = version
	cli.Execute(cli.NewRootCommand())
}
