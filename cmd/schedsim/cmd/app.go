package cmd

import (
	"github.com/urfave/cli/v2"
)

// New creates the schedsim command line application. Without a sub command
// it runs a simulation, so "schedsim -i list.json -f" works as expected.
func New() *cli.App {
	run := RunCommand()
	return &cli.App{
		Name:   "schedsim",
		Usage:  "deterministic single processor scheduler simulator",
		Flags:  run.Flags,
		Action: run.Action,
		Commands: []*cli.Command{
			run,
			TracesCommand(),
		},
	}
}
