package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v2"
	"github.com/viant/schedsim/service/console"
	"github.com/viant/schedsim/service/dao"
	"github.com/viant/schedsim/service/dao/criteria"
	tfs "github.com/viant/schedsim/service/dao/trace/fs"
)

func TracesCommand() *cli.Command {
	return &cli.Command{
		Name:  "traces",
		Usage: "List archived runs or render one of them",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "trace-dir",
				Required: true,
				Usage:    "trace archive URL",
			},
			&cli.StringFlag{
				Name:  "id",
				Usage: "render the run with this id",
			},
			&cli.StringSliceFlag{
				Name:  "source",
				Usage: "only list runs of these process list URLs",
			},
		},
		Action: TracesAction,
	}
}

func TracesAction(c *cli.Context) error {
	archive, err := tfs.New(c.String("trace-dir"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("Failed: %v", err), 1)
	}
	out := c.App.Writer
	if id := c.String("id"); id != "" {
		aTrace, err := archive.Load(c.Context, id)
		if err != nil {
			return cli.Exit(fmt.Sprintf("Failed: %v", err), 1)
		}
		if err = console.RenderTrace(out, aTrace); err != nil {
			return err
		}
		return console.RenderStats(out, aTrace.Stats())
	}
	var parameters []*dao.Parameter
	if sources := c.StringSlice("source"); len(sources) > 0 {
		parameters = append(parameters, dao.NewParameter(criteria.SourceParameter, sources...))
	}
	traces, err := archive.List(c.Context, parameters...)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Failed: %v", err), 1)
	}
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSOURCE\tSTARTED\tTICKS\tCOMPLETE")
	for _, aTrace := range traces {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%v\n", aTrace.ID, aTrace.Source, aTrace.StartedAt.Format("2006-01-02T15:04:05"), aTrace.Ticks, aTrace.FinishedAt != nil)
	}
	return tw.Flush()
}
