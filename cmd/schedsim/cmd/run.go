package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os/signal"
	"path"
	"syscall"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"github.com/viant/schedsim"
	"github.com/viant/schedsim/metrics/prometheus"
	"github.com/viant/schedsim/model/trace"
	pcbdao "github.com/viant/schedsim/service/dao/pcb"
	"github.com/viant/schedsim/service/console"
	"github.com/viant/schedsim/service/event"
	"github.com/viant/schedsim/service/report"
)

func RunCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Simulate a process list to completion",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "input",
				Aliases: []string{"i"},
				Value:   pcbdao.DefaultURL,
				Usage:   "process list document (JSON or YAML, any afs URL)",
			},
			&cli.BoolFlag{
				Name:    "fast",
				Aliases: []string{"f"},
				Usage:   "do not pause between ticks",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "config document; flags given explicitly take precedence",
			},
			&cli.DurationFlag{
				Name:  "pace",
				Value: schedsim.DefaultPace,
				Usage: "pause between ticks in slow mode",
			},
			&cli.StringFlag{
				Name:  "trace-dir",
				Usage: "archive the run trace under this URL",
			},
			&cli.StringFlag{
				Name:  "expect",
				Usage: "compare the rendered run with this file, exit 1 on mismatch",
			},
			&cli.StringFlag{
				Name:  "record",
				Usage: "write the rendered run to this URL",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "suppress event log and per tick tables",
			},
			&cli.BoolFlag{
				Name:  "stats",
				Usage: "print per process statistics",
			},
			&cli.BoolFlag{
				Name:  "metrics",
				Usage: "print collected metrics",
			},
		},
		Action: RunAction,
	}
}

func RunAction(c *cli.Context) error {
	cfg, err := runConfig(c)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	out := c.App.Writer
	var options []schedsim.Option
	if !c.Bool("quiet") {
		options = append(options,
			schedsim.WithListeners(event.StdoutListener),
			schedsim.WithSinks(console.NewRenderer(out)),
		)
	}
	registry := prom.NewRegistry()
	if c.Bool("metrics") {
		exporter, err := prometheus.NewExporter("schedsim", registry, prometheus.ExporterOptions{})
		if err != nil {
			return cli.Exit(fmt.Sprintf("Failed to create metrics: %v", err), 1)
		}
		options = append(options, schedsim.WithMetrics(exporter))
	}
	srv, err := schedsim.NewFromConfig(cfg, options...)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Invalid configuration: %v", err), 1)
	}

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	list, err := srv.Load(ctx, cfg.Input)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Failed: %v", err), 1)
	}
	if !c.Bool("quiet") {
		if err = console.Render(out, &trace.Snapshot{Ready: list}); err != nil {
			return err
		}
	}
	aTrace, err := srv.RunSource(ctx, cfg.Input, list)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Failed: %v", err), 1)
	}
	fmt.Fprintf(out, "run %s finished after %d tick(s)\n", aTrace.ID, aTrace.Ticks)

	if c.Bool("stats") {
		if err = console.RenderStats(out, aTrace.Stats()); err != nil {
			return err
		}
	}
	if c.Bool("metrics") {
		lines, err := prometheus.Summarize(registry, "schedsim_")
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		for _, line := range lines {
			fmt.Fprintln(out, line)
		}
	}
	return verify(ctx, c, aTrace)
}

func runConfig(c *cli.Context) (*schedsim.Config, error) {
	cfg := schedsim.DefaultConfig()
	if URL := c.String("config"); URL != "" {
		loaded, err := schedsim.LoadConfig(c.Context, URL)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if c.IsSet("input") || c.String("config") == "" {
		cfg.Input = c.String("input")
	}
	if c.IsSet("fast") {
		cfg.Fast = c.Bool("fast")
	}
	if c.IsSet("pace") {
		cfg.Pace = c.Duration("pace").String()
	}
	if c.IsSet("trace-dir") {
		cfg.TraceDir = c.String("trace-dir")
	}
	return cfg, cfg.Validate()
}

func verify(ctx context.Context, c *cli.Context, aTrace *trace.Trace) error {
	expectURL, recordURL := c.String("expect"), c.String("record")
	if expectURL == "" && recordURL == "" {
		return nil
	}
	rendered := &bytes.Buffer{}
	if err := console.RenderTrace(rendered, aTrace); err != nil {
		return err
	}
	fs := afs.New()
	if recordURL != "" {
		if err := fs.Upload(ctx, url.Normalize(recordURL, file.Scheme), file.DefaultFileOsMode, bytes.NewReader(rendered.Bytes())); err != nil {
			return cli.Exit(fmt.Sprintf("Failed to record run: %v", err), 1)
		}
	}
	if expectURL == "" {
		return nil
	}
	expected, err := fs.DownloadWithURL(ctx, url.Normalize(expectURL, file.Scheme))
	if err != nil {
		return cli.Exit(fmt.Sprintf("Failed to read expected output: %v", err), 1)
	}
	result, err := report.Compare(expected, rendered.Bytes(), path.Base(expectURL))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	fmt.Fprintln(c.App.Writer, result.String())
	if !result.Equal {
		fmt.Fprint(c.App.Writer, result.Diff)
		return cli.Exit("run differs from expected output", 1)
	}
	return nil
}
