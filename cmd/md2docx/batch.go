package main

import (
	"context"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/g5becks/md2docx/internal/batch"
	"github.com/g5becks/md2docx/internal/config"
	"github.com/g5becks/md2docx/internal/ui"
)

const progressPollInterval = 10 * time.Millisecond

func newBatchCommand() *cli.Command {
	return &cli.Command{
		Name:      "batch",
		Usage:     "Convert every Markdown file matching the patterns",
		ArgsUsage: "[pattern...]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "Path to config file"},
			&cli.StringFlag{Name: "root", Usage: "Directory the patterns are matched under"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "Mirror outputs under this directory"},
			&cli.StringSliceFlag{Name: "exclude", Usage: "Exclude glob pattern (repeatable)"},
			&cli.BoolFlag{Name: "force", Aliases: []string{"f"}, Usage: "Convert files even when they are up to date"},
			&cli.BoolFlag{Name: "dry-run", Usage: "Show planned conversions without writing files"},
			&cli.IntFlag{Name: "parallel", Aliases: []string{"p"}, Usage: "Maximum parallel conversions (0 = use config)"},
			&cli.BoolFlag{Name: "progress", Usage: "Show a progress bar instead of per-file lines"},
		},
		Action: batchAction,
	}
}

func batchAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Resolve(cmd.String("config"))
	if err != nil {
		return err
	}

	dryRun := cmd.Bool("dry-run")
	printer := ui.NewBatchPrinterWithWriter(cmd.Root().ErrWriter, dryRun)

	opts := batch.Options{
		Root:     cmd.String("root"),
		Patterns: cmd.Args().Slice(),
		Exclude:  cmd.StringSlice("exclude"),
		Output:   cmd.String("out"),
		Force:    cmd.Bool("force"),
		DryRun:   dryRun,
		Parallel: cmd.Int("parallel"),
		OnEvent:  printer.HandleEvent,
	}

	if !cmd.Bool("progress") {
		result, runErr := batch.Run(ctx, cfg, opts)
		printer.PrintSummary(result)
		return runErr
	}

	writer := ui.NewProgressWriter()
	writer.SetOutputWriter(cmd.Root().ErrWriter)
	tracker := ui.NewBatchProgress(writer)
	opts.OnEvent = tracker.HandleEvent

	go writer.Render()

	result, runErr := batch.Run(ctx, cfg, opts)
	tracker.Done()

	for writer.IsRenderInProgress() {
		time.Sleep(progressPollInterval)
	}

	printer.PrintSummary(result)
	return runErr
}
