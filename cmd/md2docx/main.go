package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/samber/oops"
	"github.com/urfave/cli/v3"

	"github.com/g5becks/md2docx/internal/config"
	"github.com/g5becks/md2docx/internal/convert"
	"github.com/g5becks/md2docx/internal/ui"
)

const (
	usageLine = "Usage: md2docx <input.md> [output.docx]"

	rootDescription = `Converts one Markdown file, or an http(s) URL, to a .docx file. The
output defaults to the input name with a .docx extension.

An input named like a command (batch, outline, init) runs that command
instead. Prefix it with a path, e.g. ./batch, to convert it.`
)

var (
	//nolint:gochecknoglobals // Build metadata is injected at build time with ldflags.
	version = "dev"
	//nolint:gochecknoglobals // Build metadata is injected at build time with ldflags.
	commit = "unknown"
	//nolint:gochecknoglobals // Build metadata is injected at build time with ldflags.
	buildTime = "unknown"
)

func main() {
	if err := run(os.Args); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	return newRootCommand().Run(context.Background(), args)
}

func printError(w io.Writer, err error) {
	_, _ = fmt.Fprintln(w, err)

	if oopsErr, ok := oops.AsOops(err); ok && oopsErr.Hint() != "" {
		_, _ = fmt.Fprintln(w, oopsErr.Hint())
	}
}

func newRootCommand() *cli.Command {
	return &cli.Command{
		Name:        "md2docx",
		Usage:       "Convert Markdown files to Word documents",
		ArgsUsage:   "<input.md> [output.docx]",
		Description: rootDescription,
		Version:     versionString(),
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "Path to config file", Local: true},
			&cli.BoolFlag{Name: "dry-run", Usage: "Scan the input and report blocks without writing", Local: true},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "Suppress the confirmation line", Local: true},
		},
		Action: convertAction,
		Commands: []*cli.Command{
			newBatchCommand(),
			newOutlineCommand(),
			newInitCommand(),
		},
	}
}

func convertAction(ctx context.Context, cmd *cli.Command) error {
	const maxArgs = 2
	if cmd.Args().Len() == 0 || cmd.Args().Len() > maxArgs {
		return oops.
			Code("INVALID_ARGS").
			Hint(usageLine).
			Errorf("expected an input and an optional output, got %d arguments", cmd.Args().Len())
	}

	cfg, err := config.Resolve(cmd.String("config"))
	if err != nil {
		return err
	}

	result, err := convert.Convert(ctx, convert.Request{
		Input:  cmd.Args().Get(0),
		Output: cmd.Args().Get(1),
		Style:  cfg.Style,
		DryRun: cmd.Bool("dry-run"),
	})
	if err != nil {
		return err
	}

	if !cmd.Bool("quiet") {
		ui.NewConvertPrinterWithWriter(cmd.Root().Writer).PrintResult(result)
	}

	return nil
}

func versionString() string {
	return fmt.Sprintf("%s (commit %s, built %s)", version, commit, buildTime)
}
