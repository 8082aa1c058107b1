package main

import (
	"context"

	"github.com/samber/oops"
	"github.com/urfave/cli/v3"

	"github.com/g5becks/md2docx/internal/config"
	"github.com/g5becks/md2docx/internal/convert"
	"github.com/g5becks/md2docx/internal/markdown"
	"github.com/g5becks/md2docx/internal/parser"
	"github.com/g5becks/md2docx/internal/source"
	"github.com/g5becks/md2docx/internal/ui"
)

func newOutlineCommand() *cli.Command {
	return &cli.Command{
		Name:      "outline",
		Usage:     "Show the heading structure and block counts of a Markdown file",
		ArgsUsage: "<input>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output as JSON",
			},
		},
		Action: outlineAction,
	}
}

func outlineAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return oops.
			Code("INVALID_ARGS").
			Hint("Usage: md2docx outline <input>").
			Errorf("expected 1 argument, got %d", cmd.Args().Len())
	}

	cfg, err := config.Resolve(cmd.String("config"))
	if err != nil {
		return err
	}

	loader := source.NewLoader()
	defer func() {
		_ = loader.Close()
	}()

	report, err := buildOutline(ctx, loader, cmd.Args().First(), cfg.Style)
	if err != nil {
		return err
	}

	return ui.RenderOutline(cmd.Root().Writer, *report, ui.OutlineOptions{JSON: cmd.Bool("json")})
}

func buildOutline(
	ctx context.Context,
	loader convert.Loader,
	location string,
	style config.Style,
) (*ui.OutlineReport, error) {
	input, err := loader.Load(ctx, location)
	if err != nil {
		return nil, err
	}

	content, err := convert.Normalize(input.Name, input.Content)
	if err != nil {
		return nil, oops.With("input", location).Wrap(err)
	}

	parsed, err := parser.ForPath(input.Name).Parse(content)
	if err != nil {
		return nil, oops.
			Code("PARSE_ERROR").
			With("input", location).
			Wrapf(err, "parsing outline")
	}

	blocks := markdown.Scan(markdown.SplitLines(content), markdown.Options{Bullet: style.Bullet})

	return &ui.OutlineReport{
		Input:       input.Location,
		Output:      convert.ResolveOutputPath(input.Location),
		Description: parsed.Description,
		Lines:       parsed.Lines,
		Headings:    parsed.Headings,
		Blocks:      markdown.Count(blocks),
	}, nil
}
