package main

import (
	"context"
	"fmt"
	"os"

	"github.com/samber/oops"
	"github.com/urfave/cli/v3"

	"github.com/g5becks/md2docx/internal/config"
)

func newInitCommand() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Create a starter " + config.DefaultFilename() + " in the current directory",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "force", Aliases: []string{"f"}, Usage: "Overwrite an existing config file"},
		},
		Action: initAction,
	}
}

func initAction(_ context.Context, cmd *cli.Command) error {
	dir, err := os.Getwd()
	if err != nil {
		return oops.Wrapf(err, "getting working directory")
	}

	path, err := config.WriteStarter(dir, cmd.Bool("force"))
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.Root().Writer, "Created %s\n", path)
	return nil
}
