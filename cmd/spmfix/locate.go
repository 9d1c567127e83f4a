package main

import (
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v2"

	"github.com/tqbf/spmfix/pkg/derived"
)

func locateCmd() *cli.Command {
	return &cli.Command{
		Name:   "locate",
		Usage:  "list matching manifests without touching them",
		Action: locateAction,
	}
}

func locateAction(c *cli.Context) error {
	dataDir, err := resolveDataDir(c)
	if err != nil {
		return err
	}
	slog.Debug("searching", "derived_data", dataDir)

	matches, err := derived.FindAll(
		dataDir, c.String("project"),
	)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		printNotFound()
		return nil
	}
	for _, m := range matches {
		fmt.Printf("%s\t%s\n", m.BuildDir, m.Path)
	}
	return nil
}
