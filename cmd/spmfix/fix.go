package main

import (
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v2"

	"github.com/tqbf/spmfix/pkg/patch"
)

func fixCmd() *cli.Command {
	return &cli.Command{
		Name:   "fix",
		Usage:  "rewrite the manifest in place (default)",
		Action: fixAction,
	}
}

func fixAction(c *cli.Context) error {
	path, err := locateManifest(c)
	if err != nil {
		return err
	}
	if path == "" {
		printNotFound()
		return nil
	}

	fmt.Printf("Found Package.swift at: %s\n", path)

	changed, hits, err := patch.FixFile(path)
	if err != nil {
		return err
	}
	for _, h := range hits {
		slog.Debug("applied rule",
			"rule", h.Rule, "count", h.Count,
		)
	}
	if changed {
		fmt.Println(
			"✓ Fixed deprecated syntax in " +
				"GoogleSignIn-iOS Package.swift",
		)
	} else {
		fmt.Println(
			"Package.swift already fixed " +
				"or doesn't need fixing",
		)
	}
	return nil
}
