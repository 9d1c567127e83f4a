package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/tqbf/spmfix/pkg/derived"
)

const appVersion = "0.1.0"

func main() {
	app := &cli.App{
		Name: "spmfix",
		Usage: "fix deprecated SwiftPM syntax in the " +
			"GoogleSignIn-iOS checkout",
		Before: func(c *cli.Context) error {
			configureLogging(c.Bool("verbose"))
			return nil
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "derived-data",
				EnvVars: []string{"SPMFIX_DERIVED_DATA"},
				Usage: "DerivedData directory " +
					"(default: Xcode's)",
			},
			&cli.StringFlag{
				Name: "project",
				Usage: "only search build dirs " +
					"matching this glob",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "verbose output",
			},
		},
		Action: fixAction,
		Commands: []*cli.Command{
			fixCmd(),
			diffCmd(),
			locateCmd(),
			doctorCmd(),
			{
				Name:  "version",
				Usage: "print version",
				Action: func(c *cli.Context) error {
					fmt.Println(appVersion)
					return nil
				},
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func configureLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(
		slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		}),
	))
}

func resolveDataDir(c *cli.Context) (string, error) {
	if dir := c.String("derived-data"); dir != "" {
		return dir, nil
	}
	return derived.DataDir()
}

// locateManifest resolves the single manifest the tool
// operates on. An empty path means nothing was found, which
// is benign: the caller prints a notice and exits 0.
func locateManifest(c *cli.Context) (string, error) {
	dataDir, err := resolveDataDir(c)
	if err != nil {
		return "", err
	}
	slog.Debug("searching", "derived_data", dataDir)
	return derived.FindManifest(
		dataDir, c.String("project"),
	)
}

func printNotFound() {
	fmt.Println("GoogleSignIn-iOS Package.swift not found.")
	fmt.Println(
		"Make sure Xcode has resolved packages first.",
	)
}
