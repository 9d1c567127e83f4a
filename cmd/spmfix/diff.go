package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/tqbf/spmfix/pkg/patch"
)

func diffCmd() *cli.Command {
	return &cli.Command{
		Name:  "diff",
		Usage: "show what fix would change",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "JSON output",
			},
		},
		Action: diffAction,
	}
}

type diffJSON struct {
	Path    string      `json:"path"`
	Edits   []patch.Hit `json:"edits"`
	Summary diffSummary `json:"summary"`
}

type diffSummary struct {
	RuleCount int `json:"rule_count"`
	EditCount int `json:"edit_count"`
}

func diffAction(c *cli.Context) error {
	path, err := locateManifest(c)
	if err != nil {
		return err
	}
	if path == "" {
		printNotFound()
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read manifest: %w", err)
	}
	fixed, hits := patch.Apply(string(data))

	if c.Bool("json") {
		return printDiffJSON(path, hits)
	}

	if fixed == string(data) {
		fmt.Println(
			"Package.swift already fixed " +
				"or doesn't need fixing",
		)
		return nil
	}

	fmt.Printf("Found Package.swift at: %s\n", path)
	fmt.Print(lineDiff(string(data), fixed))

	edits := 0
	for _, h := range hits {
		edits += h.Count
	}
	fmt.Printf("---\n%d rules matched (%d edits)\n",
		len(hits), edits,
	)
	return nil
}

func printDiffJSON(path string, hits []patch.Hit) error {
	out := diffJSON{
		Path:  path,
		Edits: hits,
		Summary: diffSummary{
			RuleCount: len(hits),
		},
	}
	if out.Edits == nil {
		out.Edits = []patch.Hit{}
	}
	for _, h := range hits {
		out.Summary.EditCount += h.Count
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// lineDiff renders removed and added lines. A real diff is
// needed here: the drop-name rules can collapse a multi-line
// declaration onto one line, so positions shift.
func lineDiff(before, after string) string {
	a := strings.Split(before, "\n")
	b := strings.Split(after, "\n")

	// LCS table; manifests are a few hundred lines at most.
	lcs := make([][]int, len(a)+1)
	for i := range lcs {
		lcs[i] = make([]int, len(b)+1)
	}
	for i := len(a) - 1; i >= 0; i-- {
		for j := len(b) - 1; j >= 0; j-- {
			if a[i] == b[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else {
				lcs[i][j] = max(
					lcs[i+1][j], lcs[i][j+1],
				)
			}
		}
	}

	var out strings.Builder
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			i++
			j++
		case lcs[i+1][j] >= lcs[i][j+1]:
			fmt.Fprintf(&out, "  - %s\n", a[i])
			i++
		default:
			fmt.Fprintf(&out, "  + %s\n", b[j])
			j++
		}
	}
	for ; i < len(a); i++ {
		fmt.Fprintf(&out, "  - %s\n", a[i])
	}
	for ; j < len(b); j++ {
		fmt.Fprintf(&out, "  + %s\n", b[j])
	}
	return out.String()
}
