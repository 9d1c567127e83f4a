package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/tqbf/spmfix/pkg/derived"
	"github.com/tqbf/spmfix/pkg/patch"
)

func doctorCmd() *cli.Command {
	return &cli.Command{
		Name:   "doctor",
		Usage:  "verify the DerivedData environment",
		Action: doctorAction,
	}
}

func doctorAction(c *cli.Context) error {
	dataDir, err := resolveDataDir(c)
	if err != nil {
		fmt.Printf("  Home: FAIL (%v)\n", err)
		return fmt.Errorf("home check failed")
	}
	fmt.Printf("DerivedData: %s\n", dataDir)

	info, err := os.Stat(dataDir)
	if err != nil || !info.IsDir() {
		fmt.Printf("  Base dir: missing\n")
		fmt.Println(
			"\nNothing to fix: Xcode has not " +
				"resolved packages yet.",
		)
		return nil
	}
	fmt.Printf("  Base dir: ok\n")

	matches, err := derived.FindAll(
		dataDir, c.String("project"),
	)
	if err != nil {
		fmt.Printf("  Search: FAIL (%v)\n", err)
		return fmt.Errorf("search check failed")
	}
	if len(matches) == 0 {
		fmt.Printf("  Checkout: none found\n")
		fmt.Println(
			"\nNothing to fix: no GoogleSignIn-iOS " +
				"checkout under DerivedData.",
		)
		return nil
	}
	fmt.Printf(
		"  Checkout: ok (%d found, using %s)\n",
		len(matches), matches[0].BuildDir,
	)

	path := matches[0].Path
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("  Read: FAIL (%v)\n", err)
		return fmt.Errorf("read check failed")
	}
	fmt.Printf(
		"  Read: ok (%d bytes)\n", len(data),
	)

	fi, err := os.Stat(path)
	if err != nil {
		fmt.Printf("  Mode: FAIL (%v)\n", err)
		return fmt.Errorf("mode check failed")
	}
	mode := fi.Mode().Perm()
	note := ""
	if mode&0o200 == 0 {
		note = ", fix will chmod to 0644"
	}
	fmt.Printf("  Mode: %04o%s\n", mode, note)

	fixed, hits := patch.Apply(string(data))
	if fixed == string(data) {
		fmt.Printf("  Pending edits: none\n")
	} else {
		edits := 0
		for _, h := range hits {
			edits += h.Count
		}
		fmt.Printf(
			"  Pending edits: %d (%d rules)\n",
			edits, len(hits),
		)
	}

	fmt.Println("\nAll checks passed.")
	return nil
}
