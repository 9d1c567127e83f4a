// Package derived locates the GoogleSignIn-iOS checkout that
// Xcode's package resolution leaves under DerivedData.
package derived

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gobwas/glob"
	homedir "github.com/mitchellh/go-homedir"
)

// CheckoutRelPath is where the resolved GoogleSignIn-iOS
// manifest sits inside each DerivedData build directory.
const CheckoutRelPath = "SourcePackages/checkouts/" +
	"GoogleSignIn-iOS/Package.swift"

// Match is one resolved manifest.
type Match struct {
	BuildDir string `json:"build_dir"`
	Path     string `json:"path"`
}

// DataDir returns the default DerivedData base directory for
// the current user.
func DataDir() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("resolve home: %w", err)
	}
	return filepath.Join(
		home, "Library", "Developer",
		"Xcode", "DerivedData",
	), nil
}

// FindAll returns every manifest under dataDir, in
// build-directory name order. A non-empty project pattern is
// compiled as a glob and matched against build-directory
// names. A missing dataDir is not an error: there is nothing
// to fix yet.
func FindAll(
	dataDir, project string,
) ([]Match, error) {
	var g glob.Glob
	if project != "" {
		var err error
		g, err = glob.Compile(project)
		if err != nil {
			return nil, fmt.Errorf(
				"bad project pattern %q: %w",
				project, err,
			)
		}
	}

	entries, err := os.ReadDir(dataDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf(
			"read %s: %w", dataDir, err,
		)
	}

	var matches []Match
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if g != nil && !g.Match(e.Name()) {
			continue
		}
		p := filepath.Join(
			dataDir, e.Name(),
			filepath.FromSlash(CheckoutRelPath),
		)
		info, err := os.Stat(p)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		slog.Debug("found manifest",
			"build_dir", e.Name(), "path", p,
		)
		matches = append(matches, Match{
			BuildDir: e.Name(),
			Path:     p,
		})
	}
	return matches, nil
}

// FindManifest returns the first manifest under dataDir, or
// "" when there is none.
func FindManifest(
	dataDir, project string,
) (string, error) {
	matches, err := FindAll(dataDir, project)
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", nil
	}
	return matches[0].Path, nil
}
