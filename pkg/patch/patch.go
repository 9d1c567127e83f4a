package patch

import (
	"fmt"
	"os"
)

// Hit records how many times one rule matched during Apply.
type Hit struct {
	Rule  string `json:"rule"`
	Count int    `json:"count"`
}

// Apply runs the substitution table over content and returns
// the transformed text plus per-rule hit counts. Rules that
// matched nothing are omitted.
func Apply(content string) (string, []Hit) {
	var hits []Hit
	for _, r := range rules {
		out, n := r.apply(content)
		if n == 0 {
			continue
		}
		content = out
		hits = append(hits, Hit{
			Rule:  r.Name,
			Count: n,
		})
	}
	return content, hits
}

// FixFile rewrites the manifest at path in place. It returns
// false without touching the file when no rule changes the
// content. When the content changes, the file mode is forced
// to 0644 first (Xcode checkouts arrive read-only) and the
// file is rewritten whole.
func FixFile(path string) (bool, []Hit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, nil, fmt.Errorf(
			"read manifest: %w", err,
		)
	}

	out, hits := Apply(string(data))
	if out == string(data) {
		return false, nil, nil
	}

	if err := os.Chmod(path, 0o644); err != nil {
		return false, nil, fmt.Errorf(
			"make manifest writable: %w", err,
		)
	}
	err = os.WriteFile(path, []byte(out), 0o644)
	if err != nil {
		return false, nil, fmt.Errorf(
			"write manifest: %w", err,
		)
	}
	return true, hits, nil
}
