package patch

import "regexp"

// Rule is one textual substitution. Rules are applied in table
// order: the drop-name and revision rules must run before the
// renames so that renames only ever see the simplified syntax.
type Rule struct {
	Name string
	re   *regexp.Regexp
	repl string
}

func (r Rule) apply(s string) (string, int) {
	n := len(r.re.FindAllStringIndex(s, -1))
	if n == 0 {
		return s, 0
	}
	return r.re.ReplaceAllString(s, r.repl), n
}

// Packages whose .package declaration still carries the
// deprecated name: argument in the GoogleSignIn-iOS manifest.
var namedPackages = []string{
	"AppAuth",
	"AppCheck",
	"GTMAppAuth",
	"GTMSessionFetcher",
	"GoogleUtilities",
	"OCMock",
}

// Old target-dependency package references and the repository
// names SwiftPM derives for them now.
var packageRenames = []struct {
	old string
	new string
}{
	{"AppAuth", "appauth-ios"},
	{"AppCheck", "app-check"},
	{"GTMAppAuth", "gtmappauth"},
	{"GTMSessionFetcher", "gtm-session-fetcher"},
	{"GoogleUtilities", "googleutilities"},
}

var rules = buildRules()

func buildRules() []Rule {
	var rs []Rule
	for _, name := range namedPackages {
		rs = append(rs, Rule{
			Name: "drop-name/" + name,
			re: regexp.MustCompile(
				`\.package\(\s*name: "` +
					regexp.QuoteMeta(name) +
					`",\s*url:`,
			),
			repl: ".package(url:",
		})
	}
	rs = append(rs, Rule{
		Name: "revision-label",
		re: regexp.MustCompile(
			`\.revision\("([^"]+)"\)`,
		),
		repl: `revision: "$1"`,
	})
	for _, r := range packageRenames {
		rs = append(rs, Rule{
			Name: "rename/" + r.old,
			re: regexp.MustCompile(regexp.QuoteMeta(
				`package: "` + r.old + `"`,
			)),
			repl: `package: "` + r.new + `"`,
		})
	}
	return rs
}

// Rules returns the substitution table in application order.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}
