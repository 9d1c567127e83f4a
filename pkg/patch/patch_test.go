package patch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const deprecatedManifest = `// swift-tools-version:5.3
import PackageDescription

let package = Package(
    name: "GoogleSignIn",
    dependencies: [
        .package(
            name: "AppAuth",
            url: "https://github.com/openid/AppAuth-iOS.git",
            .upToNextMajor(from: "1.4.0")
        ),
        .package(name: "GTMAppAuth", url: "https://github.com/google/GTMAppAuth.git", .revision("ad3fb2e")),
        .package(name: "GTMSessionFetcher", url: "https://github.com/google/gtm-session-fetcher.git", "1.5.0"..<"2.0.0"),
        .package(name: "GoogleUtilities", url: "https://github.com/google/GoogleUtilities.git", "7.2.1"..<"8.0.0"),
        .package(name: "OCMock", url: "https://github.com/erikdoe/ocmock.git", .revision("c5eeaa6"))
    ],
    targets: [
        .target(
            name: "GoogleSignIn",
            dependencies: [
                .product(name: "AppAuth", package: "AppAuth"),
                .product(name: "GTMAppAuth", package: "GTMAppAuth"),
                .product(name: "GTMSessionFetcher", package: "GTMSessionFetcher"),
                .product(name: "GULAppDelegateSwizzler", package: "GoogleUtilities")
            ]
        )
    ]
)
`

func TestDropNameAllPackages(t *testing.T) {
	for _, name := range namedPackages {
		in := `.package(name: "` + name +
			`", url: "https://x")`
		out, hits := Apply(in)
		assert.Equal(t,
			`.package(url: "https://x")`, out, name,
		)
		require.Len(t, hits, 1)
		assert.Equal(t, "drop-name/"+name, hits[0].Rule)
	}
}

func TestDropNameOtherPackageUntouched(t *testing.T) {
	in := `.package(name: "Nimble", url: "https://x")`
	out, hits := Apply(in)
	assert.Equal(t, in, out)
	assert.Empty(t, hits)
}

func TestDropNameMultiline(t *testing.T) {
	in := ".package(\n" +
		"            name: \"AppAuth\",\n" +
		"            url: \"https://x\",\n" +
		"            .upToNextMajor(from: \"1.4.0\")\n" +
		"        )"
	out, _ := Apply(in)
	assert.Contains(t, out, `.package(url: "https://x",`)
	assert.NotContains(t, out, `name: "AppAuth"`)
}

func TestRevisionLabel(t *testing.T) {
	out, hits := Apply(`.revision("1.2.3")`)
	assert.Equal(t, `revision: "1.2.3"`, out)
	require.Len(t, hits, 1)
	assert.Equal(t, 1, hits[0].Count)
}

func TestRevisionLabelAllOccurrences(t *testing.T) {
	in := `.revision("abc") and .revision("v2.0-beta+7")`
	out, hits := Apply(in)
	assert.Equal(t,
		`revision: "abc" and revision: "v2.0-beta+7"`,
		out,
	)
	require.Len(t, hits, 1)
	assert.Equal(t, 2, hits[0].Count)
}

func TestRenameAllPairs(t *testing.T) {
	for _, r := range packageRenames {
		out, _ := Apply(`package: "` + r.old + `"`)
		assert.Equal(t,
			`package: "`+r.new+`"`, out, r.old,
		)
	}
}

func TestRenameOtherReferenceUntouched(t *testing.T) {
	in := `package: "Nimble"`
	out, hits := Apply(in)
	assert.Equal(t, in, out)
	assert.Empty(t, hits)
}

func TestRenameAllOccurrences(t *testing.T) {
	in := `package: "GoogleUtilities" package: "GoogleUtilities"`
	out, hits := Apply(in)
	assert.Equal(t,
		`package: "googleutilities" package: "googleutilities"`,
		out,
	)
	require.Len(t, hits, 1)
	assert.Equal(t, 2, hits[0].Count)
}

func TestApplyNoMatches(t *testing.T) {
	in := "let package = Package(name: \"Thing\")\n"
	out, hits := Apply(in)
	assert.Equal(t, in, out)
	assert.Nil(t, hits)
}

func TestApplyIdempotent(t *testing.T) {
	once, hits := Apply(deprecatedManifest)
	assert.NotEmpty(t, hits)

	twice, hits2 := Apply(once)
	assert.Equal(t, once, twice)
	assert.Nil(t, hits2)
}

func TestApplyFullManifest(t *testing.T) {
	out, _ := Apply(deprecatedManifest)

	assert.NotContains(t, out, `.package(name:`)
	assert.Contains(t, out,
		`.package(url: "https://github.com/openid/AppAuth-iOS.git"`,
	)
	assert.NotContains(t, out, `.revision(`)
	assert.Contains(t, out, `revision: "ad3fb2e"`)
	assert.Contains(t, out, `revision: "c5eeaa6"`)
	assert.Contains(t, out, `package: "appauth-ios"`)
	assert.Contains(t, out, `package: "gtmappauth"`)
	assert.Contains(t, out, `package: "gtm-session-fetcher"`)
	assert.Contains(t, out, `package: "googleutilities"`)

	// Product names keep their casing; only the package
	// references are renamed.
	assert.Contains(t, out, `.product(name: "AppAuth",`)
}

func TestRuleOrder(t *testing.T) {
	rs := Rules()
	require.Len(t, rs, 12)
	for i, name := range namedPackages {
		assert.Equal(t, "drop-name/"+name, rs[i].Name)
	}
	assert.Equal(t, "revision-label", rs[6].Name)
	for i, r := range packageRenames {
		assert.Equal(t, "rename/"+r.old, rs[7+i].Name)
	}
}

func TestFixFileRewrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Package.swift")
	err := os.WriteFile(
		path, []byte(deprecatedManifest), 0o444,
	)
	require.NoError(t, err)

	changed, hits, err := FixFile(path)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.NotEmpty(t, hits)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	want, _ := Apply(deprecatedManifest)
	assert.Equal(t, want, string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t,
		os.FileMode(0o644), info.Mode().Perm(),
	)
}

func TestFixFileAlreadyFixed(t *testing.T) {
	fixed, _ := Apply(deprecatedManifest)
	path := filepath.Join(t.TempDir(), "Package.swift")
	err := os.WriteFile(path, []byte(fixed), 0o600)
	require.NoError(t, err)

	changed, hits, err := FixFile(path)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Nil(t, hits)

	// Untouched: no chmod, no rewrite.
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t,
		os.FileMode(0o600), info.Mode().Perm(),
	)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, fixed, string(data))
}

func TestFixFileMissing(t *testing.T) {
	_, _, err := FixFile(
		filepath.Join(t.TempDir(), "nope.swift"),
	)
	assert.Error(t, err)
}

func TestFixFileTwiceReportsNoChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Package.swift")
	err := os.WriteFile(
		path, []byte(deprecatedManifest), 0o644,
	)
	require.NoError(t, err)

	changed, _, err := FixFile(path)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, _, err = FixFile(path)
	require.NoError(t, err)
	assert.False(t, changed)
}
