// Package version carries build metadata stamped in via -ldflags.
package version

import "fmt"

var (
	// Version is the release tag, or "dev" for source builds
	Version = "dev"

	// Commit is the git revision the binary was built from
	Commit = "unknown"

	// Date is the build timestamp
	Date = "unknown"

	// BuiltBy names the build pipeline ("goreleaser", "source", ...)
	BuiltBy = "source"
)

// GetVersion returns the release tag, defaulting to "dev"
func GetVersion() string {
	if Version == "" {
		return "dev"
	}
	return Version
}

// GetFullVersion returns the tag plus commit and build provenance
func GetFullVersion() string {
	return fmt.Sprintf("%s (commit: %s, built: %s, by: %s)",
		GetVersion(), Commit, Date, BuiltBy)
}
