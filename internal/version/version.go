// Package version holds build metadata injected via ldflags.
package version

//nolint:revive // Set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String returns a single human-readable build identifier.
func String() string {
	return Version + " (" + Commit + ", built " + Date + ")"
}
