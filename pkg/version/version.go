// Package version holds build-time version information, populated via
// -ldflags at release time.
package version

// Build metadata, overridden by the release pipeline.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
