// Package version provides build-time version information.
package version

import "fmt"

// Set at build time with -ldflags "-X histlogo/internal/version.Version=...".
var (
	Version   = "0.2.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String formats the version with build metadata.
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, GitCommit, BuildTime)
}
