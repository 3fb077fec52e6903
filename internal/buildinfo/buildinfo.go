// Package buildinfo holds build-time variables injected via ldflags.
package buildinfo

import "fmt"

// Populated by -ldflags at build time; defaults used for local dev.
var (
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
	GitBranch = "unknown"
)

// UserAgent is sent with every API request.
func UserAgent() string { return "bizdesk/" + Version }

// String is the one-line form printed by `bizdesk version`.
func String() string {
	return fmt.Sprintf("bizdesk %s (commit %s, branch %s, built %s)", Version, GitCommit, GitBranch, BuildDate)
}
