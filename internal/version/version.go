// Package version exposes build metadata stamped via ldflags:
// go build -ldflags "-X github.com/yeswalrus/bazel-compilation-database/internal/version.Version=v1.2.0".
package version

import "fmt"

var (
	Version   = "unknown"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

// String renders the version, with the commit appended when stamped.
func String() string {
	if GitCommit == "unknown" {
		return Version
	}
	return fmt.Sprintf("%s (%s)", Version, GitCommit)
}
