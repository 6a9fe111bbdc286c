// Package version holds build metadata stamped in via ldflags:
//
//	-X .../internal/version.Version=v1.2.3
//	-X .../internal/version.Commit=$(git rev-parse --short HEAD)
//	-X .../internal/version.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)
package version

var (
	// Version is the release tag, "dev" for untagged builds.
	Version = "dev"

	// Commit is the short git revision.
	Commit = "unknown"

	// Date is the UTC build timestamp.
	Date = "unknown"
)
