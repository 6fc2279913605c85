// Package version provides build-time version information.
package version

// These variables are set at build time using
// -ldflags "-X noteboard/internal/version.Version=..."
var (
	// Version is the semantic version
	Version = "0.3.0"

	// BuildTime is the UTC time when the binary was built
	BuildTime = "unknown"

	// GitCommit is the git commit hash
	GitCommit = "unknown"
)
