// Package version holds build-time version metadata.
package version

// Version is the application version, set via ldflags in release builds:
// go build -ldflags "-X github.com/MonaAghili/public-notes/internal/version.Version=v1.2.0".
var Version = "dev"

// Build metadata, also injected at build time.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)
