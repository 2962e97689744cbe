// Package version holds the build version, overridden at release time via
// -ldflags "-X github.com/lioncurt/shopfront-cli/internal/version.Version=...".
package version

var Version = "dev"
