package hatchclient

import "runtime"

// Build metadata, overridden with -ldflags "-X github.com/hatchsocial/hatchclient.Version=...".
var (
	Version   = "0.3.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// GetVersionInfo returns build metadata keyed for structured logs and the
// hatchctl version command.
func GetVersionInfo() map[string]string {
	return map[string]string{
		"version":    Version,
		"commit":     GitCommit,
		"build_date": BuildDate,
		"go_version": runtime.Version(),
	}
}
