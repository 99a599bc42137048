package pokedex

import (
	_ "embed"
)

//nolint:gochecknoglobals // set via ldflags at build time.
var (
	// Version is the application version, set via ldflags.
	Version = "dev"
	// Commit is the VCS revision, set via ldflags.
	Commit = "none"
	// CompiledAt is the build timestamp, set via ldflags.
	CompiledAt = "unknown"
)

// DefaultConfig is the configuration used when no file is given.
//
//go:embed configs/pokedex.yaml
var DefaultConfig []byte

// BuildInfo describes the running binary.
type BuildInfo struct {
	Version    string `json:"version"`
	Commit     string `json:"commit"`
	CompiledAt string `json:"compiled_at"`
}

// Build returns the build information of the running binary.
func Build() BuildInfo {
	return BuildInfo{Version: Version, Commit: Commit, CompiledAt: CompiledAt}
}
