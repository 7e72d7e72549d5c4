// Package version exposes the ReObserve release string, embedded from
// the VERSION file so the binary, the version subcommand, and the
// /health payload all report the same value.
package version

import (
	_ "embed"
)

//go:embed VERSION
var Version string

// Get returns the ReObserve release string, e.g. "v0.1.0".
func Get() string {
	return Version
}
