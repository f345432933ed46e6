package version

import (
	"fmt"
	"runtime"
)

// Set at build time with -ldflags "-X github.com/RajAryanIITBHU/file-to-link/internal/version.Version=...".
var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)

// GetInfo returns a one-line build description.
func GetInfo() string {
	return fmt.Sprintf("%s (commit %s, built %s, %s)", Version, Commit, BuildTime, runtime.Version())
}
