package version

import "fmt"

// overwritten via ldflags on release builds
var (
	Version   = "dev"
	GitCommit = "none"
	BuildDate = "unknown"

	FullVersion = fmt.Sprintf("%s (%s, %s)", Version, GitCommit, BuildDate)
)
