package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

var (
	// Version is the semantic version (set by ldflags during build)
	Version = "dev"

	// GitCommit is the git commit hash (set by ldflags during build)
	GitCommit = ""
)

// GetVersion returns the version, falling back to module build info when the
// ldflags version is not set.
func GetVersion() string {
	if Version != "" && Version != "dev" {
		return Version
	}

	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "(devel)" && info.Main.Version != "" {
			return info.Main.Version
		}
	}

	return "dev"
}

// GetFullVersion returns the version with commit and platform details for
// startup logging.
func GetFullVersion() string {
	v := GetVersion()

	if GitCommit != "" && len(GitCommit) >= 7 {
		v = fmt.Sprintf("%s-%s", v, GitCommit[:7])
	}

	return fmt.Sprintf("%s (%s, %s/%s)", v, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
