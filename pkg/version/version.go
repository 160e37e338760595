// Package version holds build metadata injected with -ldflags.
package version

import (
	"fmt"
	"runtime/debug"
)

// Build metadata. Overridden at link time:
//
//	-X github.com/jeffcwolf/metadata-explorer/pkg/version.Version=v1.2.3
var (
	Version = "dev"
	Commit  = "<unknown>"
	Date    = "<unknown>"
)

const revisionKey = "vcs.revision"

// InitBinaryVersion fills unset metadata from the embedded build info.
func InitBinaryVersion() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	if Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}

	if Commit == "<unknown>" {
		for _, setting := range info.Settings {
			if setting.Key == revisionKey {
				Commit = setting.Value
			}
		}
	}
}

// String formats the metadata for the version command.
func String() string {
	return fmt.Sprintf("metadata-explorer %s (commit: %s, built: %s)", Version, Commit, Date)
}
