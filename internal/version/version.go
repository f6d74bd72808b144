// Package version reports build metadata set through -ldflags, falling back to the
// module information embedded by the Go toolchain.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Set via -ldflags "-X github.com/longkey1/chatc/internal/version.Version=..."
var (
	Version   = ""
	Commit    = ""
	BuildTime = ""
)

// Short returns the version number only
func Short() string {
	if Version != "" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

// Info returns version, commit, build time and Go version
func Info() string {
	commit, buildTime := Commit, BuildTime
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if commit == "" {
					commit = s.Value
				}
			case "vcs.time":
				if buildTime == "" {
					buildTime = s.Value
				}
			}
		}
	}
	if commit == "" {
		commit = "unknown"
	}
	if buildTime == "" {
		buildTime = "unknown"
	}

	return fmt.Sprintf("chatc %s\n  Commit:     %s\n  Build time: %s\n  Go version: %s",
		Short(), commit, buildTime, runtime.Version())
}
