// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Name is the program name used in help output and the User-Agent header
const Name = "ghfinder"

// Set via -ldflags at build time
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func GetVersion() string {
	if Version == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
			return info.Main.Version
		}
	}
	return Version
}

// GetUserAgent returns the User-Agent sent to the API
func GetUserAgent() string {
	return fmt.Sprintf("%s-cli/%s", Name, GetVersion())
}

func GetBuildInfo() string {
	return fmt.Sprintf("%s %s\nGit Commit: %s\nBuild Date: %s\nGo Version: %s\nOS/Arch: %s/%s",
		Name,
		"Version: "+GetVersion(),
		GitCommit,
		BuildDate,
		runtime.Version(),
		runtime.GOOS,
		runtime.GOARCH,
	)
}
