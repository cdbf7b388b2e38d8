// Package version holds the build metadata stamped into release binaries.
package version

import (
	"fmt"
	"runtime"
	"strings"
)

// Stamped through -ldflags at release time; empty values mean a local build.
var (
	version   = "dev"
	gitCommit = ""
	buildDate = ""
)

// Info is the resolved build description of the running binary.
type Info struct {
	Version   string
	Commit    string
	Date      string
	GoVersion string
	Platform  string
}

// Current resolves the stamped values, substituting "unknown" for anything
// the build did not provide.
func Current() Info {
	return Info{
		Version:   version,
		Commit:    orUnknown(gitCommit),
		Date:      orUnknown(buildDate),
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

func orUnknown(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}

func (i Info) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "revu %s\n", i.Version)
	fmt.Fprintf(&b, "  commit:   %s\n", i.Commit)
	fmt.Fprintf(&b, "  built:    %s\n", i.Date)
	fmt.Fprintf(&b, "  go:       %s\n", i.GoVersion)
	fmt.Fprintf(&b, "  platform: %s\n", i.Platform)
	return b.String()
}

// Print writes the build description to stdout.
func Print() {
	fmt.Print(Current())
}
