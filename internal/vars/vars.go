// Package vars holds build information injected with -ldflags "-X".
package vars

import (
	"fmt"
	"runtime"
)

var (
	// Version is the release version.
	Version = "dev"
	// Commit is the git commit hash of the build.
	Commit = "unknown"
	// BuildTime is the build date in RFC3339.
	BuildTime = "unknown"
)

// Info is the structured build information.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Get returns the build information.
func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String returns a one line version string.
func (i Info) String() string {
	commit := i.Commit
	if len(commit) > 8 {
		commit = commit[:8]
	}

	return fmt.Sprintf("recolor %s (commit %s, built %s, %s, %s)",
		i.Version, commit, i.BuildTime, i.GoVersion, i.Platform)
}

// Print writes the version string to stdout.
func Print() {
	fmt.Println(Get().String())
}
