package version

import (
	"fmt"
	"runtime"
)

// Set at build time with -ldflags "-X osuisetup/internal/version.Version=..."
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Info represents version information
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// GetInfo returns version information
func GetInfo() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String renders the -version output
func (i Info) String() string {
	return fmt.Sprintf("osui-setup %s\ncommit %s, built %s\n%s %s",
		i.Version, i.GitCommit, i.BuildDate, i.GoVersion, i.Platform)
}
