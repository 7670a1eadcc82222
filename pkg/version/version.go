// Package version reports which installer build is running.
//
// Release builds stamp the variables below through the linker, for
// example:
//
//	go build -ldflags "-X github.com/bjyadmin/installer/pkg/version.Version=1.2.0 \
//	  -X github.com/bjyadmin/installer/pkg/version.Commit=$(git rev-parse --short HEAD)"
//
// Unstamped builds report "dev".
package version

import (
	"fmt"
	"runtime"
)

// Linker-stamped build metadata.
var (
	Version = "dev"
	Commit  = "unknown"
	// Date is RFC3339.
	Date = "unknown"
)

// GoVersion is read from the running binary, never stamped.
var GoVersion = runtime.Version()

// BuildInfo is what `installer version --json` prints.
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// String renders the info on one line, as `installer version` prints it.
func (b BuildInfo) String() string {
	return fmt.Sprintf("installer %s (commit: %s, built: %s, go: %s, %s/%s)",
		b.Version, b.Commit, b.Date, b.GoVersion, b.OS, b.Arch)
}

// GetInfo collects the stamped metadata and the host platform.
func GetInfo() BuildInfo {
	return BuildInfo{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: GoVersion,
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// String is GetInfo().String().
func String() string {
	return GetInfo().String()
}

// Short returns the bare release string, for scripts.
func Short() string {
	return Version
}
