// Package version reports build information for the binaries
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// BuildInfo holds version information about a build
type BuildInfo struct {
	Service   string `json:"service"    example:"sitesearch-api"`
	Version   string `json:"version"    example:"v0.3.1"`
	Commit    string `json:"commit"     example:"4f2a9c1"`
	Date      string `json:"date"       example:"2026-10-01"`
	GoVersion string `json:"go_version" example:"go1.25.0"`
}

// set with -ldflags "-X sitesearch/internal/core/version.version=v0.3.1 -X ...commit=4f2a9c1 -X ...date=2026-10-01"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Service names the running binary; cmd packages set it in main
var Service = "sitesearch"

// Info returns the build information
// without ldflags the commit and date fall back to the vcs stamp from the go toolchain
func Info() BuildInfo {
	bi := BuildInfo{
		Service:   Service,
		Version:   version,
		Commit:    commit,
		Date:      date,
		GoVersion: runtime.Version(),
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			switch {
			case s.Key == "vcs.revision" && bi.Commit == "none":
				bi.Commit = s.Value
			case s.Key == "vcs.time" && bi.Date == "unknown":
				bi.Date = s.Value
			}
		}
	}
	return bi
}

// String is the one-line form used by --version
func (b BuildInfo) String() string {
	return fmt.Sprintf("%s %s (commit %s, built %s, %s)", b.Service, b.Version, b.Commit, b.Date, b.GoVersion)
}
