// Package version exposes build metadata injected through -ldflags.
package version

import (
	"fmt"
	"io"
	"runtime"
)

// Set at build time, e.g. -ldflags "-X github.com/goliatone/nwdi-cpd/pkg/version.Version=v1.2.0".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info describes the running binary.
type Info struct {
	Version   string
	Commit    string
	Date      string
	GoVersion string
	Platform  string
}

// Get returns the build metadata.
func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// Print writes the build metadata to w.
func Print(w io.Writer) error {
	info := Get()
	_, err := fmt.Fprintf(w, "nwdi-cpd %s\n  commit: %s\n  built:  %s\n  go:     %s (%s)\n",
		info.Version, info.Commit, info.Date, info.GoVersion, info.Platform)
	return err
}
