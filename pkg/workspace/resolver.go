// Package workspace locates the NWDI build workspace a command operates on.
package workspace

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// MarkerDir is the folder the NWDI build tools create at the workspace root.
const MarkerDir = ".dtc"

// Resolve returns the workspace directory: the explicit path when given, else the
// nearest ancestor of the current directory holding MarkerDir, else the current directory.
func Resolve(fs afero.Fs, explicit string) string {
	if explicit = strings.TrimSpace(explicit); explicit != "" {
		if !filepath.IsAbs(explicit) {
			if abs, err := filepath.Abs(explicit); err == nil {
				return abs
			}
		}
		return explicit
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}

	if root, ok := Detect(fs, cwd); ok {
		return root
	}
	return cwd
}

// Detect walks up from start looking for a folder containing MarkerDir.
func Detect(fs afero.Fs, start string) (string, bool) {
	if fs == nil {
		fs = afero.NewOsFs()
	}

	dir := filepath.Clean(start)
	for {
		if ok, err := afero.DirExists(fs, filepath.Join(dir, MarkerDir)); err == nil && ok {
			return dir, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}
