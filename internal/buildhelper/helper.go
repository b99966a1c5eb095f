// Package buildhelper resolves the on-disk layout of development components inside an
// NWDI build workspace.
package buildhelper

import (
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/goliatone/nwdi-cpd/internal/component"
)

// Folder names generated from data dictionary definitions. They never hold hand written code.
var generatedDictionaryFolders = []string{"gen_ddic"}

// Helper resolves source folders, test source folders and class path entries of components.
type Helper interface {
	PathToWorkspace() string
	SourceFolders(c component.Component) []string
	TestSourceFolders(c component.Component) []string
	ClassPath(c component.Component) []string
}

// New returns a Helper rooted at workspace. A nil fs uses the OS filesystem.
func New(workspace string, fs afero.Fs) Helper {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &helper{
		workspace: filepath.Clean(workspace),
		fs:        fs,
	}
}

type helper struct {
	workspace string
	fs        afero.Fs
}

func (h *helper) PathToWorkspace() string {
	return h.workspace
}

// ComponentBase returns <workspace>/.dtc/DCs/<vendor>/<name>/_comp.
func ComponentBase(workspace string, c component.Component) string {
	parts := append([]string{workspace, ".dtc", "DCs", c.Vendor}, strings.Split(c.Name, "/")...)
	parts = append(parts, "_comp")
	return filepath.Join(parts...)
}

func (h *helper) SourceFolders(c component.Component) []string {
	return h.existingFolders(c, c.SourceFolders)
}

func (h *helper) TestSourceFolders(c component.Component) []string {
	return h.existingFolders(c, c.TestSourceFolders)
}

func (h *helper) ClassPath(c component.Component) []string {
	entries := make([]string, 0, len(c.ClassPath))
	for _, entry := range c.ClassPath {
		if entry == "" {
			continue
		}
		if !filepath.IsAbs(entry) {
			entry = filepath.Join(h.workspace, entry)
		}
		entries = append(entries, filepath.ToSlash(entry))
	}
	return entries
}

func (h *helper) existingFolders(c component.Component, folders []string) []string {
	base := ComponentBase(h.workspace, c)
	result := []string{}

	for _, folder := range folders {
		if folder == "" || isGeneratedDictionaryFolder(folder) {
			continue
		}

		path := filepath.Join(base, folder)
		if ok, err := afero.DirExists(h.fs, path); err != nil || !ok {
			continue
		}
		result = append(result, filepath.ToSlash(path))
	}

	return result
}

func isGeneratedDictionaryFolder(folder string) bool {
	for _, segment := range strings.Split(filepath.ToSlash(folder), "/") {
		for _, generated := range generatedDictionaryFolders {
			if segment == generated {
				return true
			}
		}
	}
	return false
}
