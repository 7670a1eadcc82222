package config

import (
	"path/filepath"
	"strings"
)

// Directory is a labelled path whose writability gates the install.
type Directory struct {
	// Label is the path as shown to the operator, relative to the base.
	Label string
	Path  string
}

// Directories returns the checked directories in display order:
// base, upload, runtime, installer, configuration.
func (p PathsConfig) Directories() []Directory {
	return []Directory{
		{Label: "./", Path: p.Base},
		{Label: p.label(p.Upload), Path: p.Upload},
		{Label: p.label(p.Runtime), Path: p.Runtime},
		{Label: p.label(p.Install), Path: p.Install},
		{Label: p.label(p.Conf), Path: p.Conf},
	}
}

// label renders path relative to Base, or as-is when it lies outside it.
func (p PathsConfig) label(path string) string {
	rel, err := filepath.Rel(p.Base, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return "./" + filepath.ToSlash(rel)
}
