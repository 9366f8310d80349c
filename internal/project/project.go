// SPDX-License-Identifier: MPL-2.0

// Package project describes the cedar project directory layout and checks
// that a directory has that shape before anything is built from it.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/juniensis/cedar/pkg/manifest"
)

const (
	// SrcDir holds the primary sources.
	SrcDir = "src"
	// IncludeDir holds headers and shared sources.
	IncludeDir = "include"
	// BuildDir is the output root.
	BuildDir = "build"
)

// ErrInvalidDirectory is the sentinel error wrapped by InvalidDirectoryError.
var ErrInvalidDirectory = errors.New("invalid project directory")

type (
	// Layout holds the paths of a project rooted at Root. Paths are joined
	// onto Root as given, so a relative root yields relative paths.
	Layout struct {
		Root     string
		Manifest string
		Src      string
		Include  string
		Build    string
	}

	// InvalidDirectoryError is returned when one or more required project
	// paths do not exist.
	InvalidDirectoryError struct {
		Path    string
		Missing []string
	}
)

// LayoutOf returns the layout of the project rooted at root.
func LayoutOf(root string) Layout {
	return Layout{
		Root:     root,
		Manifest: filepath.Join(root, manifest.FileName),
		Src:      filepath.Join(root, SrcDir),
		Include:  filepath.Join(root, IncludeDir),
		Build:    filepath.Join(root, BuildDir),
	}
}

// Artifact returns the output executable path for a project named name.
func (l Layout) Artifact(name string) string {
	return filepath.Join(l.Build, name)
}

// Validate succeeds only if the manifest file and the src, include and build
// directories all exist under root. It does not look inside the manifest.
func Validate(root string) error {
	l := LayoutOf(root)

	var missing []string
	for _, entry := range []struct{ name, path string }{
		{manifest.FileName, l.Manifest},
		{SrcDir, l.Src},
		{IncludeDir, l.Include},
		{BuildDir, l.Build},
	} {
		if _, err := os.Stat(entry.path); err != nil {
			missing = append(missing, entry.name)
		}
	}

	if len(missing) > 0 {
		return &InvalidDirectoryError{Path: root, Missing: missing}
	}
	return nil
}

// Error implements the error interface.
func (e *InvalidDirectoryError) Error() string {
	return fmt.Sprintf("invalid project directory %s: missing %s", e.Path, strings.Join(e.Missing, ", "))
}

// Unwrap returns ErrInvalidDirectory for errors.Is() compatibility.
func (e *InvalidDirectoryError) Unwrap() error { return ErrInvalidDirectory }
