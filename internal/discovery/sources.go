// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/juniensis/cedar/internal/project"
)

// ErrSymlinkLoop is the sentinel error wrapped by SymlinkLoopError.
var ErrSymlinkLoop = errors.New("directory symlink loop")

type (
	// Options tunes a discovery walk.
	Options struct {
		// Ignore are doublestar patterns, relative to the walk root and using
		// forward slashes, for files and directories to leave out. An empty
		// slice keeps every file.
		Ignore []string
	}

	// SymlinkLoopError is returned when a directory symlink leads back to
	// one of the directories enclosing it.
	SymlinkLoopError struct {
		Path string
	}
)

// Discover returns every file under root, depth first. A directory's files
// are spliced in at the position where the directory was encountered, and
// the entries of each directory are visited in lexical order. Paths are
// joined onto root as given.
//
// The walk is all-or-nothing: if any directory cannot be read, no paths
// are returned.
func Discover(root string, opts Options) ([]string, error) {
	if err := validatePatterns(opts.Ignore); err != nil {
		return nil, err
	}

	files := []string{}
	if err := walk(root, "", opts.Ignore, nil, &files); err != nil {
		return nil, err
	}

	slog.Debug("discovered sources", "root", root, "count", len(files))
	return files, nil
}

// Sources discovers the files of a project: everything under src followed
// by everything under include. The order matters to the linker.
func Sources(layout project.Layout, opts Options) ([]string, error) {
	src, err := Discover(layout.Src, opts)
	if err != nil {
		return nil, err
	}
	include, err := Discover(layout.Include, opts)
	if err != nil {
		return nil, err
	}
	return append(src, include...), nil
}

// walk appends the files below dir to files. rel is dir relative to the walk
// root in slash form, used for ignore matching. ancestors holds the
// directories already open above dir.
func walk(dir, rel string, ignore []string, ancestors []os.FileInfo, files *[]string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("discover sources in %s: %w", dir, err)
	}
	for _, a := range ancestors {
		if os.SameFile(a, info) {
			return &SymlinkLoopError{Path: dir}
		}
	}
	ancestors = append(ancestors, info)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("discover sources in %s: %w", dir, err)
	}

	for _, entry := range entries {
		full := filepath.Join(dir, entry.Name())
		entryRel := path.Join(rel, entry.Name())

		isDir, err := isDirectory(full, entry)
		if err != nil {
			return fmt.Errorf("discover sources in %s: %w", dir, err)
		}

		if isIgnored(entryRel, isDir, ignore) {
			continue
		}

		if isDir {
			if err := walk(full, entryRel, ignore, ancestors[:len(ancestors):len(ancestors)], files); err != nil {
				return err
			}
			continue
		}
		*files = append(*files, full)
	}
	return nil
}

// isDirectory follows symlinks so a link to a directory is walked.
func isDirectory(full string, entry fs.DirEntry) (bool, error) {
	if entry.Type()&fs.ModeSymlink == 0 {
		return entry.IsDir(), nil
	}
	info, err := os.Stat(full)
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}

func isIgnored(rel string, isDir bool, ignore []string) bool {
	for _, pat := range ignore {
		if matched, err := doublestar.Match(pat, rel); err == nil && matched {
			return true
		}
		// "dir/**" also names the directory itself.
		if isDir {
			if matched, err := doublestar.Match(pat, rel+"/"); err == nil && matched {
				return true
			}
		}
	}
	return false
}

func validatePatterns(patterns []string) error {
	for _, pat := range patterns {
		if !doublestar.ValidatePattern(pat) {
			return fmt.Errorf("invalid ignore pattern %q: %w", pat, doublestar.ErrBadPattern)
		}
	}
	return nil
}

// Error implements the error interface.
func (e *SymlinkLoopError) Error() string {
	return fmt.Sprintf("discover sources in %s: %s", e.Path, ErrSymlinkLoop)
}

// Unwrap returns ErrSymlinkLoop for errors.Is() compatibility.
func (e *SymlinkLoopError) Unwrap() error { return ErrSymlinkLoop }
