// SPDX-License-Identifier: MPL-2.0

package scaffold

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/juniensis/cedar/internal/project"
	"github.com/juniensis/cedar/internal/vcs"
	"github.com/juniensis/cedar/pkg/manifest"
)

const (
	// MainFile is the scaffolded entry point, relative to the project root.
	MainFile = "src/main.c"

	// PlaceholderName is used when the project name cannot be derived from
	// the directory.
	PlaceholderName = "placeholder"

	helloWorld = "#include <stdio.h>\n\nint main() {\n\tprintf(\"Hello World!\");\n\treturn 0;\n}"
)

var (
	// ErrInvalidPath is the sentinel error wrapped by InvalidPathError.
	ErrInvalidPath = errors.New("invalid project path")
	// ErrNonEmptyPath is the sentinel error wrapped by NonEmptyPathError.
	ErrNonEmptyPath = errors.New("project path is not empty")
	// ErrVCSInit is the sentinel error wrapped by VCSError.
	ErrVCSInit = errors.New("failed to initialize repository")
)

type (
	// Options controls a scaffold operation.
	Options struct {
		// Git initializes a repository after the files are written.
		Git bool
	}

	// Reporter receives progress messages. Step must not block.
	Reporter interface {
		Step(msg string)
	}

	// Scaffolder creates projects.
	Scaffolder struct {
		vcs      vcs.Initializer
		reporter Reporter
	}

	// Result describes a created project.
	Result struct {
		Layout   project.Layout
		Manifest *manifest.Manifest
		// Repository reports whether a repository was initialized.
		Repository bool
	}

	// InvalidPathError is returned when the target is not a directory or
	// cannot be created.
	InvalidPathError struct {
		Path string
		Err  error
	}

	// NonEmptyPathError is returned when the target directory has entries.
	NonEmptyPathError struct {
		Path string
	}

	// VCSError is returned when the project was written but the repository
	// could not be initialized. The scaffold is left in place.
	VCSError struct {
		Path string
		Err  error
	}

	nopReporter struct{}
)

// NewScaffolder creates a Scaffolder. initializer may be nil when no
// operation asks for a repository; reporter may be nil.
func NewScaffolder(initializer vcs.Initializer, reporter Reporter) *Scaffolder {
	if reporter == nil {
		reporter = nopReporter{}
	}
	return &Scaffolder{vcs: initializer, reporter: reporter}
}

// New creates path with any missing parents and then initializes it as a
// project exactly like Init.
func (s *Scaffolder) New(ctx context.Context, path string, opts Options) (*Result, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, &InvalidPathError{Path: path, Err: err}
	}
	return s.Init(ctx, path, opts)
}

// Init turns the existing, empty directory path into a project. Nothing is
// written unless both checks pass and the manifest serializes.
//
// When opts.Git is set and the repository cannot be created, Init returns
// the Result together with a VCSError.
func (s *Scaffolder) Init(ctx context.Context, path string, opts Options) (*Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &InvalidPathError{Path: path, Err: err}
	}
	if !info.IsDir() {
		return nil, &InvalidPathError{Path: path}
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(entries) > 0 {
		return nil, &NonEmptyPathError{Path: path}
	}

	m := manifest.Default()
	m.Meta.Name = NameFor(path)
	if err := m.Validate(); err != nil {
		return nil, err
	}
	data, err := m.Marshal()
	if err != nil {
		return nil, err
	}

	s.reporter.Step("Generating directories and manifest")
	layout := project.LayoutOf(path)
	for _, dir := range []string{layout.Src, layout.Include, layout.Build} {
		if err := os.Mkdir(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(filepath.Join(path, filepath.FromSlash(MainFile)), []byte(helloWorld), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", MainFile, err)
	}
	if err := os.WriteFile(layout.Manifest, data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write manifest: %w", err)
	}
	slog.Debug("project scaffolded", "path", path, "name", m.Meta.Name)

	result := &Result{Layout: layout, Manifest: m}
	if !opts.Git {
		return result, nil
	}

	s.reporter.Step("Initializing git")
	if s.vcs == nil {
		return result, &VCSError{Path: path, Err: errors.New("no vcs backend configured")}
	}
	if err := s.vcs.Init(ctx, path); err != nil {
		return result, &VCSError{Path: path, Err: err}
	}
	result.Repository = true
	return result, nil
}

// NameFor derives the project name from the final segment of path. Segments
// that cannot name the build artifact yield PlaceholderName.
func NameFor(path string) string {
	name := filepath.Base(filepath.Clean(path))
	if manifest.ValidateName(name) != nil {
		return PlaceholderName
	}
	return name
}

// Error implements the error interface.
func (e *InvalidPathError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s is not a usable directory: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("%s is not a directory", e.Path)
}

// Unwrap exposes ErrInvalidPath and the underlying cause, if any.
func (e *InvalidPathError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrInvalidPath}
	}
	return []error{ErrInvalidPath, e.Err}
}

// Error implements the error interface.
func (e *NonEmptyPathError) Error() string {
	return fmt.Sprintf("%s is not empty", e.Path)
}

// Unwrap returns ErrNonEmptyPath for errors.Is() compatibility.
func (e *NonEmptyPathError) Unwrap() error { return ErrNonEmptyPath }

// Error implements the error interface.
func (e *VCSError) Error() string {
	return fmt.Sprintf("project created at %s, but the repository was not initialized: %v", e.Path, e.Err)
}

// Unwrap exposes ErrVCSInit and the backend error.
func (e *VCSError) Unwrap() []error { return []error{ErrVCSInit, e.Err} }

func (nopReporter) Step(string) {}
