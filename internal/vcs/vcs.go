// SPDX-License-Identifier: MPL-2.0

// Package vcs initializes version control repositories for new projects.
//
// Two backends exist: GitCLI shells out to the git executable, Builtin uses
// go-git and needs no external binary. Both create a repository whose
// initial branch is configurable.
package vcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/juniensis/cedar/internal/process"
)

const (
	// BackendGit selects GitCLI.
	BackendGit = "git"
	// BackendBuiltin selects Builtin.
	BackendBuiltin = "builtin"

	// DefaultBranch is the initial branch of new repositories.
	DefaultBranch = "main"
)

// ErrUnknownBackend is the sentinel error wrapped by UnknownBackendError.
var ErrUnknownBackend = errors.New("unknown vcs backend")

type (
	// Initializer creates an empty repository in an existing directory.
	Initializer interface {
		Init(ctx context.Context, dir string) error
	}

	// GitCLI runs "git init <dir> -b <branch>". Git's standard output is
	// discarded; its diagnostics go to Stderr.
	GitCLI struct {
		Runner process.Runner
		Branch string
		Stderr io.Writer
	}

	// Builtin initializes repositories in-process with go-git.
	Builtin struct {
		Branch string
	}

	// UnknownBackendError is returned by New for an unrecognized backend.
	UnknownBackendError struct {
		Backend string
	}
)

// New returns the Initializer for backend. An empty backend selects git.
func New(backend, branch string, runner process.Runner, stderr io.Writer) (Initializer, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendGit:
		return &GitCLI{Runner: runner, Branch: branch, Stderr: stderr}, nil
	case BackendBuiltin:
		return &Builtin{Branch: branch}, nil
	default:
		return nil, &UnknownBackendError{Backend: backend}
	}
}

// Init implements Initializer.
func (g *GitCLI) Init(ctx context.Context, dir string) error {
	runner := g.Runner
	if runner == nil {
		runner = process.NewExecRunner()
	}
	code, err := runner.Run(ctx, process.Command{
		Name:   "git",
		Args:   []string{"init", dir, "-b", branchOrDefault(g.Branch)},
		Stderr: g.Stderr,
	})
	if err != nil {
		return err
	}
	if !code.IsSuccess() {
		return fmt.Errorf("git init exited with status %d", code)
	}
	return nil
}

// Init implements Initializer.
func (b *Builtin) Init(ctx context.Context, dir string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := git.PlainInitWithOptions(dir, &git.PlainInitOptions{
		InitOptions: git.InitOptions{
			DefaultBranch: plumbing.NewBranchReferenceName(branchOrDefault(b.Branch)),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to initialize repository: %w", err)
	}
	return nil
}

// Error implements the error interface.
func (e *UnknownBackendError) Error() string {
	return fmt.Sprintf("unknown vcs backend %q (expected %q or %q)", e.Backend, BackendGit, BackendBuiltin)
}

// Unwrap returns ErrUnknownBackend for errors.Is() compatibility.
func (e *UnknownBackendError) Unwrap() error { return ErrUnknownBackend }

func branchOrDefault(branch string) string {
	if branch == "" {
		return DefaultBranch
	}
	return branch
}
