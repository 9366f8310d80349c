// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"strings"
	"testing"

	"github.com/juniensis/cedar/internal/build"
	"github.com/juniensis/cedar/internal/issue"
	"github.com/juniensis/cedar/internal/process"
	"github.com/juniensis/cedar/internal/project"
	"github.com/juniensis/cedar/internal/scaffold"
	"github.com/juniensis/cedar/pkg/manifest"
)

func TestClassifyError(t *testing.T) {
	t.Parallel()

	notFound := &process.StartError{Name: "gcc", Err: exec.ErrNotFound}
	_, unknownCompiler := manifest.ResolveCompiler("tcc")

	tests := []struct {
		name string
		err  error
		want issue.Id
	}{
		{"invalid directory", &build.StageError{Stage: build.StageStart, Err: &project.InvalidDirectoryError{Path: "x", Missing: []string{"src"}}}, issue.ProjectDirectoryInvalidId},
		{"invalid manifest", &build.StageError{Stage: build.StageValidated, Err: &manifest.InvalidManifestError{Field: "meta.name"}}, issue.ManifestInvalidId},
		{"unknown compiler", unknownCompiler, issue.CompilerUnsupportedId},
		{"compiler missing", &build.StageError{Stage: build.StageCompilerResolved, Err: notFound}, issue.CompilerNotFoundId},
		{"compiler failed", &build.CompilerFailedError{Compiler: manifest.CompilerGCC, ExitCode: 1}, issue.CompilerFailedId},
		{"artifact wraps start error", &build.ArtifactError{Path: "build/demo", Err: notFound}, issue.ArtifactNotExecutableId},
		{"vcs wraps start error", &scaffold.VCSError{Path: "p", Err: notFound}, issue.VCSInitFailedId},
		{"non-empty path", &scaffold.NonEmptyPathError{Path: "p"}, issue.ProjectPathNotEmptyId},
		{"invalid path", &scaffold.InvalidPathError{Path: "p", Err: errors.New("boom")}, issue.ProjectPathInvalidId},
		{"timeout", fmt.Errorf("compile: %w", context.DeadlineExceeded), issue.BuildTimedOutId},
		{"permission", fmt.Errorf("write: %w", fs.ErrPermission), issue.PermissionDeniedId},
		{"unclassified", errors.New("something else"), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, _ := classifyError(tt.err)
			if got != tt.want {
				t.Errorf("classifyError() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDescribeError(t *testing.T) {
	t.Parallel()

	t.Run("wraps with catalog entry", func(t *testing.T) {
		t.Parallel()
		cause := &scaffold.NonEmptyPathError{Path: "/tmp/p"}
		err := describeError("create project", "/tmp/p", cause)

		var p *issue.Problem
		if !errors.As(err, &p) {
			t.Fatalf("describeError() = %T, want *issue.Problem", err)
		}
		if p.Issue != issue.ProjectPathNotEmptyId {
			t.Errorf("Issue = %d, want %d", p.Issue, issue.ProjectPathNotEmptyId)
		}
		if len(p.Hints) == 0 {
			t.Error("expected hints")
		}
		if !errors.Is(err, scaffold.ErrNonEmptyPath) {
			t.Error("describeError() lost the cause")
		}
	})

	t.Run("passes problems through", func(t *testing.T) {
		t.Parallel()
		original := issue.Wrap(errors.New("bad toml"), issue.ConfigLoadFailedId, "load configuration", "")
		if got := describeError("build project", "", original); got != original {
			t.Errorf("describeError() = %v, want the original error", got)
		}
	})
}

func TestRenderError(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := describeError("build project", "/work", &project.InvalidDirectoryError{Path: "/work", Missing: []string{"src"}})
	renderError(&buf, err, false, true)

	out := buf.String()
	for _, want := range []string{"Error:", "failed to build project: /work", "Run cedar from the project root", "not a cedar project"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderError_Unclassified(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	renderError(&buf, errors.New("plain failure"), false, true)

	if got, want := buf.String(), "\nError: plain failure\n"; got != want {
		t.Errorf("renderError() = %q, want %q", got, want)
	}
}
