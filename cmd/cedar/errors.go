// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/juniensis/cedar/internal/build"
	"github.com/juniensis/cedar/internal/issue"
	"github.com/juniensis/cedar/internal/process"
	"github.com/juniensis/cedar/internal/project"
	"github.com/juniensis/cedar/internal/scaffold"
	"github.com/juniensis/cedar/pkg/manifest"
)

// classifyError maps a failure to its issue catalog entry and the
// suggestions shown under the error message. Order matters: an artifact or
// VCS failure may wrap a process start error.
func classifyError(err error) (issue.Id, []string) {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return issue.BuildTimedOutId, []string{"Raise build.timeout in the cedar config, or set it to \"0s\""}
	case errors.Is(err, project.ErrInvalidDirectory):
		return issue.ProjectDirectoryInvalidId, []string{
			"Run cedar from the project root, next to cedar.toml",
			"Run 'cedar init' to turn an empty directory into a project",
		}
	case errors.Is(err, manifest.ErrInvalidCompiler):
		return issue.CompilerUnsupportedId, []string{"Set build.compiler to \"gcc\" or \"clang\" in cedar.toml"}
	case errors.Is(err, manifest.ErrInvalidManifest):
		return issue.ManifestInvalidId, []string{"Check cedar.toml for TOML syntax errors and a [meta] name"}
	case errors.Is(err, build.ErrArtifactNotExecutable):
		return issue.ArtifactNotExecutableId, []string{"Check the compiler output above; the program is only produced by a successful build"}
	case errors.Is(err, scaffold.ErrVCSInit):
		return issue.VCSInitFailedId, []string{
			"Install git, or set vcs.backend = \"builtin\" in the cedar config",
			"Run 'git init' in the project yourself",
		}
	case errors.Is(err, process.ErrStart):
		return issue.CompilerNotFoundId, []string{"Install the compiler named in cedar.toml and make sure it is on PATH"}
	case errors.Is(err, build.ErrCompilerFailed):
		return issue.CompilerFailedId, []string{"Fix the compiler errors above, or set build.strict = false"}
	case errors.Is(err, scaffold.ErrNonEmptyPath):
		return issue.ProjectPathNotEmptyId, []string{"Use 'cedar new <name>' to create the project in a new directory"}
	case errors.Is(err, scaffold.ErrInvalidPath):
		return issue.ProjectPathInvalidId, nil
	case errors.Is(err, os.ErrPermission):
		return issue.PermissionDeniedId, []string{"Check the permissions of the project directory"}
	default:
		return 0, nil
	}
}

// describeError wraps err in an issue.Problem for operation. Errors that
// are already problems, such as config load failures, pass through.
func describeError(operation, resource string, err error) error {
	var p *issue.Problem
	if errors.As(err, &p) {
		return err
	}

	id, hints := classifyError(err)
	return issue.Wrap(err, id, operation, resource, hints...)
}

// formatErrorForDisplay formats an error for user display. Problems list
// their hints, and in verbose mode the full chain of causes.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var p *issue.Problem
	if errors.As(err, &p) {
		return p.Format(verboseMode)
	}
	return err.Error()
}

// renderError prints err followed by its issue catalog entry, if any.
// noColor selects the plain glamour style.
func renderError(w io.Writer, err error, verbose, noColor bool) {
	fmt.Fprintf(w, "\n%s %s\n", ErrorStyle.Render("Error:"), formatErrorForDisplay(err, verbose))

	var p *issue.Problem
	if !errors.As(err, &p) {
		return
	}
	entry := p.Entry()
	if entry == nil {
		return
	}

	style := "dark"
	if noColor {
		style = "notty"
	}
	rendered, renderErr := entry.Render(style)
	if renderErr != nil {
		slog.Warn("failed to render issue catalog entry", "issueID", p.Issue, "error", renderErr)
		return
	}
	fmt.Fprint(w, rendered)
}
