// SPDX-License-Identifier: MPL-2.0

package process

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
)

// ErrStart is the sentinel error wrapped by StartError.
var ErrStart = errors.New("failed to start process")

type (
	// Command describes one child process. Nil writers and readers are
	// connected to the null device; callers that want the child to share
	// the terminal pass their own standard streams.
	Command struct {
		// Name is the executable, looked up in PATH when it has no separator.
		Name string
		// Args are passed after Name.
		Args []string
		// Dir is the working directory; empty means the current one.
		Dir string

		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
	}

	// Runner starts a child process and blocks until it exits.
	//
	// A process that starts and exits returns its exit code and a nil error,
	// whatever the code. An error is returned only when the process could not
	// be started (wrapping ErrStart) or could not be waited on.
	Runner interface {
		Run(ctx context.Context, cmd Command) (ExitCode, error)
	}

	// StartError is returned when the executable could not be launched,
	// typically because it is not installed.
	StartError struct {
		Name string
		Err  error
	}

	// ExecRunner runs commands with os/exec.
	ExecRunner struct{}
)

// NewExecRunner creates a Runner backed by os/exec.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run starts cmd and waits for it to exit. There is no timeout beyond the
// one carried by ctx.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) (ExitCode, error) {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	c.Stdin = cmd.Stdin
	c.Stdout = cmd.Stdout
	c.Stderr = cmd.Stderr

	slog.Debug("spawning process", "name", cmd.Name, "args", cmd.Args)

	if err := c.Start(); err != nil {
		return 0, &StartError{Name: cmd.Name, Err: err}
	}

	if err := c.Wait(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return 0, fmt.Errorf("%s interrupted: %w", cmd.Name, ctxErr)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return ExitCode(exitErr.ExitCode()), nil
		}
		return 0, fmt.Errorf("wait for %s: %w", cmd.Name, err)
	}
	return 0, nil
}

// String renders the command line for logs and dry output.
func (c Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, c.Name)
	parts = append(parts, c.Args...)
	return strings.Join(parts, " ")
}

// Error implements the error interface.
func (e *StartError) Error() string {
	return fmt.Sprintf("failed to start %s: %v", e.Name, e.Err)
}

// Unwrap exposes both ErrStart and the underlying cause.
func (e *StartError) Unwrap() []error { return []error{ErrStart, e.Err} }
