// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"log/slog"

	"github.com/juniensis/cedar/internal/process"
)

// ExitError signals a non-zero exit code without forcing os.Exit in RunE handlers.
type ExitError struct {
	Code process.ExitCode
	Err  error
}

// Error returns the error message for ExitError.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// Status converts Code into a process exit status. Codes outside 0-255,
// such as -1 for a child killed by a signal, become 1.
func (e *ExitError) Status() int {
	if err := e.Code.Validate(); err != nil {
		slog.Debug("exit code out of range", "error", err)
		return 1
	}
	return int(e.Code)
}
