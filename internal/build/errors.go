// SPDX-License-Identifier: MPL-2.0

package build

import (
	"errors"
	"fmt"

	"github.com/juniensis/cedar/internal/process"
	"github.com/juniensis/cedar/pkg/manifest"
)

var (
	// ErrCompilerFailed is the sentinel error wrapped by CompilerFailedError.
	ErrCompilerFailed = errors.New("compiler failed")
	// ErrArtifactNotExecutable is the sentinel error wrapped by ArtifactError.
	ErrArtifactNotExecutable = errors.New("artifact is not executable")
)

type (
	// StageError is returned by Build when a stage fails. Stage is the last
	// stage that completed; Err is the cause.
	StageError struct {
		Stage Stage
		Err   error
	}

	// CompilerFailedError is returned in strict mode when the compiler
	// exits with a non-zero status.
	CompilerFailedError struct {
		Compiler manifest.Compiler
		ExitCode process.ExitCode
	}

	// ArtifactError is returned by Run when the built artifact cannot be
	// started, usually because the compiler did not produce it.
	ArtifactError struct {
		Path string
		Err  error
	}
)

// Error implements the error interface.
func (e *StageError) Error() string {
	return fmt.Sprintf("build failed after stage %q: %v", e.Stage, e.Err)
}

// Unwrap returns the cause.
func (e *StageError) Unwrap() error { return e.Err }

// Error implements the error interface.
func (e *CompilerFailedError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Compiler, e.ExitCode)
}

// Unwrap returns ErrCompilerFailed for errors.Is() compatibility.
func (e *CompilerFailedError) Unwrap() error { return ErrCompilerFailed }

// Error implements the error interface.
func (e *ArtifactError) Error() string {
	return fmt.Sprintf("cannot run %s: %v", e.Path, e.Err)
}

// Unwrap exposes ErrArtifactNotExecutable and the start failure.
func (e *ArtifactError) Unwrap() []error { return []error{ErrArtifactNotExecutable, e.Err} }
