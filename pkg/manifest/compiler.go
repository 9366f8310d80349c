// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"errors"
	"fmt"
)

const (
	// CompilerGCC is the GNU C compiler.
	CompilerGCC Compiler = "gcc"
	// CompilerClang is the LLVM C compiler.
	CompilerClang Compiler = "clang"
)

// ErrInvalidCompiler is the sentinel error wrapped by InvalidCompilerError.
var ErrInvalidCompiler = errors.New("invalid compiler")

type (
	// Compiler is the executable name of a recognized C compiler.
	Compiler string

	// InvalidCompilerError is returned when build.compiler names a compiler
	// outside the recognized set.
	InvalidCompilerError struct {
		Value string
	}
)

// compilerSpellings maps every accepted manifest spelling to its executable.
var compilerSpellings = map[string]Compiler{
	"gcc":   CompilerGCC,
	"GCC":   CompilerGCC,
	"clang": CompilerClang,
	"CLANG": CompilerClang,
	"Clang": CompilerClang,
}

// ResolveCompiler maps a build.compiler value to the executable to invoke.
func ResolveCompiler(id string) (Compiler, error) {
	if c, ok := compilerSpellings[id]; ok {
		return c, nil
	}
	return "", &InvalidCompilerError{Value: id}
}

// String returns the executable name.
func (c Compiler) String() string { return string(c) }

// Error implements the error interface.
func (e *InvalidCompilerError) Error() string {
	return fmt.Sprintf("invalid compiler %q (expected gcc or clang)", e.Value)
}

// Unwrap returns ErrInvalidCompiler for errors.Is() compatibility.
func (e *InvalidCompilerError) Unwrap() error { return ErrInvalidCompiler }
