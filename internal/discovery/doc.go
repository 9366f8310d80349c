// SPDX-License-Identifier: MPL-2.0

// Package discovery enumerates the source files of a cedar project.
//
// Discovery walks a directory tree depth first and returns file paths in a
// stable order: the entries of each directory are visited lexically and the
// contents of a subdirectory appear where the subdirectory was found. For a
// project, everything under src/ precedes everything under include/, which
// is the order handed to the compiler.
package discovery
