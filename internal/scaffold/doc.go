// SPDX-License-Identifier: MPL-2.0

// Package scaffold creates new cedar projects: the src, include and build
// directories, a hello-world src/main.c and a default cedar.toml named after
// the project directory. It optionally initializes a repository through a
// vcs.Initializer once the files are in place.
package scaffold
