// SPDX-License-Identifier: MPL-2.0

// Package build compiles and runs cedar projects.
//
// An Orchestrator takes a project directory through a fixed sequence of
// stages: it validates the layout, loads the manifest, discovers sources,
// resolves the compiler, and dispatches a single compiler process. Any
// stage can fail, which aborts the rest; the returned StageError records how
// far the build got. Nothing is cached between calls: every Build reads the
// manifest and walks the source tree again.
//
// File organization:
//   - orchestrator.go: Orchestrator, Build and Run
//   - invocation.go: compiler command-line construction
//   - stage.go: build stages
//   - errors.go: error types
package build
