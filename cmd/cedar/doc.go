// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for cedar.
//
// This package implements the Cobra command hierarchy for the cedar CLI:
// project scaffolding (init, new), building and running (build, run,
// watch) and configuration management (config).
package cmd
