// SPDX-License-Identifier: MPL-2.0

// Package process runs external programs (compilers, built artifacts, git)
// on behalf of cedar. Everything that spawns a child goes through the Runner
// interface so orchestration logic can be tested with a recording fake
// (see package processtest).
package process
