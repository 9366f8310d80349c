// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// Problem carries the failed operation, the path involved, remediation hints
// and the id of its catalog entry. The catalog in issue.go holds longer Markdown guidance
// for each failure class, rendered in the terminal with glamour.
package issue
