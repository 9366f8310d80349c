// SPDX-License-Identifier: MPL-2.0

// Package manifest reads and writes the cedar.toml project manifest.
//
// The manifest records the project name and version together with the
// compiler and flags used to build it. Parsing is all-or-nothing: a document
// either decodes into a complete Manifest or fails with ErrInvalidManifest.
// The package never touches the filesystem; callers read and write bytes.
package manifest
