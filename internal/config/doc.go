// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with TOML as the file format.
//
// Configuration is loaded from ~/.config/cedar/config.toml (or the XDG equivalent on Linux,
// ~/Library/Application Support/cedar/config.toml on macOS, %APPDATA%\cedar\config.toml
// on Windows). Every key can also be set through a CEDAR_* environment variable, which
// takes precedence over the file; for example CEDAR_BUILD_STRICT=true or
// CEDAR_VCS_BACKEND=builtin.
package config
