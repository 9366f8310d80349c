// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/bmatcuk/doublestar/v4"
)

const (
	// VCSBackendGit runs the git executable.
	VCSBackendGit VCSBackend = "git"
	// VCSBackendBuiltin initializes repositories in-process.
	VCSBackendBuiltin VCSBackend = "builtin"
)

var (
	// ErrInvalidVCSBackend is returned when a VCSBackend value is not recognized.
	ErrInvalidVCSBackend = errors.New("invalid vcs backend")
	// ErrInvalidTimeout is returned for negative build timeouts.
	ErrInvalidTimeout = errors.New("invalid build timeout")
	// ErrInvalidBranch is returned for an empty initial branch.
	ErrInvalidBranch = errors.New("invalid branch name")
	// ErrInvalidIgnorePattern is the sentinel error wrapped by InvalidIgnorePatternError.
	ErrInvalidIgnorePattern = errors.New("invalid ignore pattern")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// VCSBackend selects how repositories are initialized.
	VCSBackend string

	// InvalidVCSBackendError is returned when a VCSBackend value is not recognized.
	InvalidVCSBackendError struct {
		Value VCSBackend
	}

	// InvalidIgnorePatternError is returned for a malformed discovery.ignore entry.
	InvalidIgnorePatternError struct {
		Pattern string
	}

	// InvalidConfigError aggregates every field error of a Config.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		Build     BuildConfig     `json:"build" mapstructure:"build"`
		Discovery DiscoveryConfig `json:"discovery" mapstructure:"discovery"`
		VCS       VCSConfig       `json:"vcs" mapstructure:"vcs"`
		UI        UIConfig        `json:"ui" mapstructure:"ui"`
	}

	// BuildConfig controls compilation.
	BuildConfig struct {
		// Strict fails the build when the compiler exits non-zero.
		Strict bool `json:"strict" mapstructure:"strict"`
		// Timeout bounds a build or run; zero disables it.
		Timeout time.Duration `json:"timeout" mapstructure:"timeout"`
	}

	// DiscoveryConfig controls which files become compiler inputs.
	DiscoveryConfig struct {
		// Ignore lists doublestar patterns, relative to src/ and include/.
		Ignore []string `json:"ignore" mapstructure:"ignore"`
	}

	// VCSConfig controls repository initialization for new projects.
	VCSConfig struct {
		Backend VCSBackend `json:"backend" mapstructure:"backend"`
		Branch  string     `json:"branch" mapstructure:"branch"`
	}

	// UIConfig contains UI-related configuration.
	UIConfig struct {
		// Verbose enables debug logging.
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Build: BuildConfig{
			Strict:  false,
			Timeout: 0,
		},
		Discovery: DiscoveryConfig{
			Ignore: []string{},
		},
		VCS: VCSConfig{
			Backend: VCSBackendGit,
			Branch:  "main",
		},
		UI: UIConfig{
			Verbose: false,
		},
	}
}

// String returns the string representation of the VCSBackend.
func (b VCSBackend) String() string { return string(b) }

// IsValid returns whether the VCSBackend is one of the defined backends.
func (b VCSBackend) IsValid() (bool, []error) {
	switch b {
	case VCSBackendGit, VCSBackendBuiltin:
		return true, nil
	default:
		return false, []error{&InvalidVCSBackendError{Value: b}}
	}
}

// IsValid returns whether the BuildConfig has valid fields.
func (c BuildConfig) IsValid() (bool, []error) {
	if c.Timeout < 0 {
		return false, []error{fmt.Errorf("%w: %s", ErrInvalidTimeout, c.Timeout)}
	}
	return true, nil
}

// IsValid returns whether every ignore pattern is well formed.
func (c DiscoveryConfig) IsValid() (bool, []error) {
	var errs []error
	for _, p := range c.Ignore {
		if !doublestar.ValidatePattern(p) {
			errs = append(errs, &InvalidIgnorePatternError{Pattern: p})
		}
	}
	return len(errs) == 0, errs
}

// IsValid returns whether the VCSConfig has valid fields.
func (c VCSConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Backend.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if c.Branch == "" {
		errs = append(errs, ErrInvalidBranch)
	}
	return len(errs) == 0, errs
}

// IsValid returns whether the Config has valid fields.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	for _, check := range []func() (bool, []error){c.Build.IsValid, c.Discovery.IsValid, c.VCS.IsValid} {
		if valid, fieldErrs := check(); !valid {
			errs = append(errs, fieldErrs...)
		}
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidVCSBackendError.
func (e *InvalidVCSBackendError) Error() string {
	return fmt.Sprintf("invalid vcs backend %q (valid: %s, %s)", e.Value, VCSBackendGit, VCSBackendBuiltin)
}

// Unwrap returns ErrInvalidVCSBackend for errors.Is() compatibility.
func (e *InvalidVCSBackendError) Unwrap() error { return ErrInvalidVCSBackend }

// Error implements the error interface for InvalidIgnorePatternError.
func (e *InvalidIgnorePatternError) Error() string {
	return fmt.Sprintf("invalid ignore pattern %q", e.Pattern)
}

// Unwrap returns ErrInvalidIgnorePattern for errors.Is() compatibility.
func (e *InvalidIgnorePatternError) Unwrap() error { return ErrInvalidIgnorePattern }

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %v", errors.Join(e.FieldErrors...))
}

// Unwrap exposes ErrInvalidConfig and every field error.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}
