// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/juniensis/cedar/internal/issue"
)

const (
	// AppName is the application name.
	AppName = "cedar"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "toml"
	// EnvPrefix prefixes environment overrides, e.g. CEDAR_BUILD_STRICT.
	EnvPrefix = "CEDAR"
)

type (
	// fileDocument is the on-disk shape written by GenerateTOML.
	fileDocument struct {
		Build     fileBuild     `toml:"build"`
		Discovery fileDiscovery `toml:"discovery"`
		VCS       fileVCS       `toml:"vcs"`
		UI        fileUI        `toml:"ui"`
	}

	fileBuild struct {
		Strict  bool   `toml:"strict" comment:"Fail the build when the compiler exits non-zero."`
		Timeout string `toml:"timeout" comment:"Upper bound for build and run, e.g. \"2m\". \"0s\" disables it."`
	}

	fileDiscovery struct {
		Ignore []string `toml:"ignore" comment:"Doublestar patterns excluded from compiler inputs."`
	}

	fileVCS struct {
		Backend string `toml:"backend" comment:"\"git\" runs the git executable, \"builtin\" needs no git install."`
		Branch  string `toml:"branch" comment:"Initial branch of new repositories."`
	}

	fileUI struct {
		Verbose bool `toml:"verbose"`
	}
)

// ConfigDir returns the cedar configuration directory using platform-specific
// conventions: Windows uses %APPDATA%, macOS uses ~/Library/Application Support,
// and Linux/others use $XDG_CONFIG_HOME (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// FilePath returns the config file that Load reads for opts, whether or not
// it exists.
func FilePath(opts LoadOptions) (string, error) {
	if opts.ConfigFilePath != "" {
		return opts.ConfigFilePath, nil
	}
	cfgDir, err := configDirWithOverride(opts.ConfigDirPath)
	if err != nil {
		return "", err
	}
	return filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt), nil
}

// loadWithOptions reads defaults, then the config file, then CEDAR_*
// environment variables, later sources winning. A missing default file is
// not an error; a missing explicit file is.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("build.strict", defaults.Build.Strict)
	v.SetDefault("build.timeout", defaults.Build.Timeout)
	v.SetDefault("discovery.ignore", defaults.Discovery.Ignore)
	v.SetDefault("vcs.backend", string(defaults.VCS.Backend))
	v.SetDefault("vcs.branch", defaults.VCS.Branch)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path, err := FilePath(opts)
	if err != nil {
		return nil, "", err
	}

	resolvedPath := ""
	switch {
	case fileExists(path):
		if err := readTOMLIntoViper(v, path); err != nil {
			return nil, "", loadError(path, err,
				"Check that the file contains valid TOML syntax",
				"Run 'cedar config show' to compare with the effective configuration")
		}
		resolvedPath = path
	case opts.ConfigFilePath != "":
		return nil, "", loadError(path, fmt.Errorf("config file not found: %s", path),
			"Verify the file path is correct",
			"Run 'cedar config init' to write the defaults")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", loadError(resolvedPath, fmt.Errorf("failed to parse config: %w", err),
			"Check the value types, e.g. timeout = \"30s\"")
	}
	if cfg.Discovery.Ignore == nil {
		cfg.Discovery.Ignore = []string{}
	}

	if valid, errs := cfg.IsValid(); !valid {
		return nil, "", loadError(resolvedPath, errors.Join(errs...),
			"vcs.backend must be \"git\" or \"builtin\"",
			"build.timeout must not be negative")
	}

	return &cfg, resolvedPath, nil
}

func loadError(resource string, err error, suggestions ...string) error {
	return issue.Wrap(err, issue.ConfigLoadFailedId, "load configuration", resource, suggestions...)
}

// configDirWithOverride resolves the configuration directory, honoring
// explicit provider options before platform defaults.
func configDirWithOverride(configDirPath string) (string, error) {
	if configDirPath != "" {
		return configDirPath, nil
	}

	return ConfigDir()
}

func readTOMLIntoViper(v *viper.Viper, path string) error {
	v.SetConfigFile(path)
	v.SetConfigType(ConfigFileExt)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// WriteDefault writes the default configuration to path, creating parent
// directories. An existing file is left alone unless force is set; the
// returned bool reports whether anything was written.
func WriteDefault(path string, force bool) (bool, error) {
	if !force && fileExists(path) {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := GenerateTOML(DefaultConfig())
	if err != nil {
		return false, err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, fmt.Errorf("failed to write config file: %w", err)
	}
	return true, nil
}

// GenerateTOML renders cfg in the config file format.
func GenerateTOML(cfg *Config) ([]byte, error) {
	ignore := cfg.Discovery.Ignore
	if ignore == nil {
		ignore = []string{}
	}
	doc := fileDocument{
		Build:     fileBuild{Strict: cfg.Build.Strict, Timeout: cfg.Build.Timeout.String()},
		Discovery: fileDiscovery{Ignore: ignore},
		VCS:       fileVCS{Backend: cfg.VCS.Backend.String(), Branch: cfg.VCS.Branch},
		UI:        fileUI{Verbose: cfg.UI.Verbose},
	}

	data, err := toml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	header := "# cedar configuration file\n# Every key can be overridden with a CEDAR_<SECTION>_<KEY> environment variable.\n\n"
	return append([]byte(header), data...), nil
}
