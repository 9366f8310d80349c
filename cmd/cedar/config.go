// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/juniensis/cedar/internal/config"
)

// newConfigCommand creates the `cedar config` command tree.
func newConfigCommand(app *App, flags *rootFlagValues) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage cedar configuration",
		Long: `Manage cedar configuration.

Configuration is stored in:
  - Linux: ~/.config/cedar/config.toml
  - macOS: ~/Library/Application Support/cedar/config.toml
  - Windows: %APPDATA%\cedar\config.toml

Every key can be overridden from the environment, e.g. CEDAR_BUILD_STRICT=true.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return showConfig(cmd, app, flags)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := config.FilePath(loadOptions(flags))
			if err != nil {
				return err
			}
			fmt.Fprintln(app.stdout, path)
			return nil
		},
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return initConfig(app, flags, force)
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing configuration file")
	cfgCmd.AddCommand(initCmd)

	return cfgCmd
}

func showConfig(cmd *cobra.Command, app *App, flags *rootFlagValues) error {
	ec, err := app.execContext()
	if err != nil {
		return err
	}
	cfg, source, err := config.LoadWithSource(cmd.Context(), loadOptions(flags))
	if err != nil {
		return app.fail(cmd, ec, "load configuration", "", err)
	}

	data, err := config.GenerateTOML(cfg)
	if err != nil {
		return err
	}

	if source == "" {
		source = "defaults and environment"
	}
	fmt.Fprintf(app.stdout, "%s %s\n\n", SubtitleStyle.Render("# Loaded from:"), source)
	fmt.Fprint(app.stdout, string(data))
	return nil
}

func initConfig(app *App, flags *rootFlagValues, force bool) error {
	path, err := config.FilePath(loadOptions(flags))
	if err != nil {
		return err
	}

	written, err := config.WriteDefault(path, force)
	if err != nil {
		return err
	}
	if !written {
		fmt.Fprintf(app.stdout, "%s Config file already exists at %s (use --force to overwrite)\n", WarningStyle.Render("!"), path)
		return nil
	}
	fmt.Fprintf(app.stdout, "%s Created config file at %s\n", SuccessStyle.Render("✓"), PathStyle.Render(path))
	return nil
}
