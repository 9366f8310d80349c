// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// rootFlagValues holds the persistent flags shared by every subcommand.
type rootFlagValues struct {
	verbose    bool
	configPath string
}

// NewRootCommand builds the cedar command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	flags := &rootFlagValues{}

	rootCmd := &cobra.Command{
		Use:   "cedar",
		Short: "A minimal project manager for C",
		Long: TitleStyle.Render("cedar") + SubtitleStyle.Render(" - A minimal project manager for C") + `

cedar creates C projects with a standard layout, keeps their build
settings in a cedar.toml manifest, and drives gcc or clang to build
and run them.

` + SubtitleStyle.Render("Project layout:") + `
  cedar.toml   project manifest
  src/         C sources
  include/     headers
  build/       compiled program

` + SubtitleStyle.Render("Examples:") + `
  cedar new hello          Create a project in ./hello
  cedar init --git         Turn the current empty directory into a project
  cedar build              Compile the project in the current directory
  cedar run                Compile, then run the program
  cedar watch              Rebuild whenever sources change`,
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if flags.verbose {
				app.SetVerbose(true)
			}
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/cedar/config.toml)")

	rootCmd.AddCommand(
		newInitCommand(app, flags),
		newNewCommand(app, flags),
		newBuildCommand(app, flags),
		newRunCommand(app, flags),
		newWatchCommand(app, flags),
		newConfigCommand(app, flags),
	)

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the cedar CLI and exits the process with the resulting code.
// It is called by main.main().
func Execute() {
	app, err := NewApp(Dependencies{})
	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error:"), err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(app.Logger()))

	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Status())
		}
		os.Exit(1)
	}
}
