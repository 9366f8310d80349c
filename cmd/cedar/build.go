// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/spf13/cobra"
)

func newBuildCommand(app *App, flags *rootFlagValues) *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Compile the project in the current directory",
		Long: `Compile every source in src/ and include/ with the compiler named in
cedar.toml. The program is written to build/<name>.

cedar exits with the compiler's exit status. With build.strict set in the
cedar config, a failing compiler is also reported as an error.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ec, err := app.execContext()
			if err != nil {
				return err
			}
			cfg, err := app.loadConfig(cmd.Context(), flags)
			if err != nil {
				return app.fail(cmd, ec, "load configuration", "", err)
			}

			report, err := app.orchestrator(cfg, ec.Stdout).Build(cmd.Context(), ec, ".")
			if err != nil {
				return app.fail(cmd, ec, "build project", ec.WorkDir, err)
			}
			if !report.ExitCode.IsSuccess() {
				return exitWith(cmd, report.ExitCode)
			}
			return nil
		},
	}
}

func newRunCommand(app *App, flags *rootFlagValues) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Compile the project, then run the program",
		Long: `Compile the project exactly like 'cedar build', then run build/<name>
with no arguments. The program shares cedar's terminal, and cedar exits
with the program's exit status.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ec, err := app.execContext()
			if err != nil {
				return err
			}
			cfg, err := app.loadConfig(cmd.Context(), flags)
			if err != nil {
				return app.fail(cmd, ec, "load configuration", "", err)
			}

			report, err := app.orchestrator(cfg, ec.Stdout).Run(cmd.Context(), ec, ".")
			if err != nil {
				return app.fail(cmd, ec, "run project", ec.WorkDir, err)
			}
			if !report.ExitCode.IsSuccess() {
				return exitWith(cmd, report.ExitCode)
			}
			return nil
		},
	}
}
