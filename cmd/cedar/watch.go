// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/juniensis/cedar/internal/project"
	"github.com/juniensis/cedar/internal/watch"
)

func newWatchCommand(app *App, flags *rootFlagValues) *cobra.Command {
	var (
		clearScreen bool
		debounce    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Rebuild the project whenever its sources change",
		Long: `Build the project once, then watch cedar.toml, src/ and include/ and
rebuild after each burst of changes. Editor swap files and build/ are
ignored. Every rebuild is a full build. Press Ctrl+C to stop.`,
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

			root := ec.Resolve(".")
			if err := project.Validate(root); err != nil {
				return app.fail(cmd, ec, "watch project", root, err)
			}

			orch := app.orchestrator(cfg, ec.Stdout)
			rebuild := func(ctx context.Context) {
				if _, err := orch.Build(ctx, ec, root); err != nil {
					renderError(ec.Stderr, describeError("build project", root, err), app.verbose, ec.NoColor())
				}
			}

			// Build once before watching; failures are reported and the
			// user may fix them and save again.
			rebuild(cmd.Context())

			w, err := watch.New(watch.Config{
				Root:        root,
				Debounce:    debounce,
				ClearScreen: clearScreen,
				OnChange: func(ctx context.Context, changed []string) error {
					fmt.Fprintf(ec.Stdout, "%s Detected %d change(s), rebuilding\n", SubtitleStyle.Render("->"), len(changed))
					rebuild(ctx)
					return nil
				},
				Stdout: ec.Stdout,
				Stderr: ec.Stderr,
			})
			if err != nil {
				return fmt.Errorf("failed to start watcher: %w", err)
			}

			fmt.Fprintf(ec.Stdout, "%s Watching for changes (Ctrl+C to stop)...\n\n", SubtitleStyle.Render("->"))
			return w.Run(cmd.Context())
		},
	}
	cmd.Flags().BoolVar(&clearScreen, "clear", false, "clear the screen before each rebuild")
	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "quiet period after the last change before rebuilding")
	return cmd
}
