// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/juniensis/cedar/internal/build"
	"github.com/juniensis/cedar/internal/config"
	"github.com/juniensis/cedar/internal/discovery"
	"github.com/juniensis/cedar/internal/execctx"
	"github.com/juniensis/cedar/internal/process"
	"github.com/juniensis/cedar/internal/scaffold"
	"github.com/juniensis/cedar/internal/vcs"
)

type (
	// App wires CLI services and shared dependencies. It is the composition
	// root for the CLI layer: every Cobra handler receives an App and
	// delegates to the build, scaffold and config packages through it.
	App struct {
		Config  config.Provider
		Runner  process.Runner
		clock   build.Clock
		stdout  io.Writer
		stderr  io.Writer
		logger  *log.Logger
		verbose bool
		context func() (execctx.Context, error)
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config config.Provider
		Runner process.Runner
		Clock  build.Clock
		Stdout io.Writer
		Stderr io.Writer

		// ExecContext captures the invocation state. Defaults to execctx.FromOS.
		ExecContext func() (execctx.Context, error)
	}

	systemClock struct{}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Runner == nil {
		deps.Runner = process.NewExecRunner()
	}
	if deps.Clock == nil {
		deps.Clock = systemClock{}
	}
	if deps.ExecContext == nil {
		deps.ExecContext = execctx.FromOS
	}

	logger := log.NewWithOptions(deps.Stderr, log.Options{
		Prefix: "cedar",
		Level:  log.InfoLevel,
	})

	return &App{
		Config:  deps.Config,
		Runner:  deps.Runner,
		clock:   deps.Clock,
		stdout:  deps.Stdout,
		stderr:  deps.Stderr,
		logger:  logger,
		context: deps.ExecContext,
	}, nil
}

// Logger returns the logger that Execute installs as the slog handler.
func (a *App) Logger() *log.Logger {
	return a.logger
}

// SetVerbose switches debug logging and full error chains on or off.
func (a *App) SetVerbose(on bool) {
	a.verbose = on
	if on {
		a.logger.SetLevel(log.DebugLevel)
		return
	}
	a.logger.SetLevel(log.InfoLevel)
}

// loadConfig loads the configuration selected by the root flags. The
// ui.verbose setting only ever raises verbosity.
func (a *App) loadConfig(ctx context.Context, flags *rootFlagValues) (*config.Config, error) {
	cfg, err := a.Config.Load(ctx, loadOptions(flags))
	if err != nil {
		return nil, err
	}
	if cfg.UI.Verbose && !a.verbose {
		a.SetVerbose(true)
	}
	slog.Debug("configuration loaded",
		"strict", cfg.Build.Strict,
		"timeout", cfg.Build.Timeout,
		"vcs", cfg.VCS.Backend,
		"ignore", len(cfg.Discovery.Ignore))
	return cfg, nil
}

// execContext captures the invocation state with the App's output streams.
func (a *App) execContext() (execctx.Context, error) {
	ec, err := a.context()
	if err != nil {
		return execctx.Context{}, err
	}
	ec.Stdout = a.stdout
	ec.Stderr = a.stderr
	return ec, nil
}

// orchestrator creates a build orchestrator configured by cfg that reports
// progress to w.
func (a *App) orchestrator(cfg *config.Config, w io.Writer) *build.Orchestrator {
	return build.New(build.Options{
		Runner:    a.Runner,
		Clock:     a.clock,
		Reporter:  buildReporter{w: w},
		Discovery: discovery.Options{Ignore: cfg.Discovery.Ignore},
		Strict:    cfg.Build.Strict,
		Timeout:   cfg.Build.Timeout,
	})
}

// scaffolder creates a scaffolder reporting steps to ec.Stdout. The VCS
// initializer is only created when a repository is requested.
func (a *App) scaffolder(cfg *config.Config, ec execctx.Context, git bool) (*scaffold.Scaffolder, error) {
	var initializer vcs.Initializer
	if git {
		var err error
		initializer, err = vcs.New(cfg.VCS.Backend.String(), cfg.VCS.Branch, a.Runner, ec.Stderr)
		if err != nil {
			return nil, err
		}
	}
	return scaffold.NewScaffolder(initializer, stepReporter{w: ec.Stdout}), nil
}

// fail renders err for the user and returns the matching ExitError.
func (a *App) fail(cmd *cobra.Command, ec execctx.Context, operation, resource string, err error) error {
	renderError(a.stderr, describeError(operation, resource, err), a.verbose, ec.NoColor())
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	return &ExitError{Code: 1}
}

// exitWith returns an ExitError carrying code without printing anything.
func exitWith(cmd *cobra.Command, code process.ExitCode) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	return &ExitError{Code: code}
}

func loadOptions(flags *rootFlagValues) config.LoadOptions {
	return config.LoadOptions{ConfigFilePath: flags.configPath}
}

func (systemClock) Now() time.Time                  { return time.Now() }
func (systemClock) Since(t time.Time) time.Duration { return time.Since(t) }
