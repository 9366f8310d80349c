// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/juniensis/cedar/internal/scaffold"
)

// scaffoldRequest describes one init or new invocation.
type scaffoldRequest struct {
	// target is the project directory relative to the working directory.
	target string
	// create makes missing directories (new) instead of requiring an
	// existing one (init).
	create bool
	git    bool
}

func newInitCommand(app *App, flags *rootFlagValues) *cobra.Command {
	var git bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Turn the current empty directory into a cedar project",
		Long: `Turn the current directory into a cedar project.

The directory must be empty. cedar writes cedar.toml, src/main.c and the
include/ and build/ directories. The project is named after the directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runScaffold(cmd, app, flags, scaffoldRequest{target: ".", git: git})
		},
	}
	cmd.Flags().BoolVar(&git, "git", false, "initialize a git repository")
	return cmd
}

func newNewCommand(app *App, flags *rootFlagValues) *cobra.Command {
	var git bool

	cmd := &cobra.Command{
		Use:   "new <name>",
		Short: "Create a cedar project in a new directory",
		Long: `Create a cedar project in the directory <name>, relative to the current
directory. Missing parent directories are created; an existing directory
must be empty.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScaffold(cmd, app, flags, scaffoldRequest{
				target: strings.TrimLeft(args[0], "/"),
				create: true,
				git:    git,
			})
		},
	}
	cmd.Flags().BoolVar(&git, "git", false, "initialize a git repository")
	return cmd
}

func runScaffold(cmd *cobra.Command, app *App, flags *rootFlagValues, req scaffoldRequest) error {
	ec, err := app.execContext()
	if err != nil {
		return err
	}
	cfg, err := app.loadConfig(cmd.Context(), flags)
	if err != nil {
		return app.fail(cmd, ec, "load configuration", "", err)
	}

	path := ec.Resolve(req.target)
	s, err := app.scaffolder(cfg, ec, req.git)
	if err != nil {
		return app.fail(cmd, ec, "create project", path, err)
	}

	if req.create {
		fmt.Fprintf(ec.Stdout, "\n\t%s %s (%s)\n", SuccessStyle.Render("Creating"), scaffold.NameFor(path), PathStyle.Render(path))
	} else {
		fmt.Fprintf(ec.Stdout, "\n\t%s cedar project here\n", SuccessStyle.Render("Creating"))
	}

	start := app.clock.Now()
	opts := scaffold.Options{Git: req.git}
	if req.create {
		_, err = s.New(cmd.Context(), path, opts)
	} else {
		_, err = s.Init(cmd.Context(), path, opts)
	}
	if err != nil {
		if errors.Is(err, scaffold.ErrVCSInit) {
			fmt.Fprintf(ec.Stderr, "\n%s project created at %s without a repository\n", WarningStyle.Render("!"), path)
		}
		return app.fail(cmd, ec, "create project", path, err)
	}

	fmt.Fprintln(ec.Stdout)
	printFinished(ec.Stdout, app.clock.Since(start))
	return nil
}
