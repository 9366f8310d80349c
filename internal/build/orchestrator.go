// SPDX-License-Identifier: MPL-2.0

package build

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/juniensis/cedar/internal/discovery"
	"github.com/juniensis/cedar/internal/execctx"
	"github.com/juniensis/cedar/internal/process"
	"github.com/juniensis/cedar/internal/project"
	"github.com/juniensis/cedar/pkg/manifest"
)

type (
	// Clock measures elapsed build time.
	Clock interface {
		Now() time.Time
		Since(t time.Time) time.Duration
	}

	// Reporter receives progress events. Implementations must not block.
	Reporter interface {
		// Compiling is sent once the manifest has been loaded.
		Compiling(m *manifest.Manifest, root string)
		// Finished is sent when the build completes without error.
		Finished(elapsed time.Duration)
	}

	// Options configures an Orchestrator. Zero values select the real
	// process runner, the system clock and a silent reporter.
	Options struct {
		Runner    process.Runner
		Clock     Clock
		Reporter  Reporter
		Discovery discovery.Options
		// Strict turns a non-zero compiler exit into a CompilerFailedError.
		Strict bool
		// Timeout bounds Build and Run when positive.
		Timeout time.Duration
	}

	// Orchestrator builds and runs projects.
	Orchestrator struct {
		runner    process.Runner
		clock     Clock
		reporter  Reporter
		discovery discovery.Options
		strict    bool
		timeout   time.Duration
	}

	// Report describes a completed build.
	Report struct {
		Layout     project.Layout
		Manifest   *manifest.Manifest
		Invocation Invocation
		// ExitCode is the compiler's exit status.
		ExitCode process.ExitCode
		Elapsed  time.Duration
	}

	// RunReport describes a build followed by an execution of its artifact.
	RunReport struct {
		Build    *Report
		Artifact string
		// ExitCode is the program's exit status.
		ExitCode process.ExitCode
	}

	systemClock struct{}

	nopReporter struct{}
)

// New creates an Orchestrator.
func New(opts Options) *Orchestrator {
	o := &Orchestrator{
		runner:    opts.Runner,
		clock:     opts.Clock,
		reporter:  opts.Reporter,
		discovery: opts.Discovery,
		strict:    opts.Strict,
		timeout:   opts.Timeout,
	}
	if o.runner == nil {
		o.runner = process.NewExecRunner()
	}
	if o.clock == nil {
		o.clock = systemClock{}
	}
	if o.reporter == nil {
		o.reporter = nopReporter{}
	}
	return o
}

// Build compiles the project at path, resolved against ec.WorkDir.
//
// The compiler runs with the streams of ec. Its exit status is returned in
// Report.ExitCode; a non-zero status is an error only in strict mode.
func (o *Orchestrator) Build(ctx context.Context, ec execctx.Context, path string) (*Report, error) {
	ctx, cancel := o.withTimeout(ctx)
	defer cancel()
	return o.build(ctx, ec, path)
}

// Run builds the project at path and then executes build/<name> with no
// arguments. The artifact is executed even when the compiler exited
// non-zero outside strict mode; if it does not exist the result is an
// ArtifactError.
func (o *Orchestrator) Run(ctx context.Context, ec execctx.Context, path string) (*RunReport, error) {
	ctx, cancel := o.withTimeout(ctx)
	defer cancel()

	report, err := o.build(ctx, ec, path)
	if err != nil {
		return nil, err
	}

	artifact := report.Invocation.Output
	stdin, stdout, stderr := ec.Streams()
	slog.Debug("running artifact", "path", artifact)

	code, err := o.runner.Run(ctx, process.Command{
		Name:   artifact,
		Dir:    ec.WorkDir,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
	})
	if err != nil {
		if errors.Is(err, process.ErrStart) {
			return nil, &ArtifactError{Path: artifact, Err: err}
		}
		return nil, err
	}
	return &RunReport{Build: report, Artifact: artifact, ExitCode: code}, nil
}

func (o *Orchestrator) build(ctx context.Context, ec execctx.Context, path string) (*Report, error) {
	start := o.clock.Now()
	root := ec.Resolve(path)
	stage := StageStart

	fail := func(err error) (*Report, error) {
		slog.Debug("build failed", "root", root, "stage", stage.String(), "error", err)
		return nil, &StageError{Stage: stage, Err: err}
	}
	advance := func(next Stage) {
		stage = next
		slog.Debug("build stage", "root", root, "stage", stage.String())
	}

	if err := project.Validate(root); err != nil {
		return fail(err)
	}
	layout := project.LayoutOf(root)
	advance(StageValidated)

	data, err := os.ReadFile(layout.Manifest)
	if err != nil {
		return fail(fmt.Errorf("failed to read manifest: %w", err))
	}
	m, err := manifest.Parse(data)
	if err != nil {
		return fail(err)
	}
	advance(StageManifestLoaded)
	o.reporter.Compiling(m, root)

	sources, err := discovery.Sources(layout, o.discovery)
	if err != nil {
		return fail(err)
	}
	advance(StageSourcesDiscovered)

	compiler, err := manifest.ResolveCompiler(m.Build.Compiler)
	if err != nil {
		return fail(err)
	}
	advance(StageCompilerResolved)

	inv := Invocation{
		Compiler: compiler,
		Sources:  sources,
		Flags:    m.Build.Cflags,
		Output:   layout.Artifact(m.Meta.Name),
	}
	cmd := inv.Command()
	cmd.Dir = ec.WorkDir
	cmd.Stdin, cmd.Stdout, cmd.Stderr = ec.Streams()

	code, err := o.runner.Run(ctx, cmd)
	if err != nil {
		return fail(err)
	}
	advance(StageDispatched)

	if code != 0 {
		if o.strict {
			return fail(&CompilerFailedError{Compiler: compiler, ExitCode: code})
		}
		slog.Warn("compiler exited with non-zero status", "compiler", compiler.String(), "code", int(code))
	}

	elapsed := o.clock.Since(start)
	advance(StageFinished)
	o.reporter.Finished(elapsed)

	return &Report{
		Layout:     layout,
		Manifest:   m,
		Invocation: inv,
		ExitCode:   code,
		Elapsed:    elapsed,
	}, nil
}

func (o *Orchestrator) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if o.timeout > 0 {
		return context.WithTimeout(ctx, o.timeout)
	}
	return context.WithCancel(ctx)
}

func (systemClock) Now() time.Time                  { return time.Now() }
func (systemClock) Since(t time.Time) time.Duration { return time.Since(t) }

func (nopReporter) Compiling(*manifest.Manifest, string) {}
func (nopReporter) Finished(time.Duration)               {}
