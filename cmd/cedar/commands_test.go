// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	"github.com/juniensis/cedar/internal/config"
	"github.com/juniensis/cedar/internal/execctx"
	"github.com/juniensis/cedar/internal/issue"
	"github.com/juniensis/cedar/internal/process"
	"github.com/juniensis/cedar/internal/process/processtest"
	"github.com/juniensis/cedar/internal/testutil"
)

const demoManifest = `[meta]
name = "demo"

[build]
compiler = "gcc"
cflags = ["-Wall"]
`

type (
	staticConfig struct {
		cfg *config.Config
		err error
	}

	harness struct {
		app     *App
		rec     *processtest.Recorder
		clock   *testutil.FakeClock
		stdout  *bytes.Buffer
		stderr  *bytes.Buffer
		workDir string
	}
)

func (s staticConfig) Load(context.Context, config.LoadOptions) (*config.Config, error) {
	if s.err != nil {
		return nil, s.err
	}
	cfg := *s.cfg
	return &cfg, nil
}

func newHarness(t *testing.T, cfg *config.Config) *harness {
	t.Helper()
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return newHarnessWithProvider(t, staticConfig{cfg: cfg})
}

func newHarnessWithProvider(t *testing.T, provider config.Provider) *harness {
	t.Helper()

	h := &harness{
		rec:     processtest.NewRecorder(),
		clock:   testutil.NewFakeClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)),
		stdout:  &bytes.Buffer{},
		stderr:  &bytes.Buffer{},
		workDir: t.TempDir(),
	}
	app, err := NewApp(Dependencies{
		Config: provider,
		Runner: h.rec,
		Clock:  h.clock,
		Stdout: h.stdout,
		Stderr: h.stderr,
		ExecContext: func() (execctx.Context, error) {
			return execctx.Context{
				WorkDir: h.workDir,
				Env:     map[string]string{"NO_COLOR": "1"},
			}, nil
		},
	})
	if err != nil {
		t.Fatalf("NewApp() error = %v", err)
	}
	h.app = app
	return h
}

func (h *harness) execute(args ...string) error {
	root := NewRootCommand(h.app)
	root.SetArgs(args)
	root.SetOut(h.stdout)
	root.SetErr(h.stderr)
	return root.ExecuteContext(context.Background())
}

func exitCode(t *testing.T, err error) process.ExitCode {
	t.Helper()
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("error = %v (%T), want *ExitError", err, err)
	}
	return exitErr.Code
}

func assertContains(t *testing.T, out string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestInitCommand(t *testing.T) {
	t.Parallel()

	h := newHarness(t, nil)
	if err := h.execute("init"); err != nil {
		t.Fatalf("init error = %v\nstderr: %s", err, h.stderr)
	}

	for _, p := range []string{"cedar.toml", "src/main.c", "include", "build"} {
		if _, err := os.Stat(filepath.Join(h.workDir, filepath.FromSlash(p))); err != nil {
			t.Errorf("%s not created: %v", p, err)
		}
	}
	assertContains(t, h.stdout.String(), "Creating", "cedar project here", "-> Generating directories and manifest", "Finished")
	if strings.Contains(h.stdout.String(), "Initializing git") {
		t.Error("git step reported without --git")
	}
	if len(h.rec.Calls()) != 0 {
		t.Errorf("unexpected processes: %v", h.rec.Names())
	}
}

func TestInitCommand_NonEmptyDirectory(t *testing.T) {
	t.Parallel()

	h := newHarness(t, nil)
	testutil.MustWriteFile(t, filepath.Join(h.workDir, "notes.txt"), "keep me")

	err := h.execute("init")
	if got := exitCode(t, err); got != 1 {
		t.Errorf("exit code = %d, want 1", got)
	}
	assertContains(t, h.stderr.String(), "Error:", "not empty")
	if _, statErr := os.Stat(filepath.Join(h.workDir, "cedar.toml")); !errors.Is(statErr, os.ErrNotExist) {
		t.Error("cedar.toml written into a non-empty directory")
	}
}

func TestInitCommand_BuiltinGit(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.VCS.Backend = config.VCSBackendBuiltin
	h := newHarness(t, cfg)

	if err := h.execute("init", "--git"); err != nil {
		t.Fatalf("init --git error = %v\nstderr: %s", err, h.stderr)
	}
	if _, err := os.Stat(filepath.Join(h.workDir, ".git")); err != nil {
		t.Errorf(".git not created: %v", err)
	}
	assertContains(t, h.stdout.String(), "-> Initializing git")
}

func TestNewCommand(t *testing.T) {
	t.Parallel()

	h := newHarness(t, nil)
	if err := h.execute("new", "/hello"); err != nil {
		t.Fatalf("new error = %v\nstderr: %s", err, h.stderr)
	}

	root := filepath.Join(h.workDir, "hello")
	data, err := os.ReadFile(filepath.Join(root, "cedar.toml"))
	if err != nil {
		t.Fatalf("cedar.toml not created: %v", err)
	}
	assertContains(t, string(data), `name = "hello"`)
	assertContains(t, h.stdout.String(), "Creating hello ("+root+")")
}

func TestNewCommand_RequiresName(t *testing.T) {
	t.Parallel()

	h := newHarness(t, nil)
	err := h.execute("new")
	if err == nil {
		t.Fatal("new without a name succeeded")
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		t.Errorf("usage error reported as %v", exitErr)
	}

	entries, readErr := os.ReadDir(h.workDir)
	if readErr != nil {
		t.Fatal(readErr)
	}
	if len(entries) != 0 {
		t.Errorf("working directory modified: %d entries", len(entries))
	}
}

func TestNewCommand_GitMissing(t *testing.T) {
	t.Parallel()

	h := newHarness(t, nil)
	h.rec.Missing("git")

	err := h.execute("new", "app", "--git")
	if got := exitCode(t, err); got != 1 {
		t.Errorf("exit code = %d, want 1", got)
	}
	if _, statErr := os.Stat(filepath.Join(h.workDir, "app", "cedar.toml")); statErr != nil {
		t.Errorf("project not left in place: %v", statErr)
	}
	assertContains(t, h.stderr.String(), "without a repository", "Error:")
}

func TestUnknownCommand(t *testing.T) {
	t.Parallel()

	h := newHarness(t, nil)
	err := h.execute("frobnicate")
	if err == nil || !strings.Contains(err.Error(), "unknown command") {
		t.Errorf("error = %v, want unknown command", err)
	}
}

func TestBuildCommand(t *testing.T) {
	t.Parallel()

	h := newHarness(t, nil)
	testutil.WriteProject(t, h.workDir, demoManifest, "src/main.c", "src/util.c")

	if err := h.execute("build"); err != nil {
		t.Fatalf("build error = %v\nstderr: %s", err, h.stderr)
	}

	calls := h.rec.Calls()
	if len(calls) != 1 {
		t.Fatalf("calls = %v, want one compiler run", h.rec.Names())
	}
	want := []string{
		filepath.Join(h.workDir, "src", "main.c"),
		filepath.Join(h.workDir, "src", "util.c"),
		"-Wall",
		"-o",
		filepath.Join(h.workDir, "build", "demo"),
	}
	if diff := cmp.Diff(want, calls[0].Args); diff != "" {
		t.Errorf("compiler args mismatch (-want +got):\n%s", diff)
	}
	assertContains(t, h.stdout.String(), "Compiling", "demo v0.1.0", "Finished")
}

func TestBuildCommand_MirrorsCompilerExitCode(t *testing.T) {
	t.Parallel()

	h := newHarness(t, nil)
	testutil.WriteProject(t, h.workDir, demoManifest, "src/main.c")
	h.rec.On("gcc", processtest.Response{ExitCode: 2})

	err := h.execute("build")
	if got := exitCode(t, err); got != 2 {
		t.Errorf("exit code = %d, want 2", got)
	}
	if strings.Contains(h.stderr.String(), "Error:") {
		t.Errorf("non-strict compiler failure rendered as error:\n%s", h.stderr)
	}
}

func TestBuildCommand_Strict(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Build.Strict = true
	h := newHarness(t, cfg)
	testutil.WriteProject(t, h.workDir, demoManifest, "src/main.c")
	h.rec.On("gcc", processtest.Response{ExitCode: 2})

	err := h.execute("build")
	if got := exitCode(t, err); got != 1 {
		t.Errorf("exit code = %d, want 1", got)
	}
	assertContains(t, h.stderr.String(), "Error:", "compiler")
}

func TestBuildCommand_NotAProject(t *testing.T) {
	t.Parallel()

	h := newHarness(t, nil)
	err := h.execute("build")
	if got := exitCode(t, err); got != 1 {
		t.Errorf("exit code = %d, want 1", got)
	}
	assertContains(t, h.stderr.String(), "Error:", "not a cedar project")
	if len(h.rec.Calls()) != 0 {
		t.Errorf("unexpected processes: %v", h.rec.Names())
	}
}

func TestBuildCommand_CompilerMissing(t *testing.T) {
	t.Parallel()

	h := newHarness(t, nil)
	testutil.WriteProject(t, h.workDir, demoManifest, "src/main.c")
	h.rec.Missing("gcc")

	err := h.execute("build")
	if got := exitCode(t, err); got != 1 {
		t.Errorf("exit code = %d, want 1", got)
	}
	assertContains(t, h.stderr.String(), "Install the compiler")
}

func TestBuildCommand_ConfigError(t *testing.T) {
	t.Parallel()

	loadErr := issue.Wrap(errors.New("toml: expected '='"), issue.ConfigLoadFailedId,
		"load configuration", "/etc/cedar.toml", "Check that the file contains valid TOML syntax")
	h := newHarnessWithProvider(t, staticConfig{err: loadErr})

	err := h.execute("build")
	if got := exitCode(t, err); got != 1 {
		t.Errorf("exit code = %d, want 1", got)
	}
	assertContains(t, h.stderr.String(), "failed to load configuration", "Check that the file contains valid TOML syntax")
}

func TestRunCommand_ExitCode(t *testing.T) {
	t.Parallel()

	h := newHarness(t, nil)
	testutil.WriteProject(t, h.workDir, demoManifest, "src/main.c")
	artifact := filepath.Join(h.workDir, "build", "demo")
	h.rec.On(artifact, processtest.Response{ExitCode: 3})

	err := h.execute("run")
	if got := exitCode(t, err); got != 3 {
		t.Errorf("exit code = %d, want 3", got)
	}
	if diff := cmp.Diff([]string{"gcc", artifact}, h.rec.Names()); diff != "" {
		t.Errorf("processes mismatch (-want +got):\n%s", diff)
	}
}

func TestRunCommand_Success(t *testing.T) {
	t.Parallel()

	h := newHarness(t, nil)
	testutil.WriteProject(t, h.workDir, demoManifest, "src/main.c")

	if err := h.execute("run"); err != nil {
		t.Fatalf("run error = %v\nstderr: %s", err, h.stderr)
	}
	if got := len(h.rec.Calls()); got != 2 {
		t.Errorf("calls = %d, want 2", got)
	}
}

func TestRunCommand_ArtifactMissing(t *testing.T) {
	t.Parallel()

	h := newHarness(t, nil)
	testutil.WriteProject(t, h.workDir, demoManifest, "src/main.c")
	h.rec.Missing(filepath.Join(h.workDir, "build", "demo"))

	err := h.execute("run")
	if got := exitCode(t, err); got != 1 {
		t.Errorf("exit code = %d, want 1", got)
	}
	assertContains(t, h.stderr.String(), "Error:", "successful build")
}

func TestWatchCommand_NotAProject(t *testing.T) {
	t.Parallel()

	h := newHarness(t, nil)
	err := h.execute("watch")
	if got := exitCode(t, err); got != 1 {
		t.Errorf("exit code = %d, want 1", got)
	}
	assertContains(t, h.stderr.String(), "failed to watch project")
}

func TestVerboseFlag(t *testing.T) {
	t.Parallel()

	h := newHarness(t, nil)
	testutil.WriteProject(t, h.workDir, demoManifest, "src/main.c")

	if err := h.execute("--verbose", "build"); err != nil {
		t.Fatalf("build error = %v", err)
	}
	if got := h.app.Logger().GetLevel(); got != log.DebugLevel {
		t.Errorf("log level = %v, want debug", got)
	}
}

func TestVerboseFromConfig(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.UI.Verbose = true
	h := newHarness(t, cfg)
	testutil.WriteProject(t, h.workDir, demoManifest, "src/main.c")

	if err := h.execute("build"); err != nil {
		t.Fatalf("build error = %v", err)
	}
	if !h.app.verbose {
		t.Error("ui.verbose did not enable verbose mode")
	}
}

func TestConfigCommands(t *testing.T) {
	t.Parallel()

	h := newHarness(t, nil)
	path := filepath.Join(t.TempDir(), "cedar", "config.toml")

	if err := h.execute("config", "path", "--config", path); err != nil {
		t.Fatalf("config path error = %v", err)
	}
	assertContains(t, h.stdout.String(), path)

	h.stdout.Reset()
	if err := h.execute("config", "init", "--config", path); err != nil {
		t.Fatalf("config init error = %v", err)
	}
	assertContains(t, h.stdout.String(), "Created config file")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	assertContains(t, string(data), "[build]", "[vcs]")

	h.stdout.Reset()
	if err := h.execute("config", "init", "--config", path); err != nil {
		t.Fatalf("second config init error = %v", err)
	}
	assertContains(t, h.stdout.String(), "already exists")

	h.stdout.Reset()
	if err := h.execute("config", "show", "--config", path); err != nil {
		t.Fatalf("config show error = %v", err)
	}
	assertContains(t, h.stdout.String(), "# Loaded from: "+path, "[build]", "strict")
}
