// SPDX-License-Identifier: MPL-2.0

// Package execctx carries the ambient state of one cedar invocation: the
// working directory, the standard streams, and the environment. Build and
// scaffold operations take a Context instead of reading process globals, so
// they behave the same under test as from the command line.
package execctx

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Context is the execution context of a single invocation.
type Context struct {
	// WorkDir resolves relative project paths.
	WorkDir string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Env is a snapshot of the environment, keyed by variable name.
	Env map[string]string
}

// FromOS captures the current process state. It is the only place cedar
// reads the working directory and environment directly.
func FromOS() (Context, error) {
	wd, err := os.Getwd()
	if err != nil {
		return Context{}, fmt.Errorf("failed to get current directory: %w", err)
	}
	return Context{
		WorkDir: wd,
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Env:     EnvFromSlice(os.Environ()),
	}, nil
}

// EnvFromSlice parses KEY=VALUE pairs. Entries without '=' are dropped.
func EnvFromSlice(pairs []string) map[string]string {
	env := make(map[string]string, len(pairs))
	for _, kv := range pairs {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}
		env[key] = value
	}
	return env
}

// Resolve makes p absolute against WorkDir. Absolute paths and an empty
// WorkDir leave p unchanged apart from cleaning.
func (c Context) Resolve(p string) string {
	if p == "" {
		p = "."
	}
	if filepath.IsAbs(p) || c.WorkDir == "" {
		return filepath.Clean(p)
	}
	return filepath.Join(c.WorkDir, p)
}

// Lookup returns the value of an environment variable from the snapshot.
func (c Context) Lookup(key string) (string, bool) {
	v, ok := c.Env[key]
	return v, ok
}

// NoColor reports whether the NO_COLOR convention asks for plain output.
func (c Context) NoColor() bool {
	v, ok := c.Lookup("NO_COLOR")
	return ok && v != ""
}

// Streams returns Stdin, Stdout and Stderr with nil values replaced by
// io.Discard (writers) and an empty reader.
func (c Context) Streams() (io.Reader, io.Writer, io.Writer) {
	stdin, stdout, stderr := c.Stdin, c.Stdout, c.Stderr
	if stdin == nil {
		stdin = strings.NewReader("")
	}
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}
	return stdin, stdout, stderr
}
