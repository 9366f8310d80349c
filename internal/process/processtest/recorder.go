// SPDX-License-Identifier: MPL-2.0

// Package processtest provides a recording process.Runner for tests.
package processtest

import (
	"context"
	"os/exec"
	"slices"
	"sync"

	"github.com/juniensis/cedar/internal/process"
)

type (
	// Response is what the Recorder returns for a command name.
	Response struct {
		ExitCode process.ExitCode
		Err      error
		// Do runs before the response is returned, e.g. to create the
		// artifact a compiler would have written.
		Do func(cmd process.Command)
	}

	// Recorder is a process.Runner that records every command instead of
	// spawning it. Commands with no configured response exit 0.
	Recorder struct {
		mu        sync.Mutex
		calls     []process.Command
		responses map[string]Response
	}
)

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{responses: make(map[string]Response)}
}

// On sets the response for commands whose Name equals name.
func (r *Recorder) On(name string, resp Response) *Recorder {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.responses[name] = resp
	return r
}

// Missing makes commands named name fail to start, as if the executable
// were not installed.
func (r *Recorder) Missing(name string) *Recorder {
	return r.On(name, Response{Err: &process.StartError{Name: name, Err: exec.ErrNotFound}})
}

// Run implements process.Runner.
func (r *Recorder) Run(ctx context.Context, cmd process.Command) (process.ExitCode, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.Lock()
	cmd.Args = slices.Clone(cmd.Args)
	r.calls = append(r.calls, cmd)
	resp, ok := r.responses[cmd.Name]
	r.mu.Unlock()

	if !ok {
		return 0, nil
	}
	if resp.Do != nil {
		resp.Do(cmd)
	}
	return resp.ExitCode, resp.Err
}

// Calls returns a copy of the recorded commands in order.
func (r *Recorder) Calls() []process.Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.calls)
}

// Names returns the executable of every recorded command in order.
func (r *Recorder) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, len(r.calls))
	for i, c := range r.calls {
		names[i] = c.Name
	}
	return names
}
