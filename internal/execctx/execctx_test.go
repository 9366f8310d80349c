// SPDX-License-Identifier: MPL-2.0

package execctx

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestResolve(t *testing.T) {
	t.Parallel()

	base := filepath.Join(string(filepath.Separator), "work")
	abs := filepath.Join(string(filepath.Separator), "elsewhere", "proj")

	tests := []struct {
		name    string
		workDir string
		in      string
		want    string
	}{
		{name: "relative", workDir: base, in: "demo", want: filepath.Join(base, "demo")},
		{name: "nested relative", workDir: base, in: filepath.Join("foo", "bar"), want: filepath.Join(base, "foo", "bar")},
		{name: "empty means workdir", workDir: base, in: "", want: base},
		{name: "absolute untouched", workDir: base, in: abs, want: abs},
		{name: "no workdir", workDir: "", in: "demo", want: "demo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := Context{WorkDir: tt.workDir}
			if got := c.Resolve(tt.in); got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEnvFromSlice(t *testing.T) {
	t.Parallel()

	got := EnvFromSlice([]string{"A=1", "B=", "C=x=y", "broken", "=nokey"})
	want := map[string]string{"A": "1", "B": "", "C": "x=y"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("EnvFromSlice() mismatch (-want +got):\n%s", diff)
	}
}

func TestNoColor(t *testing.T) {
	t.Parallel()

	if (Context{}).NoColor() {
		t.Error("NoColor() = true for empty env")
	}
	if (Context{Env: map[string]string{"NO_COLOR": ""}}).NoColor() {
		t.Error("NoColor() = true for empty NO_COLOR")
	}
	if !(Context{Env: map[string]string{"NO_COLOR": "1"}}).NoColor() {
		t.Error("NoColor() = false for NO_COLOR=1")
	}
}

func TestStreamsDefaults(t *testing.T) {
	t.Parallel()

	stdin, stdout, stderr := Context{}.Streams()
	if stdin == nil {
		t.Fatal("stdin is nil")
	}
	if n, _ := stdin.Read(make([]byte, 1)); n != 0 {
		t.Error("default stdin is not empty")
	}
	if stdout != io.Discard || stderr != io.Discard {
		t.Error("default writers are not io.Discard")
	}
}
