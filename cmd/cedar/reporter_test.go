// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/juniensis/cedar/pkg/manifest"
)

func TestFormatElapsed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   time.Duration
		want string
	}{
		{1500 * time.Millisecond, "1.50s"},
		{90 * time.Second, "90.00s"},
		{12340 * time.Microsecond, "12.34ms"},
		{250 * time.Microsecond, "250.00µs"},
		{42, "42ns"},
		{0, "0ns"},
	}

	for _, tt := range tests {
		if got := formatElapsed(tt.in); got != tt.want {
			t.Errorf("formatElapsed(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuildReporter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	r := buildReporter{w: &buf}
	r.Compiling(&manifest.Manifest{Meta: manifest.Meta{Name: "demo"}}, "/work/demo")
	r.Finished(2 * time.Second)

	out := buf.String()
	for _, want := range []string{"Compiling", "demo v0.1.0 (/work/demo)", "Finished", "in 2.00s"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestStepReporter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	stepReporter{w: &buf}.Step("Initializing git")

	if !strings.Contains(buf.String(), "-> Initializing git") {
		t.Errorf("Step() wrote %q", buf.String())
	}
}
