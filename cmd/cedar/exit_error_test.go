// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"testing"

	"github.com/juniensis/cedar/internal/process"
)

func TestExitError_Status(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		code process.ExitCode
		want int
	}{
		{"success", 0, 0},
		{"program failure", 3, 3},
		{"upper bound", 255, 255},
		{"killed by signal", -1, 1},
		{"above range", 256, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := &ExitError{Code: tt.code}
			if got := e.Status(); got != tt.want {
				t.Errorf("Status() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestExitError_Unwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("program exited")
	e := &ExitError{Code: 2, Err: cause}
	if !errors.Is(e, cause) {
		t.Error("errors.Is(ExitError, cause) = false, want true")
	}
	if got := (&ExitError{Code: 4}).Error(); got != "exit status 4" {
		t.Errorf("Error() = %q, want %q", got, "exit status 4")
	}
}
