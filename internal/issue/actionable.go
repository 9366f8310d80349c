// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
)

// Problem is a failed cedar operation as shown to the user: what cedar was
// doing, on which path, hints for fixing it, and the catalog entry that
// explains the failure in depth.
type Problem struct {
	// Op is a verb phrase such as "build project".
	Op string
	// Path is the project, manifest or config file involved. Optional.
	Path  string
	Issue Id
	Hints []string
	Err   error
}

// Wrap describes err as a failure of op on path. A nil err yields nil. An
// id of zero means no catalog entry applies.
func Wrap(err error, id Id, op, path string, hints ...string) error {
	if err == nil {
		return nil
	}
	return &Problem{Op: op, Path: path, Issue: id, Hints: hints, Err: err}
}

// Error renders "failed to <op>: <path>: <cause>" with empty parts left out.
func (p *Problem) Error() string {
	parts := []string{"failed to " + p.Op}
	if p.Path != "" {
		parts = append(parts, p.Path)
	}
	if p.Err != nil {
		parts = append(parts, p.Err.Error())
	}
	return strings.Join(parts, ": ")
}

// Unwrap returns the cause.
func (p *Problem) Unwrap() error { return p.Err }

// Entry returns the catalog entry for the problem, or nil.
func (p *Problem) Entry() *Issue {
	if p.Issue == 0 {
		return nil
	}
	return Get(p.Issue)
}

// Format renders the message followed by one bullet per hint. Verbose
// output appends the numbered chain of causes.
func (p *Problem) Format(verbose bool) string {
	lines := []string{p.Error()}

	if len(p.Hints) > 0 {
		lines = append(lines, "")
		for _, hint := range p.Hints {
			lines = append(lines, "  • "+hint)
		}
	}

	if verbose {
		if chain := causes(p.Err); len(chain) > 0 {
			lines = append(lines, "", "Caused by:")
			for i, c := range chain {
				lines = append(lines, fmt.Sprintf("  %d. %s", i+1, c))
			}
		}
	}

	return strings.Join(lines, "\n")
}

// causes lists the messages along err's chain. Multi-errors are followed
// through their last element: cedar's typed errors list the sentinel first
// and the concrete cause last.
func causes(err error) []string {
	var chain []string
	for err != nil {
		chain = append(chain, err.Error())
		if multi, ok := err.(interface{ Unwrap() []error }); ok {
			errs := multi.Unwrap()
			if len(errs) == 0 {
				break
			}
			err = errs[len(errs)-1]
			continue
		}
		err = errors.Unwrap(err)
	}
	return chain
}
