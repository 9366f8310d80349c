// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/juniensis/cedar/pkg/manifest"
)

type (
	// buildReporter prints orchestrator progress.
	buildReporter struct {
		w io.Writer
	}

	// stepReporter prints scaffold steps as indented bullets.
	stepReporter struct {
		w io.Writer
	}
)

// Compiling prints the project being built.
func (r buildReporter) Compiling(m *manifest.Manifest, root string) {
	fmt.Fprintf(r.w, "\n\t%s %s v%s (%s)\n\n",
		SuccessStyle.Render("Compiling"), m.Meta.Name, m.VersionOrDefault(), PathStyle.Render(root))
}

// Finished prints the elapsed build time.
func (r buildReporter) Finished(elapsed time.Duration) {
	printFinished(r.w, elapsed)
}

// Step prints one scaffold step.
func (r stepReporter) Step(msg string) {
	fmt.Fprintf(r.w, "\t  %s %s\n", stepStyle.Render("->"), msg)
}

func printFinished(w io.Writer, elapsed time.Duration) {
	fmt.Fprintf(w, "\t%s in %s\n\n", SuccessStyle.Render("Finished"), formatElapsed(elapsed))
}

// formatElapsed renders d with two decimals in the largest unit below it,
// e.g. "1.50s", "12.34ms" or "250.00µs".
func formatElapsed(d time.Duration) string {
	switch {
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.2fms", float64(d)/float64(time.Millisecond))
	case d >= time.Microsecond:
		return fmt.Sprintf("%.2fµs", float64(d)/float64(time.Microsecond))
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
