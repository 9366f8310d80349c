// SPDX-License-Identifier: MPL-2.0

package build

import (
	"github.com/juniensis/cedar/internal/process"
	"github.com/juniensis/cedar/pkg/manifest"
)

// Invocation is the compiler command line for one build.
type Invocation struct {
	Compiler manifest.Compiler
	// Sources are the discovered files, src/ entries before include/ entries.
	Sources []string
	// Flags are the manifest cflags in manifest order.
	Flags []string
	// Output is the artifact path passed to -o.
	Output string
}

// Args returns sources, then flags, then "-o <output>".
func (i Invocation) Args() []string {
	args := make([]string, 0, len(i.Sources)+len(i.Flags)+2)
	args = append(args, i.Sources...)
	args = append(args, i.Flags...)
	return append(args, "-o", i.Output)
}

// Command returns the process to spawn, without streams or directory.
func (i Invocation) Command() process.Command {
	return process.Command{Name: i.Compiler.String(), Args: i.Args()}
}
