// SPDX-License-Identifier: MPL-2.0

package build

// Build stages, in order. A build that returns without error has reached
// StageFinished.
const (
	StageStart Stage = iota
	StageValidated
	StageManifestLoaded
	StageSourcesDiscovered
	StageCompilerResolved
	StageDispatched
	StageFinished
)

// Stage is a step of the build state machine.
type Stage int

// String returns the stage name used in logs and errors.
func (s Stage) String() string {
	switch s {
	case StageStart:
		return "start"
	case StageValidated:
		return "validated"
	case StageManifestLoaded:
		return "manifest loaded"
	case StageSourcesDiscovered:
		return "sources discovered"
	case StageCompilerResolved:
		return "compiler resolved"
	case StageDispatched:
		return "dispatched"
	case StageFinished:
		return "finished"
	default:
		return "unknown"
	}
}
