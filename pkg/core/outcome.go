package core

// Outcome summarizes how a command ended, independent of its printed
// output. Process exit codes map straight from it.
type Outcome int

const (
	// OutcomeClean means the operation completed with nothing to report:
	// a scan with no errors, a verify that found the tree in sync, a
	// diff between identical manifests.
	OutcomeClean Outcome = iota

	// OutcomeDirty means the operation completed but found differences
	// or recorded per-path errors under the keep-going policy.
	OutcomeDirty

	// OutcomeAborted means the operation could not complete.
	OutcomeAborted
)

// String returns the lowercase name used in logs and machine output.
func (o Outcome) String() string {
	switch o {
	case OutcomeClean:
		return "clean"
	case OutcomeDirty:
		return "dirty"
	case OutcomeAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// ExitCode maps the outcome to the process exit code contract: 0 for
// clean, 1 for dirty, 2 for aborted.
func (o Outcome) ExitCode() int {
	switch o {
	case OutcomeClean:
		return 0
	case OutcomeDirty:
		return 1
	default:
		return 2
	}
}
