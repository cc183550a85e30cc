package commands

import (
	"errors"
	"fmt"

	"github.com/arthur-debert/dirsum/pkg/core"
)

// outcomeError carries a non-clean outcome out of a command. It prints
// nothing on its own; the renderer already reported the result, this
// only decides the process exit code.
type outcomeError struct {
	outcome core.Outcome
}

func (e *outcomeError) Error() string {
	return fmt.Sprintf("%s (exit %d)", e.outcome, e.outcome.ExitCode())
}

// outcomeErr converts an outcome to its error form. Clean is nil.
func outcomeErr(o core.Outcome) error {
	if o == core.OutcomeClean {
		return nil
	}
	return &outcomeError{outcome: o}
}

// ExitCode maps the error returned by Execute to the documented
// process exit code: 0 clean, 1 drift or recorded scan errors, 2
// failure to run at all.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var oe *outcomeError
	if errors.As(err, &oe) {
		return oe.outcome.ExitCode()
	}
	return core.OutcomeAborted.ExitCode()
}

// IsOutcome reports whether err only carries an exit code, meaning the
// command already rendered its result and nothing more should be
// printed.
func IsOutcome(err error) bool {
	var oe *outcomeError
	return errors.As(err, &oe)
}
