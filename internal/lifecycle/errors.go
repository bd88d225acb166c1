package lifecycle

import (
	"errors"
	"fmt"
)

var (
	ErrPhaseExecution = errors.New("phase execution failed")
	ErrAlreadyRun     = errors.New("lifecycle run already executed")
	ErrConfig         = errors.New("invalid lifecycle configuration")
)

// PhaseExecutionError reports the failure of one phase. ExitStatus is the
// exit code of the delegated process, or -1 when the failure did not come
// from a process exit.
type PhaseExecutionError struct {
	Phase      Phase
	ExitStatus int
	Err        error
}

func (e *PhaseExecutionError) Error() string {
	if e.ExitStatus >= 0 {
		return fmt.Sprintf("%s: %s: exit status %d", ErrPhaseExecution, e.Phase, e.ExitStatus)
	}
	return fmt.Sprintf("%s: %s: %v", ErrPhaseExecution, e.Phase, e.Err)
}

func (e *PhaseExecutionError) Unwrap() []error {
	return []error{ErrPhaseExecution, e.Err}
}

// exitStatus extracts the process exit code carried by err.
func exitStatus(err error) int {
	var coded interface{ ExitCode() int }
	if errors.As(err, &coded) {
		return coded.ExitCode()
	}
	return -1
}
