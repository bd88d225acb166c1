package internal

import (
	"errors"

	"github.com/goplus/recipe/internal/lifecycle"
)

// phaseExitCodes gives each gating phase its own process exit code.
var phaseExitCodes = map[lifecycle.Phase]int{
	lifecycle.PhaseConfigure: 2,
	lifecycle.PhaseBuild:     3,
	lifecycle.PhaseTest:      4,
	lifecycle.PhasePackage:   6,
}

// exitCode maps a command error to the process exit code.
func exitCode(err error) int {
	var perr *lifecycle.PhaseExecutionError
	if errors.As(err, &perr) {
		if code, ok := phaseExitCodes[perr.Phase]; ok {
			return code
		}
	}
	return 1
}
