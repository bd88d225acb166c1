package recipe

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateRequirement = errors.New("duplicate requirement")
	ErrInvalidRequirement   = errors.New("invalid requirement")
	ErrUndeclaredOption     = errors.New("undeclared option")
)

// DuplicateRequirementError is returned when a requirement name is declared
// twice in the same RequirementSet.
type DuplicateRequirementError struct {
	Name     string
	Existing Requirement
}

func (e *DuplicateRequirementError) Error() string {
	return fmt.Sprintf("%s: %q already declared as %s", ErrDuplicateRequirement, e.Name, e.Existing)
}

func (e *DuplicateRequirementError) Unwrap() error {
	return ErrDuplicateRequirement
}
