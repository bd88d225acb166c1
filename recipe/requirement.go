package recipe

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/mod/semver"
)

// Propagation controls whether a requirement is visible to consumers of the
// package.
type Propagation int

const (
	// Private requirements are used at build time only.
	Private Propagation = iota
	// TransitiveHeaders exposes the requirement's headers to consumers.
	TransitiveHeaders
	// TransitiveLibs exposes the requirement's libraries to consumers.
	TransitiveLibs
)

var propagationNames = [...]string{
	Private:           "private",
	TransitiveHeaders: "transitive-headers",
	TransitiveLibs:    "transitive-libs",
}

func (p Propagation) String() string {
	if p < 0 || int(p) >= len(propagationNames) {
		return fmt.Sprintf("Propagation(%d)", int(p))
	}
	return propagationNames[p]
}

// ParsePropagation parses the textual form used in recipe files.
func ParsePropagation(s string) (Propagation, error) {
	for i, name := range propagationNames {
		if name == s {
			return Propagation(i), nil
		}
	}
	return Private, fmt.Errorf("%w: unknown propagation mode %q", ErrInvalidRequirement, s)
}

// Requirement is a dependency declared by a recipe.
type Requirement struct {
	Name        string
	Version     string
	Propagation Propagation

	// Component is the imported CMake component consumers link against.
	// Empty means the package's main component, named like the package.
	Component string
}

// String returns the reference form "name/version".
func (r Requirement) String() string {
	return r.Name + "/" + r.Version
}

// Target returns the CMake imported target, e.g. "fmt::fmt" or
// "benchmark::benchmark_main".
func (r Requirement) Target() string {
	if r.Component == "" {
		return r.Name + "::" + r.Name
	}
	return r.Name + "::" + r.Component
}

// Validate checks that r has a name and a semantic version.
// Versions may omit the leading "v".
func (r Requirement) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidRequirement)
	}
	if strings.ContainsAny(r.Name, "/@ ") {
		return fmt.Errorf("%w: name %q contains a reserved character", ErrInvalidRequirement, r.Name)
	}
	if !semver.IsValid(canonicalVersion(r.Version)) {
		return fmt.Errorf("%w: %s: version %q is not a semantic version", ErrInvalidRequirement, r.Name, r.Version)
	}
	if strings.ContainsAny(r.Component, ":/@ ") {
		return fmt.Errorf("%w: %s: component %q contains a reserved character", ErrInvalidRequirement, r.Name, r.Component)
	}
	if r.Propagation < Private || r.Propagation > TransitiveLibs {
		return fmt.Errorf("%w: %s: %v", ErrInvalidRequirement, r.Name, r.Propagation)
	}
	return nil
}

func canonicalVersion(v string) string {
	if strings.HasPrefix(v, "v") {
		return v
	}
	return "v" + v
}

// RequirementSet is an ordered, write-once list of requirements. The zero
// value is ready to use.
//
// Order is significant: generators emit entries in declaration order, so a
// later entry may override an earlier one downstream.
type RequirementSet struct {
	reqs  []Requirement
	index map[string]int
}

// NewRequirementSet declares reqs in order and returns the resulting set.
func NewRequirementSet(reqs ...Requirement) (*RequirementSet, error) {
	s := &RequirementSet{}
	for _, r := range reqs {
		if err := s.Declare(r); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Declare appends r to the set. It fails with a *DuplicateRequirementError
// if a requirement with the same name is already present; the set is left
// unchanged on any error.
func (s *RequirementSet) Declare(r Requirement) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if i, ok := s.index[r.Name]; ok {
		return &DuplicateRequirementError{Name: r.Name, Existing: s.reqs[i]}
	}
	if s.index == nil {
		s.index = make(map[string]int)
	}
	s.index[r.Name] = len(s.reqs)
	s.reqs = append(s.reqs, r)
	return nil
}

// All returns the requirements in declaration order.
func (s *RequirementSet) All() []Requirement {
	if s == nil {
		return nil
	}
	return slices.Clone(s.reqs)
}

// Lookup returns the requirement named name.
func (s *RequirementSet) Lookup(name string) (Requirement, bool) {
	if s == nil {
		return Requirement{}, false
	}
	i, ok := s.index[name]
	if !ok {
		return Requirement{}, false
	}
	return s.reqs[i], true
}

// Len returns the number of declared requirements.
func (s *RequirementSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.reqs)
}
