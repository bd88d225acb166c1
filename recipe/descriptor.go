package recipe

import "slices"

// PackageDescriptor is the metadata a package exposes to its consumers.
// It is computed from static declarations only, so it is available whether
// or not the package was ever built.
type PackageDescriptor struct {
	LibraryNames        []string `json:"library_names"`
	ExposedRequirements []string `json:"exposed_requirements"`
	ExposedTargets      []string `json:"exposed_targets"`
}

// Describe builds the descriptor for a package providing libs. Requirements
// with Private propagation are omitted; the rest keep declaration order.
func Describe(libs []string, reqs []Requirement) PackageDescriptor {
	d := PackageDescriptor{
		LibraryNames:        append([]string{}, libs...),
		ExposedRequirements: []string{},
		ExposedTargets:      []string{},
	}
	for _, r := range reqs {
		if r.Propagation == Private {
			continue
		}
		d.ExposedRequirements = append(d.ExposedRequirements, r.Name)
		d.ExposedTargets = append(d.ExposedTargets, r.Target())
	}
	return d
}

// Targets returns the CMake imported targets of the exposed requirements,
// in the same order as ExposedRequirements.
func (d PackageDescriptor) Targets() []string {
	return slices.Clone(d.ExposedTargets)
}
