// Package recipe defines the declarative description of a native library
// package: its requirements, options, and the libraries it provides.
//
// Recipes are usually written as "<name>_recipe.gox" classfiles on top of
// RecipeF, but a Recipe may also be assembled directly in Go.
package recipe

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"unicode"
)

// Recipe is the loaded, immutable form of a recipe.
type Recipe struct {
	Name    string
	Version string
	License string
	Author  string

	// Sources lists the glob patterns exported with the package sources.
	Sources []string

	Requirements *RequirementSet

	// Options maps each declared option to its default value.
	Options map[string]bool

	// Libs names the libraries the package provides, in link order.
	Libs []string
}

// Describe returns the package descriptor of r.
func (r *Recipe) Describe() PackageDescriptor {
	return Describe(r.Libs, r.Requirements.All())
}

// Configure applies the recipe's option defaults to cfg.
func (r *Recipe) Configure(cfg BuildConfig) (BuildConfig, error) {
	return cfg.WithDefaults(r.Options)
}

// OptionNames returns the declared options in name order.
func (r *Recipe) OptionNames() []string {
	return slices.Sorted(maps.Keys(r.Options))
}

// EnvPrefix returns the prefix of environment toggles and generated
// variables for r: the upper-cased name with every other character
// replaced by "_" ("kstd" gives "KSTD").
func (r *Recipe) EnvPrefix() string {
	return strings.Map(func(c rune) rune {
		if c < unicode.MaxASCII && (unicode.IsLetter(c) || unicode.IsDigit(c)) {
			return unicode.ToUpper(c)
		}
		return '_'
	}, r.Name)
}

// Validate reports whether r is complete enough to be built.
func (r *Recipe) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("recipe: missing name")
	}
	if r.Version == "" {
		return fmt.Errorf("recipe %s: missing version", r.Name)
	}
	return nil
}
