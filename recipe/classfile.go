package recipe

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/qiniu/x/gsh"
)

const GopPackage = true

// -----------------------------------------------------------------------------

// RecipeF is the classfile base of a "<name>_recipe.gox" file.
//
//	name "kstd"
//	version "1.0"
//	requires "fmt", "10.2.1", "transitive-headers"
//	option "shared", false
//	libs "kstd"
type RecipeF struct {
	gsh.App

	rec  Recipe
	reqs RequirementSet
	errs []error
}

func (p *RecipeF) app() *gsh.App {
	return &p.App
}

// Name sets the package name.
func (p *RecipeF) Name(name string) {
	p.rec.Name = name
}

// Version sets the package version.
func (p *RecipeF) Version(ver string) {
	p.rec.Version = ver
}

// License sets the package license.
func (p *RecipeF) License(license string) {
	p.rec.License = license
}

// Author sets the package author.
func (p *RecipeF) Author(author string) {
	p.rec.Author = author
}

// ExportsSources adds glob patterns of files shipped with the sources.
func (p *RecipeF) ExportsSources(patterns ...string) {
	p.rec.Sources = append(p.rec.Sources, patterns...)
}

// Requires declares that the package depends on name at version.
// propagation is one of "private", "transitive-headers" or "transitive-libs".
// An optional component names the CMake target consumers link against:
//
//	requires "benchmark", "1.9.0", "private", "benchmark_main"
func (p *RecipeF) Requires(name, version, propagation string, component ...string) {
	mode, err := ParsePropagation(propagation)
	if err != nil {
		p.errs = append(p.errs, err)
		return
	}
	if len(component) > 1 {
		p.errs = append(p.errs, fmt.Errorf("%w: %s: more than one component", ErrInvalidRequirement, name))
		return
	}
	req := Requirement{Name: name, Version: version, Propagation: mode}
	if len(component) == 1 {
		req.Component = component[0]
	}
	if err := p.reqs.Declare(req); err != nil {
		p.errs = append(p.errs, err)
	}
}

// Option declares a boolean option with its default value.
func (p *RecipeF) Option(name string, def bool) {
	if p.rec.Options == nil {
		p.rec.Options = make(map[string]bool)
	}
	p.rec.Options[name] = def
}

// Libs declares the libraries provided by the package.
func (p *RecipeF) Libs(names ...string) {
	p.rec.Libs = append(p.rec.Libs, names...)
}

// Recipe returns the declared recipe, or the declaration errors collected
// while the classfile ran.
func (p *RecipeF) Recipe() (*Recipe, error) {
	if err := errors.Join(p.errs...); err != nil {
		return nil, err
	}
	reqs, err := NewRequirementSet(p.reqs.All()...)
	if err != nil {
		return nil, err
	}
	rec := p.rec
	rec.Requirements = reqs
	rec.Options = maps.Clone(p.rec.Options)
	rec.Sources = slices.Clone(p.rec.Sources)
	rec.Libs = slices.Clone(p.rec.Libs)
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return &rec, nil
}

// -----------------------------------------------------------------------------

// Gopt_RecipeF_Main is main entry of this classfile.
func Gopt_RecipeF_Main(this interface {
	app() *gsh.App
	MainEntry()
}) {
	this.MainEntry()
	gsh.InitApp(this.app())
}

// -----------------------------------------------------------------------------
