// Package layout maps the abstract locations of a build (sources, build
// tree, package tree) to concrete paths for one invocation.
package layout

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goplus/recipe/recipe"
)

// ErrLayout reports that the layout could not be resolved.
var ErrLayout = errors.New("layout error")

// Error describes why the layout could not be resolved for a directory.
type Error struct {
	Dir string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrLayout, e.Dir, e.Err)
}

func (e *Error) Unwrap() []error {
	return []error{ErrLayout, e.Err}
}

// Paths are the absolute directories of one invocation. They are resolved
// once and shared by every phase.
//
//	<root>/                               SourceDir
//	  build/<BuildType>/                  BuildDir
//	    generators/                       GeneratorsDir
//	  package/<BuildConfig.ID()>          PackageDir, options included
type Paths struct {
	SourceDir  string `json:"source_dir"`
	BuildDir   string `json:"build_dir"`
	PackageDir string `json:"package_dir"`
}

// GeneratorsDir returns the directory receiving generated toolchain files.
func (p Paths) GeneratorsDir() string {
	return filepath.Join(p.BuildDir, "generators")
}

// Resolve computes the layout for cfg rooted at workDir. It is a pure
// function of its arguments apart from the writability check of workDir.
func Resolve(cfg recipe.BuildConfig, workDir string) (Paths, error) {
	root, err := filepath.Abs(workDir)
	if err != nil {
		return Paths{}, &Error{Dir: workDir, Err: err}
	}
	fi, err := os.Stat(root)
	if err != nil {
		return Paths{}, &Error{Dir: root, Err: err}
	}
	if !fi.IsDir() {
		return Paths{}, &Error{Dir: root, Err: errors.New("not a directory")}
	}
	if err := checkWritable(root); err != nil {
		return Paths{}, &Error{Dir: root, Err: err}
	}

	buildType := cfg.BuildType
	if buildType == "" {
		buildType = "Release"
	}
	cfg.BuildType = buildType
	return Paths{
		SourceDir:  root,
		BuildDir:   filepath.Join(root, "build", buildType),
		PackageDir: filepath.Join(root, "package", cfg.ID()),
	}, nil
}
