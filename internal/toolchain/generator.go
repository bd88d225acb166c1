// Package toolchain generates the files a CMake build consumes: a
// dependency-lookup manifest and a toolchain manifest.
package toolchain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goplus/recipe/internal/layout"
	"github.com/goplus/recipe/recipe"
)

// Files written to layout.Paths.GeneratorsDir.
const (
	DepsFile      = "deps.cmake"
	DepsJSONFile  = "deps.json"
	ToolchainFile = "toolchain.cmake"
)

const header = "# Code generated by recipe. DO NOT EDIT.\n"

// ErrGeneration reports that generation failed.
var ErrGeneration = errors.New("generation failed")

// GenerationError wraps a failure to locate a requirement or to write a
// generated file.
type GenerationError struct {
	Requirement string // empty when no single requirement is at fault
	Err         error
}

func (e *GenerationError) Error() string {
	if e.Requirement == "" {
		return fmt.Sprintf("%s: %v", ErrGeneration, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", ErrGeneration, e.Requirement, e.Err)
}

func (e *GenerationError) Unwrap() []error {
	return []error{ErrGeneration, e.Err}
}

// Generator writes the toolchain files.
type Generator struct {
	Resolver Resolver

	// Prefix names generated project variables, e.g. KSTD_ENABLE_COVERAGE.
	Prefix string

	// Coverage sets <Prefix>_ENABLE_COVERAGE.
	Coverage bool
}

type dependency struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Propagation string `json:"propagation"`
	Target      string `json:"target"`
	Location    string `json:"location"`
}

// Generate resolves every requirement and writes the manifests into
// paths.GeneratorsDir. Nothing is written unless every requirement
// resolves and every manifest could be staged. Existing files are
// replaced, so repeated calls with the same inputs produce the same output.
func (g *Generator) Generate(ctx context.Context, reqs []recipe.Requirement, cfg recipe.BuildConfig, paths layout.Paths) error {
	deps := make([]dependency, 0, len(reqs))
	for _, req := range reqs {
		loc, err := g.Resolver.Resolve(ctx, req)
		if err != nil {
			return &GenerationError{Requirement: req.String(), Err: err}
		}
		deps = append(deps, dependency{
			Name:        req.Name,
			Version:     req.Version,
			Propagation: req.Propagation.String(),
			Target:      req.Target(),
			Location:    filepath.ToSlash(loc),
		})
	}

	depsJSON, err := json.MarshalIndent(deps, "", "  ")
	if err != nil {
		return &GenerationError{Err: err}
	}

	dir := paths.GeneratorsDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &GenerationError{Err: err}
	}
	// toolchain.cmake includes deps.cmake, so it is replaced last.
	files := []generatedFile{
		{DepsFile, []byte(depsCMake(deps))},
		{DepsJSONFile, append(depsJSON, '\n')},
		{ToolchainFile, []byte(g.toolchainCMake(cfg))},
	}
	if err := writeFiles(dir, files); err != nil {
		return &GenerationError{Err: err}
	}
	return nil
}

func depsCMake(deps []dependency) string {
	var b strings.Builder
	b.WriteString(header)
	for _, d := range deps {
		fmt.Fprintf(&b, "\n# %s/%s (%s)\n", d.Name, d.Version, d.Propagation)
		fmt.Fprintf(&b, "set(%s_DIR %s)\n", d.Name, quote(d.Location))
		fmt.Fprintf(&b, "list(PREPEND CMAKE_PREFIX_PATH %s)\n", quote(d.Location))
	}
	return b.String()
}

func (g *Generator) toolchainCMake(cfg recipe.BuildConfig) string {
	var b strings.Builder
	b.WriteString(header + "\n")
	if cfg.BuildType != "" {
		fmt.Fprintf(&b, "set(CMAKE_BUILD_TYPE %s CACHE STRING \"\" FORCE)\n", quote(cfg.BuildType))
	}
	if v, ok := cfg.Option("shared"); ok {
		fmt.Fprintf(&b, "set(BUILD_SHARED_LIBS %s CACHE BOOL \"\" FORCE)\n", onOff(v))
	}
	if v, ok := cfg.Option("fPIC"); ok {
		fmt.Fprintf(&b, "set(CMAKE_POSITION_INDEPENDENT_CODE %s)\n", onOff(v))
	}
	if g.Prefix != "" {
		cov := 0
		if g.Coverage {
			cov = 1
		}
		fmt.Fprintf(&b, "set(%s_ENABLE_COVERAGE %d)\n", g.Prefix, cov)
	}

	if len(cfg.Options) > 0 {
		b.WriteString("\n")
		for _, name := range sortedKeys(cfg.Options) {
			fmt.Fprintf(&b, "set(RECIPE_OPTION_%s %s)\n", name, onOff(cfg.Options[name]))
		}
	}
	fmt.Fprintf(&b, "\ninclude(\"${CMAKE_CURRENT_LIST_DIR}/%s\")\n", DepsFile)
	return b.String()
}

type generatedFile struct {
	name string
	data []byte
}

// writeFiles stages every file next to its destination, then renames them
// into place in order. A failure while staging leaves dir untouched.
func writeFiles(dir string, files []generatedFile) error {
	tmps := make([]string, 0, len(files))
	defer func() {
		for _, tmp := range tmps {
			os.Remove(tmp)
		}
	}()
	for _, f := range files {
		dst := filepath.Join(dir, f.name)
		if fi, err := os.Lstat(dst); err == nil && fi.IsDir() {
			return fmt.Errorf("%s: is a directory", dst)
		}
		tmp, err := stageFile(dst, f.data)
		if err != nil {
			return err
		}
		tmps = append(tmps, tmp)
	}
	for i, f := range files {
		if err := os.Rename(tmps[i], filepath.Join(dir, f.name)); err != nil {
			return err
		}
	}
	tmps = nil
	return nil
}

// stageFile writes data to a temporary file beside path and returns its name.
func stageFile(path string, data []byte) (string, error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return "", err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}
