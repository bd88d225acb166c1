package toolchain

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goplus/recipe/internal/layout"
	"github.com/goplus/recipe/recipe"
)

var testReqs = []recipe.Requirement{
	{Name: "fmt", Version: "10.2.1", Propagation: recipe.TransitiveHeaders},
	{Name: "gtest", Version: "1.15.0", Propagation: recipe.Private, Component: "gtest_main"},
}

// mapResolver resolves names to fixed locations.
type mapResolver map[string]string

func (m mapResolver) Resolve(ctx context.Context, req recipe.Requirement) (string, error) {
	loc, ok := m[req.Name]
	if !ok {
		return "", ErrNotFound
	}
	return loc, nil
}

func testPaths(t *testing.T) layout.Paths {
	t.Helper()
	dir := t.TempDir()
	return layout.Paths{
		SourceDir:  dir,
		BuildDir:   filepath.Join(dir, "build", "Release"),
		PackageDir: filepath.Join(dir, "package"),
	}
}

func readGenerated(t *testing.T, paths layout.Paths) map[string]string {
	t.Helper()
	out := make(map[string]string)
	for _, name := range []string{DepsFile, DepsJSONFile, ToolchainFile} {
		data, err := os.ReadFile(filepath.Join(paths.GeneratorsDir(), name))
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		out[name] = string(data)
	}
	return out
}

func TestGenerate(t *testing.T) {
	paths := testPaths(t)
	g := &Generator{
		Resolver: mapResolver{"fmt": "/opt/fmt", "gtest": "/opt/gtest"},
		Prefix:   "KSTD",
		Coverage: true,
	}
	cfg := recipe.BuildConfig{BuildType: "Debug", Options: map[string]bool{"shared": true, "fPIC": false}}
	if err := g.Generate(context.Background(), testReqs, cfg, paths); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	files := readGenerated(t, paths)

	deps := files[DepsFile]
	for _, want := range []string{
		`set(fmt_DIR "/opt/fmt")`,
		`set(gtest_DIR "/opt/gtest")`,
		`list(PREPEND CMAKE_PREFIX_PATH "/opt/fmt")`,
	} {
		if !strings.Contains(deps, want) {
			t.Errorf("%s missing %q:\n%s", DepsFile, want, deps)
		}
	}
	if strings.Index(deps, "fmt_DIR") > strings.Index(deps, "gtest_DIR") {
		t.Errorf("%s does not keep declaration order:\n%s", DepsFile, deps)
	}

	var entries []dependency
	if err := json.Unmarshal([]byte(files[DepsJSONFile]), &entries); err != nil {
		t.Fatalf("decode %s: %v", DepsJSONFile, err)
	}
	if len(entries) != 2 || entries[0].Name != "fmt" || entries[1].Propagation != "private" || entries[1].Target != "gtest::gtest_main" {
		t.Errorf("unexpected %s entries: %+v", DepsJSONFile, entries)
	}

	tc := files[ToolchainFile]
	for _, want := range []string{
		`set(CMAKE_BUILD_TYPE "Debug" CACHE STRING "" FORCE)`,
		`set(BUILD_SHARED_LIBS ON CACHE BOOL "" FORCE)`,
		`set(CMAKE_POSITION_INDEPENDENT_CODE OFF)`,
		`set(KSTD_ENABLE_COVERAGE 1)`,
		`set(RECIPE_OPTION_fPIC OFF)`,
		`set(RECIPE_OPTION_shared ON)`,
	} {
		if !strings.Contains(tc, want) {
			t.Errorf("%s missing %q:\n%s", ToolchainFile, want, tc)
		}
	}
}

func TestGenerateCoverageOff(t *testing.T) {
	paths := testPaths(t)
	g := &Generator{Resolver: mapResolver{}, Prefix: "KSTD"}
	if err := g.Generate(context.Background(), nil, recipe.BuildConfig{}, paths); err != nil {
		t.Fatal(err)
	}
	if tc := readGenerated(t, paths)[ToolchainFile]; !strings.Contains(tc, "set(KSTD_ENABLE_COVERAGE 0)") {
		t.Errorf("coverage variable missing:\n%s", tc)
	}
}

func TestGenerateIdempotent(t *testing.T) {
	paths := testPaths(t)
	g := &Generator{Resolver: mapResolver{"fmt": "/opt/fmt", "gtest": "/opt/gtest"}, Prefix: "KSTD"}
	cfg := recipe.BuildConfig{BuildType: "Release", Options: map[string]bool{"shared": false}}

	if err := g.Generate(context.Background(), testReqs, cfg, paths); err != nil {
		t.Fatal(err)
	}
	first := readGenerated(t, paths)
	if err := g.Generate(context.Background(), testReqs, cfg, paths); err != nil {
		t.Fatal(err)
	}
	second := readGenerated(t, paths)
	for name := range first {
		if first[name] != second[name] {
			t.Errorf("%s changed between runs", name)
		}
	}

	entries, err := os.ReadDir(paths.GeneratorsDir())
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Errorf("generators dir has %d entries, want 3", len(entries))
	}
}

func TestGenerateNotFound(t *testing.T) {
	paths := testPaths(t)
	g := &Generator{Resolver: mapResolver{"fmt": "/opt/fmt"}}
	err := g.Generate(context.Background(), testReqs, recipe.BuildConfig{}, paths)
	if !errors.Is(err, ErrGeneration) {
		t.Fatalf("got %v, want ErrGeneration", err)
	}
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want wrapped ErrNotFound", err)
	}
	var gerr *GenerationError
	if !errors.As(err, &gerr) || gerr.Requirement != "gtest/1.15.0" {
		t.Errorf("unexpected error detail: %v", err)
	}
	if _, err := os.Stat(paths.GeneratorsDir()); !os.IsNotExist(err) {
		t.Errorf("generators dir should not exist after failed resolution")
	}
}

func TestGenerateWriteFailure(t *testing.T) {
	paths := testPaths(t)
	dir := paths.GeneratorsDir()
	if err := os.MkdirAll(filepath.Join(dir, ToolchainFile), 0o755); err != nil {
		t.Fatal(err)
	}
	old := "# previous run\n"
	if err := os.WriteFile(filepath.Join(dir, DepsFile), []byte(old), 0o644); err != nil {
		t.Fatal(err)
	}

	g := &Generator{Resolver: mapResolver{"fmt": "/opt/fmt", "gtest": "/opt/gtest"}}
	err := g.Generate(context.Background(), testReqs, recipe.BuildConfig{}, paths)
	if !errors.Is(err, ErrGeneration) {
		t.Fatalf("got %v, want ErrGeneration", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, DepsFile))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != old {
		t.Errorf("%s was replaced after a failed generation:\n%s", DepsFile, data)
	}
	if _, err := os.Stat(filepath.Join(dir, DepsJSONFile)); !os.IsNotExist(err) {
		t.Errorf("%s should not exist after a failed generation", DepsJSONFile)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("generators dir = %v, want only %s and %s", names, DepsFile, ToolchainFile)
	}
}

func TestQuote(t *testing.T) {
	for in, want := range map[string]string{
		"/opt/fmt":    `"/opt/fmt"`,
		`C:\deps`:     `"C:\\deps"`,
		`a"b`:         `"a\"b"`,
		"${HOME}/lib": `"\${HOME}/lib"`,
	} {
		if got := quote(in); got != want {
			t.Errorf("quote(%q) = %s, want %s", in, got, want)
		}
	}
}
