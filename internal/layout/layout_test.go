package layout

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/goplus/recipe/recipe"
)

func TestResolveDeterministic(t *testing.T) {
	dir := t.TempDir()
	cfg := recipe.BuildConfig{
		OS: "linux", Arch: "amd64", Compiler: "gcc", BuildType: "Debug",
		Options: map[string]bool{"shared": true, "fPIC": false},
	}
	a, err := Resolve(cfg, dir)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	b, err := Resolve(cfg, dir)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if a != b {
		t.Errorf("Resolve not deterministic: %+v != %+v", a, b)
	}
}

func TestResolvePaths(t *testing.T) {
	dir := t.TempDir()
	p, err := Resolve(recipe.BuildConfig{OS: "linux", Arch: "amd64", Compiler: "gcc"}, dir)
	if err != nil {
		t.Fatal(err)
	}
	root, _ := filepath.Abs(dir)
	if p.SourceDir != root {
		t.Errorf("SourceDir = %q, want %q", p.SourceDir, root)
	}
	if want := filepath.Join(root, "build", "Release"); p.BuildDir != want {
		t.Errorf("BuildDir = %q, want %q", p.BuildDir, want)
	}
	if want := filepath.Join(root, "package", "linux-amd64-gcc-Release"); p.PackageDir != want {
		t.Errorf("PackageDir = %q, want %q", p.PackageDir, want)
	}
	if want := filepath.Join(root, "build", "Release", "generators"); p.GeneratorsDir() != want {
		t.Errorf("GeneratorsDir = %q, want %q", p.GeneratorsDir(), want)
	}
	for _, d := range []string{p.SourceDir, p.BuildDir, p.PackageDir} {
		if !filepath.IsAbs(d) {
			t.Errorf("%q is not absolute", d)
		}
	}
}

func TestResolveOptionsInPackageDir(t *testing.T) {
	dir := t.TempDir()
	p, err := Resolve(recipe.BuildConfig{OS: "linux", Arch: "amd64", Options: map[string]bool{"shared": true}}, dir)
	if err != nil {
		t.Fatal(err)
	}
	if got := filepath.Base(p.PackageDir); got != "linux-amd64-Release_shared_true" {
		t.Errorf("package dir element = %q", got)
	}
}

func TestResolveErrors(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		_, err := Resolve(recipe.BuildConfig{}, filepath.Join(t.TempDir(), "nope"))
		if !errors.Is(err, ErrLayout) {
			t.Errorf("got %v, want ErrLayout", err)
		}
	})

	t.Run("not a directory", func(t *testing.T) {
		f := filepath.Join(t.TempDir(), "file")
		os.WriteFile(f, nil, 0o644)
		_, err := Resolve(recipe.BuildConfig{}, f)
		if !errors.Is(err, ErrLayout) {
			t.Errorf("got %v, want ErrLayout", err)
		}
	})

	t.Run("unwritable", func(t *testing.T) {
		if runtime.GOOS == "windows" || os.Getuid() == 0 {
			t.Skip("permission bits are not enforced")
		}
		dir := t.TempDir()
		if err := os.Chmod(dir, 0o555); err != nil {
			t.Fatal(err)
		}
		defer os.Chmod(dir, 0o755)
		_, err := Resolve(recipe.BuildConfig{}, dir)
		if !errors.Is(err, ErrLayout) {
			t.Errorf("got %v, want ErrLayout", err)
		}
	})
}
