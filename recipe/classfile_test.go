package recipe

import (
	"errors"
	"testing"
)

func TestRecipeF(t *testing.T) {
	var p RecipeF
	p.Name("kstd")
	p.Version("1.0")
	p.License("MIT")
	p.ExportsSources("CMakeLists.txt", "src/*")
	p.Requires("fmt", "10.2.1", "transitive-headers")
	p.Requires("gtest", "1.15.0", "private")
	p.Option("shared", false)
	p.Option("fPIC", true)
	p.Libs("kstd")

	r, err := p.Recipe()
	if err != nil {
		t.Fatalf("Recipe() failed: %v", err)
	}
	if r.Name != "kstd" || r.Version != "1.0" || r.License != "MIT" {
		t.Errorf("unexpected metadata: %+v", r)
	}
	if got := names(r.Requirements.All()); !equal(got, []string{"fmt", "gtest"}) {
		t.Errorf("requirements = %v", got)
	}
	if got := r.OptionNames(); !equal(got, []string{"fPIC", "shared"}) {
		t.Errorf("OptionNames() = %v", got)
	}
	if !equal(r.Sources, []string{"CMakeLists.txt", "src/*"}) {
		t.Errorf("Sources = %v", r.Sources)
	}
}

func TestRecipeFDeclarationErrors(t *testing.T) {
	var p RecipeF
	p.Name("kstd")
	p.Version("1.0")
	p.Requires("fmt", "10.2.1", "transitive-headers")
	p.Requires("fmt", "10.2.1", "transitive-headers")

	_, err := p.Recipe()
	if !errors.Is(err, ErrDuplicateRequirement) {
		t.Errorf("Recipe() = %v, want ErrDuplicateRequirement", err)
	}
}

func TestRecipeFComponent(t *testing.T) {
	var p RecipeF
	p.Name("kstd")
	p.Version("1.0")
	p.Requires("benchmark", "1.9.0", "transitive-libs", "benchmark_main")
	r, err := p.Recipe()
	if err != nil {
		t.Fatalf("Recipe() failed: %v", err)
	}
	if got := r.Describe().Targets(); !equal(got, []string{"benchmark::benchmark_main"}) {
		t.Errorf("Targets() = %v", got)
	}

	var q RecipeF
	q.Name("kstd")
	q.Version("1.0")
	q.Requires("benchmark", "1.9.0", "private", "benchmark_main", "benchmark")
	if _, err := q.Recipe(); !errors.Is(err, ErrInvalidRequirement) {
		t.Errorf("Recipe() = %v, want ErrInvalidRequirement", err)
	}
}

func TestRecipeFMissingName(t *testing.T) {
	var p RecipeF
	p.Version("1.0")
	if _, err := p.Recipe(); err == nil {
		t.Error("Recipe() without name should fail")
	}
}
