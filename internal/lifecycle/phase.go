package lifecycle

import (
	"context"
	"path/filepath"
)

// Phase identifies one step of the lifecycle.
type Phase string

const (
	PhaseConfigure Phase = "configure"
	PhaseBuild     Phase = "build"
	PhaseTest      Phase = "test"
	PhaseBenchmark Phase = "benchmark"
	PhasePackage   Phase = "package"
)

// phaseDef describes a phase and its failure policy.
type phaseDef struct {
	phase Phase
	// target is the state reached once the phase has run.
	target State
	// mandatory phases always run; optional ones only when enabled.
	mandatory bool
	// gating phases end the run on failure.
	gating bool
	run    func(r *Run, ctx context.Context) error
}

// phases lists the lifecycle in execution order.
var phases = []phaseDef{
	{PhaseConfigure, Configured, true, true, (*Run).configure},
	{PhaseBuild, Built, true, true, (*Run).build},
	{PhaseTest, Tested, true, true, (*Run).test},
	{PhaseBenchmark, Benchmarked, false, false, (*Run).benchmark},
	{PhasePackage, Packaged, true, true, (*Run).pack},
}

func (r *Run) configure(ctx context.Context) error {
	return r.cfg.Generator.Generate(ctx, r.cfg.Recipe.Requirements.All(), r.cfg.BuildConfig, r.cfg.Paths)
}

func (r *Run) build(ctx context.Context) error {
	return r.cfg.Driver.Invoke(ctx, r.cfg.Paths.BuildDir)
}

func (r *Run) test(ctx context.Context) error {
	return r.cfg.Tests.Run(ctx, r.cfg.Paths.BuildDir)
}

func (r *Run) benchmark(ctx context.Context) error {
	return r.cfg.Benchmarks.Run(ctx, r.benchmarkBinary())
}

func (r *Run) pack(ctx context.Context) error {
	if err := r.cfg.Packager.Install(ctx, r.cfg.Paths.BuildDir, r.cfg.Paths.PackageDir); err != nil {
		return err
	}
	return writeDescriptor(r.cfg.Paths.PackageDir, r.cfg.Recipe.Describe())
}

// benchmarkBinary returns the benchmark executable. A relative
// BenchmarkBinary is taken relative to the build directory.
func (r *Run) benchmarkBinary() string {
	if bin := r.cfg.BenchmarkBinary; bin != "" {
		if filepath.IsAbs(bin) {
			return bin
		}
		return filepath.Join(r.cfg.Paths.BuildDir, bin)
	}
	return filepath.Join(r.cfg.Paths.BuildDir, "benchmark", r.cfg.Recipe.Name+".benchmark")
}

func (r *Run) enabled(p phaseDef) bool {
	if p.mandatory {
		return true
	}
	switch p.phase {
	case PhaseBenchmark:
		return r.cfg.RunBenchmarks
	}
	return false
}
