// Package lifecycle sequences the phases of a package build.
//
// A Run walks a fixed list of phases, strictly one after another:
//
//	configure -> build -> test -> [benchmark] -> package
//
// Each phase carries two attributes. A mandatory phase always runs; an
// optional one runs only when enabled at construction time. A gating phase
// stops the run on failure; a non-gating one has its failure recorded as a
// warning and the run continues. Test is mandatory and gating, benchmark
// is optional and non-gating.
//
// The external tools are reached through small interfaces (Generator,
// Driver, Runner, Packager) so the orchestration can be exercised without
// cmake installed.
//
// Example usage:
//
//	run, err := lifecycle.New(lifecycle.Config{
//	    Recipe:        rec,
//	    BuildConfig:   cfg,
//	    Paths:         paths,
//	    RunBenchmarks: toggles.RunBenchmarks,
//	    Generator:     gen,
//	    Driver:        cm,
//	    Tests:         cmake.NewCTest(),
//	    Benchmarks:    cmake.NewExec(),
//	    Packager:      cm,
//	})
//	if err != nil {
//	    return err
//	}
//	res, err := run.Execute(ctx)
package lifecycle
