package internal

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/goplus/recipe/internal/cmake"
	"github.com/goplus/recipe/internal/env"
	"github.com/goplus/recipe/internal/lifecycle"
	"github.com/goplus/recipe/internal/toolchain"
)

var (
	buildStore     string
	buildGenerator string
	buildBenchmark string
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Configure, build, test and package the recipe",
	Long: `Build runs the package lifecycle: configure, build, test, benchmark (when
<NAME>_RUN_BENCHMARKS is set) and package. The first failing phase stops the
build, except the benchmark phase whose failure is only reported.`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	addStoreFlag(buildCmd)
	buildCmd.Flags().StringVarP(&buildGenerator, "generator", "G", "", "CMake generator (e.g. Ninja)")
	buildCmd.Flags().StringVar(&buildBenchmark, "benchmark-binary", "", "Benchmark binary, relative to the build directory (default: benchmark/<name>.benchmark)")
	rootCmd.AddCommand(buildCmd)
}

func addStoreFlag(cmd *cobra.Command) {
	cmd.Flags().StringVar(&buildStore, "store", "", "Root of installed dependency packages (default: $XDG_DATA_HOME/recipe/packages)")
}

func (s *session) generator() *toolchain.Generator {
	store := buildStore
	if store == "" {
		store = env.StoreDir()
	}
	return &toolchain.Generator{
		Resolver: &toolchain.Store{Root: store, Config: s.config},
		Prefix:   s.recipe.EnvPrefix(),
		Coverage: s.toggles.EnableCoverage,
	}
}

func runBuild(cmd *cobra.Command, args []string) error {
	s, err := newSession(true)
	if err != nil {
		return err
	}

	var out, errOut io.Writer = os.Stdout, os.Stderr
	if rootQuiet {
		out, errOut = io.Discard, io.Discard
	}

	cm := cmake.New(s.paths.SourceDir)
	cm.Generator = buildGenerator
	cm.BuildType = s.config.BuildType
	cm.Toolchain = filepath.Join(s.paths.GeneratorsDir(), toolchain.ToolchainFile)
	cm.Stdout, cm.Stderr = out, errOut

	tests := cmake.NewCTest()
	tests.Stdout, tests.Stderr = out, errOut
	bench := cmake.NewExec()
	bench.Stdout, bench.Stderr = out, errOut

	run, err := lifecycle.New(lifecycle.Config{
		Recipe:          s.recipe,
		BuildConfig:     s.config,
		Paths:           s.paths,
		RunBenchmarks:   s.toggles.RunBenchmarks,
		BenchmarkBinary: buildBenchmark,
		Generator:       s.generator(),
		Driver:          cm,
		Tests:           tests,
		Benchmarks:      bench,
		Packager:        cm,
	})
	if err != nil {
		return err
	}

	res, err := run.Execute(cmd.Context())
	if res != nil {
		printSummary(cmd.OutOrStdout(), s, res)
	}
	return err
}

func printSummary(w io.Writer, s *session, res *lifecycle.Result) {
	fmt.Fprintf(w, "%s/%s %s (%s)\n", s.recipe.Name, s.recipe.Version, res.State, s.config)
	for _, pr := range res.Phases {
		switch pr.Status {
		case lifecycle.StatusFailed:
			fmt.Fprintf(w, "  %-10s %s: %s\n", pr.Phase, pr.Status, pr.Error)
		default:
			fmt.Fprintf(w, "  %-10s %s\n", pr.Phase, pr.Status)
		}
	}
	if res.Succeeded() {
		fmt.Fprintf(w, "package: %s\n", s.paths.PackageDir)
	}
}
