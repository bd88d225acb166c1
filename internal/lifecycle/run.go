package lifecycle

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	qerrors "github.com/qiniu/x/errors"

	"github.com/goplus/recipe/internal/layout"
	"github.com/goplus/recipe/recipe"
)

// Generator writes the configuration consumed by the build system.
type Generator interface {
	Generate(ctx context.Context, reqs []recipe.Requirement, cfg recipe.BuildConfig, paths layout.Paths) error
}

// Driver runs the native build system on a build tree.
type Driver interface {
	Invoke(ctx context.Context, buildDir string) error
}

// Runner runs a test or benchmark binary.
type Runner interface {
	Run(ctx context.Context, binaryPath string) error
}

// Packager installs the build tree into the package directory.
type Packager interface {
	Install(ctx context.Context, buildDir, packageDir string) error
}

// Config is everything a Run needs. All values are fixed before the run
// starts; nothing is read from the environment afterwards.
type Config struct {
	Recipe      *recipe.Recipe
	BuildConfig recipe.BuildConfig
	Paths       layout.Paths

	// RunBenchmarks enables the benchmark phase.
	RunBenchmarks bool

	// BenchmarkBinary overrides <BuildDir>/benchmark/<name>.benchmark.
	BenchmarkBinary string

	Generator  Generator
	Driver     Driver
	Tests      Runner
	Benchmarks Runner // may be nil when RunBenchmarks is false
	Packager   Packager

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

func (c *Config) validate() error {
	switch {
	case c.Recipe == nil:
		return fmt.Errorf("%w: no recipe", ErrConfig)
	case c.Generator == nil:
		return fmt.Errorf("%w: no generator", ErrConfig)
	case c.Driver == nil:
		return fmt.Errorf("%w: no build driver", ErrConfig)
	case c.Tests == nil:
		return fmt.Errorf("%w: no test runner", ErrConfig)
	case c.RunBenchmarks && c.Benchmarks == nil:
		return fmt.Errorf("%w: benchmarks enabled without a benchmark runner", ErrConfig)
	case c.Packager == nil:
		return fmt.Errorf("%w: no packager", ErrConfig)
	case c.Paths.BuildDir == "" || c.Paths.PackageDir == "":
		return fmt.Errorf("%w: layout not resolved", ErrConfig)
	}
	return nil
}

// Status is the outcome of one phase.
type Status string

const (
	StatusPending   Status = "pending"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
	StatusSkipped   Status = "skipped"
)

// PhaseResult records what happened to one phase.
type PhaseResult struct {
	Phase      Phase         `json:"phase"`
	Status     Status        `json:"status"`
	ExitStatus int           `json:"exit_status,omitempty"`
	Error      string        `json:"error,omitempty"`
	Started    time.Time     `json:"started,omitzero"`
	Duration   time.Duration `json:"duration,omitempty"`
}

// Result summarizes a finished Run.
type Result struct {
	ID     uuid.UUID
	State  State
	Phases []PhaseResult

	// Failure is the error of the gating phase that ended the run.
	Failure *PhaseExecutionError

	warnings qerrors.List
}

// Succeeded reports whether the run reached Done.
func (res *Result) Succeeded() bool {
	return res.State == Done
}

// ExitCode is 0 when the run reached Done and 1 otherwise.
func (res *Result) ExitCode() int {
	if res.Succeeded() {
		return 0
	}
	return 1
}

// Warnings returns the recorded failures of non-gating phases, or nil.
func (res *Result) Warnings() error {
	return res.warnings.ToError()
}

// Phase returns the result of phase p.
func (res *Result) Phase(p Phase) (PhaseResult, bool) {
	for _, pr := range res.Phases {
		if pr.Phase == p {
			return pr, true
		}
	}
	return PhaseResult{}, false
}

// Run is a single traversal of the lifecycle. It is not safe for
// concurrent use and cannot be executed twice; a new build needs a new Run
// with freshly resolved paths.
type Run struct {
	cfg    Config
	log    *slog.Logger
	state  State
	result *Result
}

// New returns a Run in the Created state.
func New(cfg Config) (*Run, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	id := uuid.New()
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	r := &Run{
		cfg:   cfg,
		log:   logger.With("run", id.String(), "recipe", cfg.Recipe.Name),
		state: Created,
		result: &Result{
			ID:     id,
			Phases: make([]PhaseResult, len(phases)),
		},
	}
	for i, p := range phases {
		r.result.Phases[i] = PhaseResult{Phase: p.phase, Status: StatusPending}
	}
	return r, nil
}

// ID returns the identifier of the run.
func (r *Run) ID() uuid.UUID {
	return r.result.ID
}

// State returns the current state.
func (r *Run) State() State {
	return r.state
}

// Execute walks the lifecycle. It returns the result together with the
// *PhaseExecutionError of the first gating phase that failed, if any.
// Later phases never run after such a failure.
func (r *Run) Execute(ctx context.Context) (*Result, error) {
	if r.state != Created {
		return nil, ErrAlreadyRun
	}
	defer r.saveRecord()

	for i, p := range phases {
		pr := &r.result.Phases[i]
		if !r.enabled(p) {
			pr.Status = StatusSkipped
			r.log.Debug("phase skipped", "phase", p.phase)
			continue
		}

		r.log.Info("phase started", "phase", p.phase)
		pr.Started = time.Now()
		err := ctx.Err()
		if err == nil {
			err = p.run(r, ctx)
		}
		pr.Duration = time.Since(pr.Started)

		if err != nil {
			perr := &PhaseExecutionError{Phase: p.phase, ExitStatus: exitStatus(err), Err: err}
			pr.Status = StatusFailed
			pr.ExitStatus = perr.ExitStatus
			pr.Error = err.Error()
			if p.gating {
				r.log.Error("phase failed", "phase", p.phase, "exit_status", perr.ExitStatus, "error", err)
				r.result.Failure = perr
				r.moveTo(Failed)
				return r.result, perr
			}
			r.log.Warn("phase failed, continuing", "phase", p.phase, "exit_status", perr.ExitStatus, "error", err)
			r.result.warnings.Add(perr)
		} else {
			pr.Status = StatusSucceeded
			r.log.Info("phase finished", "phase", p.phase, "duration", pr.Duration)
		}
		r.moveTo(p.target)
	}
	r.moveTo(Done)
	return r.result, nil
}

func (r *Run) moveTo(to State) {
	if !isAllowedTransition(r.state, to) {
		panic(fmt.Sprintf("lifecycle: disallowed transition %s -> %s", r.state, to))
	}
	r.state = to
	r.result.State = to
}

func (r *Run) saveRecord() {
	if err := writeRecord(r.cfg.Paths.BuildDir, r.result); err != nil {
		r.log.Warn("failed to write run record", "error", err)
	}
}
