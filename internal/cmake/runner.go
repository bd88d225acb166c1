package cmake

import (
	"context"
	"io"
	"os"
	"path/filepath"
)

// CTest runs the test suite of a build tree.
type CTest struct {
	Args   []string
	Env    map[string]string
	Stdout io.Writer
	Stderr io.Writer
}

// NewCTest returns a CTest running "ctest -VV --output-on-failure".
func NewCTest() *CTest {
	return &CTest{
		Args:   []string{"-VV", "--output-on-failure"},
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Run runs ctest inside buildDir.
func (t *CTest) Run(ctx context.Context, buildDir string) error {
	return runCmd(ctx, buildDir, "ctest", t.Args, t.Env, t.Stdout, t.Stderr)
}

// Exec runs a built executable, such as a benchmark binary.
type Exec struct {
	Args   []string
	Env    map[string]string
	Stdout io.Writer
	Stderr io.Writer
}

// NewExec returns an Exec writing to the process output.
func NewExec(args ...string) *Exec {
	return &Exec{Args: args, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Run executes binaryPath from its own directory. A relative binaryPath is
// taken relative to the current directory.
func (e *Exec) Run(ctx context.Context, binaryPath string) error {
	path, err := filepath.Abs(binaryPath)
	if err != nil {
		return err
	}
	return runCmd(ctx, filepath.Dir(path), path, e.Args, e.Env, e.Stdout, e.Stderr)
}
