package cmake

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestDefinesArgs(t *testing.T) {
	c := New("")
	c.Define("FOO", "BAR")
	c.DefineBool("ENABLE", true)
	c.DefineBool("DISABLE", false)

	args := c.definesArgs()
	want := []string{"-DDISABLE:BOOL=OFF", "-DENABLE:BOOL=ON", "-DFOO:STRING=BAR"}
	if strings.Join(args, " ") != strings.Join(want, " ") {
		t.Errorf("definesArgs = %v, want %v", args, want)
	}
}

func TestDefinesArgsEmpty(t *testing.T) {
	if args := New("").definesArgs(); args != nil {
		t.Errorf("definesArgs on empty = %v, want nil", args)
	}
}

func TestDefineOnZeroValue(t *testing.T) {
	var c CMake
	c.DefineBool("X", true)
	if got := c.definesArgs(); len(got) != 1 || got[0] != "-DX:BOOL=ON" {
		t.Errorf("definesArgs = %v", got)
	}
}

func TestMergeEnv(t *testing.T) {
	got := mergeEnv([]string{"B=1", "A=2", "BROKEN"}, map[string]string{"A": "3", "C": "4"})
	want := []string{"A=3", "B=1", "C=4"}
	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Errorf("mergeEnv = %v, want %v", got, want)
	}
}

func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not supported on windows")
	}
	path := filepath.Join(t.TempDir(), "bench.sh")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExecRun(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		path := writeScript(t, `echo "ran in $(basename "$(pwd -P)") with $RECIPE_X"`)
		var out bytes.Buffer
		e := &Exec{Env: map[string]string{"RECIPE_X": "env"}, Stdout: &out, Stderr: &out}
		if err := e.Run(context.Background(), path); err != nil {
			t.Fatalf("Run failed: %v", err)
		}
		want := "ran in " + filepath.Base(filepath.Dir(path)) + " with env"
		if got := strings.TrimSpace(out.String()); got != want {
			t.Errorf("output = %q, want %q", got, want)
		}
	})

	t.Run("relative path", func(t *testing.T) {
		script := writeScript(t, `echo "ran in $(basename "$(pwd -P)")"`)
		dir := filepath.Dir(filepath.Dir(script))
		t.Chdir(dir)
		rel, err := filepath.Rel(dir, script)
		if err != nil {
			t.Fatal(err)
		}
		var out bytes.Buffer
		e := &Exec{Stdout: &out, Stderr: &out}
		if err := e.Run(context.Background(), rel); err != nil {
			t.Fatalf("Run(%q) failed: %v", rel, err)
		}
		if got, want := strings.TrimSpace(out.String()), "ran in "+filepath.Base(filepath.Dir(script)); got != want {
			t.Errorf("output = %q, want %q", got, want)
		}
	})

	t.Run("exit status", func(t *testing.T) {
		path := writeScript(t, "exit 3")
		err := NewExec().Run(context.Background(), path)
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			t.Fatalf("got %v, want *exec.ExitError", err)
		}
		if exitErr.ExitCode() != 3 {
			t.Errorf("ExitCode() = %d, want 3", exitErr.ExitCode())
		}
	})

	t.Run("missing binary", func(t *testing.T) {
		err := NewExec().Run(context.Background(), filepath.Join(t.TempDir(), "nope"))
		if err == nil {
			t.Error("Run of a missing binary should fail")
		}
	})
}

func TestCTestRun(t *testing.T) {
	if _, err := exec.LookPath("ctest"); err != nil {
		t.Skip("ctest not installed")
	}
	// An empty directory has no test configuration; ctest reports it
	// without crashing.
	var out bytes.Buffer
	ct := NewCTest()
	ct.Stdout, ct.Stderr = &out, &out
	_ = ct.Run(context.Background(), t.TempDir())
	if out.Len() == 0 {
		t.Error("ctest produced no output")
	}
}
