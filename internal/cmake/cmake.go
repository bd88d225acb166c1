// Package cmake drives the external tools of a CMake based package:
// cmake for configure/build/install, ctest for tests, and plain
// executables for benchmarks.
package cmake

import (
	"context"
	"io"
	"log/slog"
	"maps"
	"os"
	"os/exec"
	"slices"
	"strings"
)

type defineValue struct {
	value    string
	typeName string
}

// CMake drives CMake-based builds of one source tree.
type CMake struct {
	SourceDir string
	Generator string // e.g. "Ninja", "Unix Makefiles"
	BuildType string // CMAKE_BUILD_TYPE and --config
	Toolchain string // CMAKE_TOOLCHAIN_FILE

	// Env overrides variables of the process environment for every
	// command.
	Env map[string]string

	Stdout io.Writer
	Stderr io.Writer

	defines map[string]defineValue
}

// New returns a CMake for the sources in sourceDir.
func New(sourceDir string) *CMake {
	return &CMake{
		SourceDir: sourceDir,
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
		defines:   make(map[string]defineValue),
	}
}

// Define adds a -D<key>:STRING=<value> definition.
func (c *CMake) Define(key, value string) {
	c.define(key, defineValue{value: value, typeName: "STRING"})
}

// DefineBool adds a -D<key>:BOOL=ON/OFF definition.
func (c *CMake) DefineBool(key string, value bool) {
	v := "OFF"
	if value {
		v = "ON"
	}
	c.define(key, defineValue{value: v, typeName: "BOOL"})
}

func (c *CMake) define(key string, v defineValue) {
	if c.defines == nil {
		c.defines = make(map[string]defineValue)
	}
	c.defines[key] = v
}

// Configure runs "cmake -S <source> -B <buildDir>" with all definitions.
func (c *CMake) Configure(ctx context.Context, buildDir string, args ...string) error {
	if err := os.MkdirAll(buildDir, 0o755); err != nil {
		return err
	}
	cmakeArgs := []string{"-S", c.SourceDir, "-B", buildDir}
	if c.Generator != "" {
		cmakeArgs = append(cmakeArgs, "-G", c.Generator)
	}
	if c.Toolchain != "" {
		c.Define("CMAKE_TOOLCHAIN_FILE", c.Toolchain)
	}
	if c.BuildType != "" {
		c.Define("CMAKE_BUILD_TYPE", c.BuildType)
	}
	cmakeArgs = append(cmakeArgs, c.definesArgs()...)
	cmakeArgs = append(cmakeArgs, args...)
	return c.run(ctx, "", "cmake", cmakeArgs)
}

// Build runs "cmake --build <buildDir>".
func (c *CMake) Build(ctx context.Context, buildDir string, args ...string) error {
	cmakeArgs := []string{"--build", buildDir}
	if c.BuildType != "" {
		cmakeArgs = append(cmakeArgs, "--config", c.BuildType)
	}
	cmakeArgs = append(cmakeArgs, args...)
	return c.run(ctx, "", "cmake", cmakeArgs)
}

// Invoke configures and builds buildDir.
func (c *CMake) Invoke(ctx context.Context, buildDir string) error {
	if err := c.Configure(ctx, buildDir); err != nil {
		return err
	}
	return c.Build(ctx, buildDir)
}

// Install runs "cmake --install <buildDir> --prefix <packageDir>".
func (c *CMake) Install(ctx context.Context, buildDir, packageDir string) error {
	cmakeArgs := []string{"--install", buildDir, "--prefix", packageDir}
	if c.BuildType != "" {
		cmakeArgs = append(cmakeArgs, "--config", c.BuildType)
	}
	return c.run(ctx, "", "cmake", cmakeArgs)
}

func (c *CMake) run(ctx context.Context, dir, name string, args []string) error {
	return runCmd(ctx, dir, name, args, c.Env, c.Stdout, c.Stderr)
}

func (c *CMake) definesArgs() []string {
	if len(c.defines) == 0 {
		return nil
	}
	keys := slices.Sorted(maps.Keys(c.defines))
	args := make([]string, 0, len(keys))
	for _, k := range keys {
		d := c.defines[k]
		args = append(args, "-D"+k+":"+d.typeName+"="+d.value)
	}
	return args
}

func runCmd(ctx context.Context, dir, name string, args []string, env map[string]string, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	if len(env) > 0 {
		cmd.Env = mergeEnv(os.Environ(), env)
	}
	slog.Debug("exec", "cmd", name, "args", strings.Join(args, " "), "dir", dir)
	return cmd.Run()
}

func mergeEnv(base []string, override map[string]string) []string {
	envMap := make(map[string]string, len(base))
	for _, kv := range base {
		if k, v, ok := strings.Cut(kv, "="); ok {
			envMap[k] = v
		}
	}
	maps.Copy(envMap, override)
	out := make([]string, 0, len(envMap))
	for _, k := range slices.Sorted(maps.Keys(envMap)) {
		out = append(out, k+"="+envMap[k])
	}
	return out
}
