// Package env reads the invocation environment: boolean toggles and the
// default directories used by the recipe runner.
package env

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/adrg/xdg"
)

const appName = "recipe"

// Toggles holds the boolean switches read from the environment for one
// invocation. They are read once, before the lifecycle starts, and passed
// along explicitly.
type Toggles struct {
	// RunBenchmarks enables the benchmark phase.
	RunBenchmarks bool
	// EnableCoverage is written into the generated toolchain.
	EnableCoverage bool
}

// ReadToggles reads <prefix>_RUN_BENCHMARKS and <prefix>_ENABLE_COVERAGE.
func ReadToggles(prefix string) Toggles {
	return Toggles{
		RunBenchmarks:  Bool(prefix + "_RUN_BENCHMARKS"),
		EnableCoverage: Bool(prefix + "_ENABLE_COVERAGE"),
	}
}

// Bool reports whether the environment variable key holds a true value.
// Numbers are true when non-zero; "true", "yes" and "on" are accepted in
// any case. Unset, empty or unparsable values are false.
func Bool(key string) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return false
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n != 0
	}
	switch strings.ToLower(v) {
	case "true", "yes", "on":
		return true
	}
	return false
}

// WorkDir returns the current working directory as an absolute path.
func WorkDir() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Abs(wd)
}

// StoreDir returns the default root of installed dependency packages:
// $XDG_DATA_HOME/recipe/packages.
func StoreDir() string {
	return filepath.Join(xdg.DataHome, appName, "packages")
}
