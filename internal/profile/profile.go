// Package profile loads build settings from YAML profiles.
//
//	os: linux
//	arch: amd64
//	compiler: gcc
//	build_type: Release
//	options:
//	  shared: true
package profile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/goplus/recipe/recipe"
)

// Default returns the settings of the host: its OS and architecture and a
// Release build.
func Default() recipe.BuildConfig {
	return recipe.BuildConfig{
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		BuildType: "Release",
	}
}

// Parse decodes a profile. Unknown keys are rejected.
func Parse(data []byte) (recipe.BuildConfig, error) {
	var cfg recipe.BuildConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return recipe.BuildConfig{}, err
	}
	return cfg, nil
}

// Load reads the profile at path.
func Load(path string) (recipe.BuildConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return recipe.BuildConfig{}, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return recipe.BuildConfig{}, fmt.Errorf("profile %s: %w", path, err)
	}
	return cfg, nil
}

// Merge returns base with every non-empty setting of override applied.
// Options are merged key by key.
func Merge(base, override recipe.BuildConfig) recipe.BuildConfig {
	if override.OS != "" {
		base.OS = override.OS
	}
	if override.Arch != "" {
		base.Arch = override.Arch
	}
	if override.Compiler != "" {
		base.Compiler = override.Compiler
	}
	if override.BuildType != "" {
		base.BuildType = override.BuildType
	}
	if len(override.Options) > 0 {
		opts := make(map[string]bool, len(base.Options)+len(override.Options))
		maps.Copy(opts, base.Options)
		maps.Copy(opts, override.Options)
		base.Options = opts
	}
	return base
}

// Marshal encodes cfg as a profile.
func Marshal(cfg recipe.BuildConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}
