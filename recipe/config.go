package recipe

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// BuildConfig carries the settings of one invocation. It is supplied by the
// caller and never modified by the recipe.
type BuildConfig struct {
	OS        string          `yaml:"os"`
	Compiler  string          `yaml:"compiler"`
	BuildType string          `yaml:"build_type"`
	Arch      string          `yaml:"arch"`
	Options   map[string]bool `yaml:"options"`
}

// Option reports the value of the named option.
func (c BuildConfig) Option(name string) (value, ok bool) {
	value, ok = c.Options[name]
	return
}

// WithDefaults returns a copy of c where every option declared in defaults
// is set, taking the default when c does not set it. It fails with
// ErrUndeclaredOption if c sets an option that has no declared default.
func (c BuildConfig) WithDefaults(defaults map[string]bool) (BuildConfig, error) {
	for _, name := range slices.Sorted(maps.Keys(c.Options)) {
		if _, ok := defaults[name]; !ok {
			return BuildConfig{}, fmt.Errorf("%w: %q", ErrUndeclaredOption, name)
		}
	}
	opts := make(map[string]bool, len(defaults))
	maps.Copy(opts, defaults)
	maps.Copy(opts, c.Options)
	c.Options = opts
	return c, nil
}

// String returns a stable identifier for the configuration, suitable as a
// directory name: settings joined with "-", options appended after "|"
// in name order.
func (c BuildConfig) String() string {
	var parts []string
	for _, s := range []string{c.OS, c.Arch, c.Compiler, c.BuildType} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	id := strings.Join(parts, "-")
	if len(c.Options) == 0 {
		return id
	}
	opts := make([]string, 0, len(c.Options))
	for _, name := range slices.Sorted(maps.Keys(c.Options)) {
		opts = append(opts, fmt.Sprintf("%s=%t", name, c.Options[name]))
	}
	return id + "|" + strings.Join(opts, ",")
}

// ID is String made safe for use as a single path element.
func (c BuildConfig) ID() string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '|', ',', '=', '/', '\\', ':':
			return '_'
		}
		return r
	}, c.String())
}
