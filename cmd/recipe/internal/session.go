package internal

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goplus/recipe/internal/env"
	"github.com/goplus/recipe/internal/layout"
	"github.com/goplus/recipe/internal/loader"
	"github.com/goplus/recipe/internal/profile"
	"github.com/goplus/recipe/recipe"
)

var (
	sessionRecipe    string
	sessionDir       string
	sessionProfile   string
	sessionSettings  recipe.BuildConfig
	sessionOptionArg []string
)

func addSessionFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&sessionRecipe, "recipe", "", "Recipe file (default: the *_recipe.gox file in --dir)")
	flags.StringVarP(&sessionDir, "dir", "C", "", "Source directory (default: current directory)")
	flags.StringVar(&sessionProfile, "profile", "", "YAML profile with build settings")
	flags.StringVar(&sessionSettings.OS, "os", "", "Target operating system")
	flags.StringVar(&sessionSettings.Arch, "arch", "", "Target architecture")
	flags.StringVar(&sessionSettings.Compiler, "compiler", "", "Compiler")
	flags.StringVar(&sessionSettings.BuildType, "build-type", "", "Build type (Release, Debug, ...)")
	flags.StringArrayVarP(&sessionOptionArg, "option", "o", nil, "Set a recipe option, name=true|false (repeatable)")
}

// session is the state shared by the commands of one invocation: the
// recipe, the effective settings, the toggles and the resolved layout.
type session struct {
	recipe  *recipe.Recipe
	config  recipe.BuildConfig
	toggles env.Toggles
	paths   layout.Paths
}

// newSession loads the recipe and settings. The layout is resolved only
// when withLayout is set, since describe must work without a writable
// source tree.
func newSession(withLayout bool) (*session, error) {
	dir := sessionDir
	if dir == "" {
		wd, err := env.WorkDir()
		if err != nil {
			return nil, err
		}
		dir = wd
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	path := sessionRecipe
	if path == "" {
		if path, err = loader.Find(dir); err != nil {
			return nil, err
		}
	}
	rec, err := loader.Load(path)
	if err != nil {
		return nil, err
	}

	cfg, err := buildConfig()
	if err != nil {
		return nil, err
	}
	if cfg, err = rec.Configure(cfg); err != nil {
		return nil, fmt.Errorf("recipe %s: %w", rec.Name, err)
	}

	s := &session{
		recipe:  rec,
		config:  cfg,
		toggles: env.ReadToggles(rec.EnvPrefix()),
	}
	if withLayout {
		if s.paths, err = layout.Resolve(cfg, dir); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// buildConfig layers host defaults, the profile and the command line.
func buildConfig() (recipe.BuildConfig, error) {
	cfg := profile.Default()
	if sessionProfile != "" {
		p, err := profile.Load(sessionProfile)
		if err != nil {
			return recipe.BuildConfig{}, err
		}
		cfg = profile.Merge(cfg, p)
	}
	opts, err := parseOptions(sessionOptionArg)
	if err != nil {
		return recipe.BuildConfig{}, err
	}
	flags := sessionSettings
	flags.Options = opts
	return profile.Merge(cfg, flags), nil
}

// parseOptions parses "name=value" option arguments.
func parseOptions(args []string) (map[string]bool, error) {
	if len(args) == 0 {
		return nil, nil
	}
	opts := make(map[string]bool, len(args))
	for _, arg := range args {
		name, val, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid option %q, want name=true|false", arg)
		}
		b, err := strconv.ParseBool(val)
		if err != nil {
			return nil, fmt.Errorf("invalid option %q: %w", arg, err)
		}
		opts[name] = b
	}
	return opts, nil
}
