package toolchain

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goplus/recipe/recipe"
)

// ErrNotFound is returned by a Resolver when a requirement has no
// installed location.
var ErrNotFound = errors.New("requirement not found")

// Resolver locates installed requirements.
type Resolver interface {
	Resolve(ctx context.Context, req recipe.Requirement) (string, error)
}

// Store resolves requirements from a directory of installed packages:
//
//	root/
//	  <name>@<version>-<config>/   # built for a specific BuildConfig
//	  <name>@<version>/            # configuration independent
//
// The configuration specific directory is preferred.
type Store struct {
	Root   string
	Config recipe.BuildConfig
}

func (s *Store) Resolve(ctx context.Context, req recipe.Requirement) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name, err := filepath.Localize(req.Name)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrNotFound, req, err)
	}
	candidates := []string{
		fmt.Sprintf("%s@%s-%s", name, req.Version, s.Config.ID()),
		fmt.Sprintf("%s@%s", name, req.Version),
	}
	for _, c := range candidates {
		dir := filepath.Join(s.Root, c)
		if fi, err := os.Stat(dir); err == nil && fi.IsDir() {
			return filepath.Abs(dir)
		}
	}
	return "", fmt.Errorf("%w: %s in %s", ErrNotFound, req, s.Root)
}
