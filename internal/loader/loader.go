// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package loader interprets "<name>_recipe.gox" classfiles into recipes.
package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/goplus/ixgo"
	"github.com/goplus/ixgo/xgobuild"

	classfile "github.com/goplus/recipe/internal/ixgo"
	"github.com/goplus/recipe/recipe"
)

// ErrNoRecipe is returned by Find when a directory holds no recipe file.
var ErrNoRecipe = errors.New("no recipe file found")

// classfileMain represents an XGo class file that can be executed.
type classfileMain interface {
	Main()
}

// Find returns the path of the single recipe classfile in dir.
func Find(dir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*"+classfile.ClassExt))
	if err != nil {
		return "", err
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w in %s", ErrNoRecipe, dir)
	case 1:
		return matches[0], nil
	}
	return "", fmt.Errorf("multiple recipe files in %s: %s", dir, strings.Join(matches, ", "))
}

// Load loads the recipe classfile at path.
func Load(path string) (*recipe.Recipe, error) {
	dir, file := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	return LoadFS(os.DirFS(dir).(fs.ReadFileFS), file)
}

// LoadFS loads a recipe classfile from fsys. The file name must follow
// "<struct>_recipe.gox", where <struct> names the generated class.
func LoadFS(fsys fs.ReadFileFS, path string) (*recipe.Recipe, error) {
	if !strings.HasSuffix(path, classfile.ClassExt) {
		return nil, fmt.Errorf("failed to load recipe: %s is not a %s file", path, classfile.ClassExt)
	}
	structName, _, ok := strings.Cut(filepath.Base(path), "_")
	if !ok || structName == "" {
		return nil, fmt.Errorf("failed to load recipe: file name is not valid: %s", path)
	}

	content, err := fsys.ReadFile(path)
	if err != nil {
		return nil, err
	}
	class, err := interpret(filepath.Base(path), content, structName)
	if err != nil {
		return nil, fmt.Errorf("failed to load recipe %s: %w", path, err)
	}

	field := class.FieldByName("RecipeF")
	if !field.IsValid() {
		return nil, fmt.Errorf("failed to load recipe %s: class %s does not embed RecipeF", path, structName)
	}
	return field.Addr().Interface().(*recipe.RecipeF).Recipe()
}

// interpret builds and runs the classfile, returning its class value after
// Main has executed. The file is staged alone in a temporary directory:
// only directory builds apply the registered recipe class, and a source
// tree may hold other XGo files that are not part of the recipe.
func interpret(name string, content []byte, structName string) (reflect.Value, error) {
	dir, err := os.MkdirTemp("", "recipe-")
	if err != nil {
		return reflect.Value{}, err
	}
	defer os.RemoveAll(dir)
	if err := os.WriteFile(filepath.Join(dir, name), content, 0o644); err != nil {
		return reflect.Value{}, err
	}

	ctx := ixgo.NewContext(0)
	source, err := xgobuild.BuildDir(ctx, dir)
	if err != nil {
		return reflect.Value{}, err
	}
	pkgs, err := ctx.LoadFile("main.go", source)
	if err != nil {
		return reflect.Value{}, err
	}
	interp, err := ctx.NewInterp(pkgs)
	if err != nil {
		return reflect.Value{}, err
	}
	if err = interp.RunInit(); err != nil {
		return reflect.Value{}, err
	}

	typ, ok := interp.GetType(structName)
	if !ok {
		return reflect.Value{}, fmt.Errorf("struct name not found: %s", structName)
	}
	val := reflect.New(typ)
	main, ok := val.Interface().(classfileMain)
	if !ok {
		return reflect.Value{}, fmt.Errorf("class %s has no Main", structName)
	}
	main.Main()
	return val.Elem(), nil
}
