// Copyright 2024 The llar Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ixgo registers the recipe classfile and the packages a recipe
// may use with the ixgo interpreter.
package ixgo

import (
	"github.com/goplus/ixgo/xgobuild"
	"github.com/goplus/mod/modfile"

	_ "github.com/goplus/recipe/internal/ixgo/pkg/github.com/goplus/recipe/recipe"
	_ "github.com/goplus/recipe/internal/ixgo/pkg/github.com/qiniu/x/gsh"
	_ "github.com/goplus/recipe/internal/ixgo/pkg/golang.org/x/mod/semver"
)

// ClassExt is the file suffix of recipe classfiles.
const ClassExt = "_recipe.gox"

func init() {
	xgobuild.RegisterProject(&modfile.Project{
		Ext:   ClassExt,
		Class: "RecipeF",
		PkgPaths: []string{
			"github.com/goplus/recipe/recipe",
		},
		Import: []*modfile.Import{
			{
				Name: "semver",
				Path: "golang.org/x/mod/semver",
			},
		},
	})
}
