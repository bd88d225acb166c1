// export by github.com/goplus/ixgo/cmd/qexp

package recipe

import (
	q "github.com/goplus/recipe/recipe"

	"go/constant"
	"reflect"

	"github.com/goplus/ixgo"
)

func init() {
	ixgo.RegisterPackage(&ixgo.Package{
		Name: "recipe",
		Path: "github.com/goplus/recipe/recipe",
		Deps: map[string]string{
			"errors":                  "errors",
			"fmt":                     "fmt",
			"github.com/qiniu/x/gsh":  "gsh",
			"golang.org/x/mod/semver": "semver",
			"maps":                    "maps",
			"slices":                  "slices",
			"strings":                 "strings",
			"unicode":                 "unicode",
		},
		Interfaces: map[string]reflect.Type{},
		NamedTypes: map[string]reflect.Type{
			"BuildConfig":               reflect.TypeOf((*q.BuildConfig)(nil)).Elem(),
			"DuplicateRequirementError": reflect.TypeOf((*q.DuplicateRequirementError)(nil)).Elem(),
			"PackageDescriptor":         reflect.TypeOf((*q.PackageDescriptor)(nil)).Elem(),
			"Propagation":               reflect.TypeOf((*q.Propagation)(nil)).Elem(),
			"Recipe":                    reflect.TypeOf((*q.Recipe)(nil)).Elem(),
			"RecipeF":                   reflect.TypeOf((*q.RecipeF)(nil)).Elem(),
			"Requirement":               reflect.TypeOf((*q.Requirement)(nil)).Elem(),
			"RequirementSet":            reflect.TypeOf((*q.RequirementSet)(nil)).Elem(),
		},
		AliasTypes: map[string]reflect.Type{},
		Vars: map[string]reflect.Value{
			"ErrDuplicateRequirement": reflect.ValueOf(&q.ErrDuplicateRequirement),
			"ErrInvalidRequirement":   reflect.ValueOf(&q.ErrInvalidRequirement),
			"ErrUndeclaredOption":     reflect.ValueOf(&q.ErrUndeclaredOption),
		},
		Funcs: map[string]reflect.Value{
			"Describe":          reflect.ValueOf(q.Describe),
			"Gopt_RecipeF_Main": reflect.ValueOf(q.Gopt_RecipeF_Main),
			"NewRequirementSet": reflect.ValueOf(q.NewRequirementSet),
			"ParsePropagation":  reflect.ValueOf(q.ParsePropagation),
		},
		TypedConsts: map[string]ixgo.TypedConst{
			"Private":           {Typ: reflect.TypeOf(q.Private), Value: constant.MakeInt64(int64(q.Private))},
			"TransitiveHeaders": {Typ: reflect.TypeOf(q.TransitiveHeaders), Value: constant.MakeInt64(int64(q.TransitiveHeaders))},
			"TransitiveLibs":    {Typ: reflect.TypeOf(q.TransitiveLibs), Value: constant.MakeInt64(int64(q.TransitiveLibs))},
		},
		UntypedConsts: map[string]ixgo.UntypedConst{
			"GopPackage": {Typ: "untyped bool", Value: constant.MakeBool(bool(q.GopPackage))},
		},
	})
}
