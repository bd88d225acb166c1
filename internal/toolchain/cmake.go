package toolchain

import (
	"maps"
	"slices"
	"strings"
)

func onOff(v bool) string {
	if v {
		return "ON"
	}
	return "OFF"
}

// quote returns s as a CMake quoted argument.
func quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, `$`, `\$`)
	return `"` + r.Replace(s) + `"`
}

func sortedKeys(m map[string]bool) []string {
	return slices.Sorted(maps.Keys(m))
}
