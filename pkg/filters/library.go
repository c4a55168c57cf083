// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"sort"

	"carvel.dev/minitpl/pkg/template"
	"carvel.dev/minitpl/pkg/template/core"
	"github.com/k14s/starlark-go/starlark"
)

var all = map[string]core.StarlarkFunc{
	"upper":        stringsModule{}.Upper,
	"lower":        stringsModule{}.Lower,
	"title":        stringsModule{}.Title,
	"trim":         stringsModule{}.Trim,
	"length":       stringsModule{}.Length,
	"base64":       base64Module{}.Encode,
	"base64decode": base64Module{}.Decode,
	"json":         jsonModule{}.Encode,
	"yaml":         yamlModule{}.Encode,
	"toml":         tomlModule{}.Encode,
	"semver":       semverModule{}.Normalize,
	"striptags":    htmlModule{}.StripTags,
	"filesize":     humanizeModule{}.FileSize,
	"comma":        humanizeModule{}.Comma,
}

// Library returns a fresh context holding every filter.
func Library() template.Context {
	result := template.Context{}
	for name, fn := range all {
		result[name] = starlark.NewBuiltin(name, core.ErrWrapper(fn))
	}
	return result
}

// Names returns filter names in alphabetical order.
func Names() []string {
	var names []string
	for name := range all {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
