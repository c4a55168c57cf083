// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"carvel.dev/minitpl/pkg/template/core"
	"github.com/k14s/starlark-go/starlark"
	"github.com/microcosm-cc/bluemonday"
)

type htmlModule struct{}

var stripTagsPolicy = bluemonday.StrictPolicy()

// StripTags removes all HTML elements and leaves (escaped) text content.
func (b htmlModule) StripTags(thread *starlark.Thread, f *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	val, err := core.OneStringArg(args, kwargs)
	if err != nil {
		return starlark.None, err
	}
	return starlark.String(stripTagsPolicy.Sanitize(val)), nil
}
