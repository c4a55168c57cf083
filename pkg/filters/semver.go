// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"carvel.dev/minitpl/pkg/template/core"
	"github.com/hashicorp/go-version"
	"github.com/k14s/starlark-go/starlark"
)

type semverModule struct{}

// Normalize parses a version (e.g. "v1.2") and prints it in full form ("1.2.0").
func (b semverModule) Normalize(thread *starlark.Thread, f *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	val, err := core.OneStringArg(args, kwargs)
	if err != nil {
		return starlark.None, err
	}

	ver, err := version.NewVersion(val)
	if err != nil {
		return starlark.None, err
	}

	return starlark.String(ver.String()), nil
}
