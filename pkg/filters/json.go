// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"encoding/json"

	"carvel.dev/minitpl/pkg/orderedmap"
	"carvel.dev/minitpl/pkg/template/core"
	"github.com/k14s/starlark-go/starlark"
)

type jsonModule struct{}

// Encode renders value as compact JSON. Map keys come out sorted.
func (b jsonModule) Encode(thread *starlark.Thread, f *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	val, err := goValueArg(args, kwargs)
	if err != nil {
		return starlark.None, err
	}

	valBs, err := json.Marshal(val)
	if err != nil {
		return starlark.None, err
	}

	return starlark.String(string(valBs)), nil
}

// goValueArg converts the single argument into plain Go maps, slices and
// scalars that encoders understand.
func goValueArg(args starlark.Tuple, kwargs []starlark.Tuple) (interface{}, error) {
	arg, err := core.OneArg(args, kwargs)
	if err != nil {
		return nil, err
	}

	val, err := core.NewStarlarkValue(arg).AsGoValue()
	if err != nil {
		return nil, err
	}

	return orderedmap.Conversion{Object: val}.AsUnorderedStringMaps(), nil
}
