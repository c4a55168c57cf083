// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"encoding/base64"

	"carvel.dev/minitpl/pkg/template/core"
	"github.com/k14s/starlark-go/starlark"
)

type base64Module struct{}

func (b base64Module) Encode(thread *starlark.Thread, f *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	val, err := core.OneStringArg(args, kwargs)
	if err != nil {
		return starlark.None, err
	}
	return starlark.String(base64.StdEncoding.EncodeToString([]byte(val))), nil
}

func (b base64Module) Decode(thread *starlark.Thread, f *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	val, err := core.OneStringArg(args, kwargs)
	if err != nil {
		return starlark.None, err
	}

	valDecoded, err := base64.StdEncoding.DecodeString(val)
	if err != nil {
		return starlark.None, err
	}

	return starlark.String(string(valDecoded)), nil
}
