// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"fmt"

	"github.com/k14s/starlark-go/starlark"
)

// OneArg returns the single positional argument of a filter-style call.
func OneArg(args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if len(kwargs) > 0 {
		return nil, fmt.Errorf("unexpected keyword arguments")
	}
	if args.Len() != 1 {
		return nil, fmt.Errorf("expected exactly one argument, but got %d", args.Len())
	}
	return args.Index(0), nil
}

// OneStringArg is OneArg for filters that only accept strings.
func OneStringArg(args starlark.Tuple, kwargs []starlark.Tuple) (string, error) {
	val, err := OneArg(args, kwargs)
	if err != nil {
		return "", err
	}
	return NewStarlarkValue(val).AsString()
}
