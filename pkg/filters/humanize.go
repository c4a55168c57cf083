// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"fmt"

	"carvel.dev/minitpl/pkg/template/core"
	"github.com/dustin/go-humanize"
	"github.com/k14s/starlark-go/starlark"
)

type humanizeModule struct{}

// FileSize formats a byte count with SI units (e.g. 82854982 as "83 MB").
func (b humanizeModule) FileSize(thread *starlark.Thread, f *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	val, err := b.int64Arg(args, kwargs)
	if err != nil {
		return starlark.None, err
	}
	if val < 0 {
		return starlark.None, fmt.Errorf("expected non-negative size, but was %d", val)
	}
	return starlark.String(humanize.Bytes(uint64(val))), nil
}

// Comma groups digits in thousands (e.g. 1234567 as "1,234,567").
func (b humanizeModule) Comma(thread *starlark.Thread, f *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	val, err := b.int64Arg(args, kwargs)
	if err != nil {
		return starlark.None, err
	}
	return starlark.String(humanize.Comma(val)), nil
}

func (humanizeModule) int64Arg(args starlark.Tuple, kwargs []starlark.Tuple) (int64, error) {
	val, err := core.OneArg(args, kwargs)
	if err != nil {
		return 0, err
	}

	typedVal, ok := val.(starlark.Int)
	if !ok {
		return 0, fmt.Errorf("expected int, but was %s", val.Type())
	}

	result, ok := typedVal.Int64()
	if !ok {
		return 0, fmt.Errorf("expected int to fit into 64 bits, but was %s", typedVal.String())
	}
	return result, nil
}
