// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"fmt"
	"strings"
	"unicode"

	"carvel.dev/minitpl/pkg/template/core"
	"github.com/k14s/starlark-go/starlark"
)

type stringsModule struct{}

func (b stringsModule) Upper(thread *starlark.Thread, f *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	val, err := core.OneStringArg(args, kwargs)
	if err != nil {
		return starlark.None, err
	}
	return starlark.String(strings.ToUpper(val)), nil
}

func (b stringsModule) Lower(thread *starlark.Thread, f *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	val, err := core.OneStringArg(args, kwargs)
	if err != nil {
		return starlark.None, err
	}
	return starlark.String(strings.ToLower(val)), nil
}

// Title upper-cases every letter that follows a non-letter.
func (b stringsModule) Title(thread *starlark.Thread, f *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	val, err := core.OneStringArg(args, kwargs)
	if err != nil {
		return starlark.None, err
	}

	var result strings.Builder
	prevLetter := false

	for _, r := range val {
		if unicode.IsLetter(r) && !prevLetter {
			result.WriteRune(unicode.ToUpper(r))
		} else {
			result.WriteRune(r)
		}
		prevLetter = unicode.IsLetter(r)
	}

	return starlark.String(result.String()), nil
}

func (b stringsModule) Trim(thread *starlark.Thread, f *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	val, err := core.OneStringArg(args, kwargs)
	if err != nil {
		return starlark.None, err
	}
	return starlark.String(strings.TrimSpace(val)), nil
}

// Length works on anything with a length (strings, lists, dicts, ...).
func (b stringsModule) Length(thread *starlark.Thread, f *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	val, err := core.OneArg(args, kwargs)
	if err != nil {
		return starlark.None, err
	}

	length := starlark.Len(val)
	if length < 0 {
		return starlark.None, fmt.Errorf("value of type %s has no length", val.Type())
	}
	return starlark.MakeInt(length), nil
}
