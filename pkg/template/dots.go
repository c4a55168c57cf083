// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"fmt"
	"strconv"

	"carvel.dev/minitpl/pkg/template/core"
	"github.com/k14s/starlark-go/starlark"
)

var dotsBuiltin = starlark.NewBuiltin(dotsFuncName, core.ErrWrapper(doDots))

// doDots resolves a chain of names against a value: do_dots(value, "a", "b").
func doDots(thread *starlark.Thread, f *starlark.Builtin,
	args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {

	if len(kwargs) > 0 {
		return starlark.None, fmt.Errorf("unexpected keyword arguments")
	}
	if args.Len() < 1 {
		return starlark.None, fmt.Errorf("expected at least one argument")
	}

	var names []string
	for _, arg := range args[1:] {
		name, ok := starlark.AsString(arg)
		if !ok {
			return starlark.None, fmt.Errorf("expected name to be a string, but was %s", arg.Type())
		}
		names = append(names, name)
	}

	return Resolve(thread, args.Index(0), names...)
}

// Resolve looks up each name in turn: first as a member (attribute), then
// as a key (or as a position for integer names). Results that are callable
// are called without arguments before continuing.
func Resolve(thread *starlark.Thread, value starlark.Value, names ...string) (starlark.Value, error) {
	for _, name := range names {
		result, found, err := lookupMember(value, name)
		if err != nil {
			return nil, err
		}
		if !found {
			result, found, err = lookupKey(value, name)
			if err != nil {
				return nil, err
			}
		}
		if !found {
			return nil, fmt.Errorf("cannot resolve '%s' on %s value %s", name, value.Type(), value.String())
		}

		if callable, ok := result.(starlark.Callable); ok {
			result, err = starlark.Call(thread, callable, nil, nil)
			if err != nil {
				return nil, err
			}
		}

		value = result
	}
	return value, nil
}

func lookupMember(value starlark.Value, name string) (starlark.Value, bool, error) {
	typedValue, ok := value.(starlark.HasAttrs)
	if !ok {
		return nil, false, nil
	}
	result, err := typedValue.Attr(name)
	if err != nil || result == nil {
		// missing attributes are reported as errors by some types
		return nil, false, nil
	}
	return result, true, nil
}

func lookupKey(value starlark.Value, name string) (starlark.Value, bool, error) {
	switch typedValue := value.(type) {
	case starlark.Mapping:
		result, found, err := typedValue.Get(starlark.String(name))
		if err != nil {
			return nil, false, err
		}
		return result, found, nil

	case starlark.Indexable:
		idx, err := strconv.Atoi(name)
		if err != nil || idx < 0 || idx >= typedValue.Len() {
			return nil, false, nil
		}
		return typedValue.Index(idx), true, nil

	default:
		return nil, false, nil
	}
}
