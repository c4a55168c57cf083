// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"fmt"

	"carvel.dev/minitpl/pkg/orderedmap"
	"github.com/k14s/starlark-go/starlark"
	"github.com/k14s/starlark-go/starlarkstruct"
)

type StarlarkValueToGoValueConversion interface {
	AsGoValue() interface{}
}

// StarlarkValue converts values produced during a render back into Go
// values (e.g. arguments passed to Go functions, input to encoders).
// Dicts become *orderedmap.Map to keep their order.
type StarlarkValue struct {
	val starlark.Value
}

func NewStarlarkValue(val starlark.Value) StarlarkValue {
	return StarlarkValue{val}
}

func (e StarlarkValue) AsGoValue() (interface{}, error) {
	return e.asInterface(e.val)
}

func (e StarlarkValue) AsString() (string, error) {
	if typedVal, ok := e.val.(starlark.String); ok {
		return string(typedVal), nil
	}
	return "", fmt.Errorf("expected string, but was %s", e.val.Type())
}

func (e StarlarkValue) asInterface(val starlark.Value) (interface{}, error) {
	if obj, ok := val.(StarlarkValueToGoValueConversion); ok {
		return obj.AsGoValue(), nil
	}

	switch typedVal := val.(type) {
	case nil, starlark.NoneType:
		return nil, nil

	case starlark.Bool:
		return bool(typedVal), nil

	case starlark.String:
		return string(typedVal), nil

	case starlark.Int:
		if i1, ok := typedVal.Int64(); ok {
			return i1, nil
		}
		if i2, ok := typedVal.Uint64(); ok {
			return i2, nil
		}
		return nil, fmt.Errorf("integer %s does not fit into 64 bits", typedVal.String())

	case starlark.Float:
		return float64(typedVal), nil

	case *starlark.Dict:
		return e.dictAsInterface(typedVal)

	case *starlark.List:
		return e.iterableAsInterface(typedVal)

	case starlark.Tuple:
		return e.iterableAsInterface(typedVal)

	case *starlark.Set:
		return e.iterableAsInterface(typedVal)

	case *starlarkstruct.Struct:
		return e.structAsInterface(typedVal)

	case starlark.Callable:
		// functions stay opaque; they can only be passed back into templates
		return typedVal, nil

	default:
		return nil, fmt.Errorf("unknown type %s for conversion to go value", val.Type())
	}
}

func (e StarlarkValue) dictAsInterface(val *starlark.Dict) (interface{}, error) {
	result := orderedmap.NewMap()
	for _, item := range val.Items() {
		if item.Len() != 2 {
			panic("dict item is not KV")
		}
		key, err := e.asInterface(item.Index(0))
		if err != nil {
			return nil, err
		}
		value, err := e.asInterface(item.Index(1))
		if err != nil {
			return nil, err
		}
		result.Set(key, value)
	}
	return result, nil
}

func (e StarlarkValue) structAsInterface(val *starlarkstruct.Struct) (interface{}, error) {
	// struct's ToStringDict uses map, hence ordering is not deterministic
	result := orderedmap.NewMap()
	for _, key := range val.AttrNames() {
		v, err := val.Attr(key)
		if err != nil {
			return nil, err
		}
		goVal, err := e.asInterface(v)
		if err != nil {
			return nil, err
		}
		result.Set(key, goVal)
	}
	return result, nil
}

func (e StarlarkValue) iterableAsInterface(iterable starlark.Iterable) (interface{}, error) {
	iter := iterable.Iterate()
	defer iter.Done()

	result := []interface{}{}
	var x starlark.Value
	for iter.Next(&x) {
		goVal, err := e.asInterface(x)
		if err != nil {
			return nil, err
		}
		result = append(result, goVal)
	}
	return result, nil
}
