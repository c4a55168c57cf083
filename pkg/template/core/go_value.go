// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"fmt"
	"reflect"
	"sort"

	"carvel.dev/minitpl/pkg/orderedmap"
	"github.com/k14s/starlark-go/starlark"
)

type GoValueToStarlarkValueConversion interface {
	AsStarlarkValue() starlark.Value
}

// GoValue converts values supplied by Go callers (contexts, function
// results) into Starlark values.
type GoValue struct {
	val interface{}
}

func NewGoValue(val interface{}) GoValue {
	return GoValue{val}
}

func (e GoValue) AsStarlarkValue() (starlark.Value, error) {
	return e.asStarlarkValue(e.val)
}

func (e GoValue) asStarlarkValue(val interface{}) (starlark.Value, error) {
	switch typedVal := val.(type) {
	case nil:
		return starlark.None, nil

	case starlark.Value:
		return typedVal, nil

	case GoValueToStarlarkValueConversion:
		return typedVal.AsStarlarkValue(), nil

	case *orderedmap.Map:
		return e.orderedMapAsStarlarkValue(typedVal)

	case bool:
		return starlark.Bool(typedVal), nil

	case string:
		return starlark.String(typedVal), nil

	case int:
		return starlark.MakeInt(typedVal), nil

	case int64:
		return starlark.MakeInt64(typedVal), nil

	case float64:
		return starlark.Float(typedVal), nil

	case []interface{}:
		return e.sliceAsStarlarkValue(reflect.ValueOf(typedVal))
	}

	return e.reflectAsStarlarkValue(reflect.ValueOf(val))
}

func (e GoValue) reflectAsStarlarkValue(rv reflect.Value) (starlark.Value, error) {
	switch rv.Kind() {
	case reflect.Bool:
		return starlark.Bool(rv.Bool()), nil

	case reflect.String:
		return starlark.String(rv.String()), nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return starlark.MakeInt64(rv.Int()), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return starlark.MakeUint64(rv.Uint()), nil

	case reflect.Float32, reflect.Float64:
		return starlark.Float(rv.Float()), nil

	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return starlark.NewList(nil), nil
		}
		return e.sliceAsStarlarkValue(rv)

	case reflect.Map:
		return e.mapAsStarlarkValue(rv)

	case reflect.Func:
		if rv.IsNil() {
			return starlark.None, nil
		}
		return NewGoFunc(fmt.Sprintf("%T", rv.Interface()), rv), nil

	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return starlark.None, nil
		}
		if rv.Kind() == reflect.Ptr && rv.Elem().Kind() == reflect.Struct {
			return NewGoObject(rv), nil
		}
		return e.asStarlarkValue(rv.Elem().Interface())

	case reflect.Struct:
		return NewGoObject(rv), nil

	default:
		return nil, fmt.Errorf("unknown type %s for conversion to starlark value", rv.Type())
	}
}

func (e GoValue) orderedMapAsStarlarkValue(val *orderedmap.Map) (starlark.Value, error) {
	result := starlark.NewDict(val.Len())
	err := val.IterateErr(func(k, v interface{}) error {
		return e.setDictItem(result, k, v)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// mapAsStarlarkValue orders keys by their printed form so that iterating
// over a converted native map is deterministic.
func (e GoValue) mapAsStarlarkValue(rv reflect.Value) (starlark.Value, error) {
	keys := rv.MapKeys()
	sort.Slice(keys, func(i, j int) bool {
		return fmt.Sprintf("%v", keys[i].Interface()) < fmt.Sprintf("%v", keys[j].Interface())
	})

	result := starlark.NewDict(len(keys))
	for _, key := range keys {
		err := e.setDictItem(result, key.Interface(), rv.MapIndex(key).Interface())
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (e GoValue) setDictItem(dict *starlark.Dict, k, v interface{}) error {
	key, err := e.asStarlarkValue(k)
	if err != nil {
		return fmt.Errorf("Converting key %v: %s", k, err)
	}
	val, err := e.asStarlarkValue(v)
	if err != nil {
		return fmt.Errorf("Converting value of key %v: %s", k, err)
	}
	return dict.SetKey(key, val)
}

func (e GoValue) sliceAsStarlarkValue(rv reflect.Value) (starlark.Value, error) {
	result := make([]starlark.Value, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		val, err := e.asStarlarkValue(rv.Index(i).Interface())
		if err != nil {
			return nil, fmt.Errorf("Converting item %d: %s", i, err)
		}
		result = append(result, val)
	}
	return starlark.NewList(result), nil
}
