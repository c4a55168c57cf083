// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"fmt"
	"reflect"
	"runtime/debug"

	"carvel.dev/minitpl/pkg/orderedmap"
	"github.com/k14s/starlark-go/starlark"
)

var (
	errorType          = reflect.TypeOf((*error)(nil)).Elem()
	starlarkValueType  = reflect.TypeOf((*starlark.Value)(nil)).Elem()
	stringMapType      = reflect.TypeOf(map[string]interface{}{})
	emptyInterfaceType = reflect.TypeOf((*interface{})(nil)).Elem()
)

// GoFunc makes a Go function callable from templates (e.g. as a filter).
// Supported results are (), (T), (error) and (T, error).
type GoFunc struct {
	name string
	fn   reflect.Value
}

var _ starlark.Callable = GoFunc{}

func NewGoFunc(name string, fn reflect.Value) GoFunc {
	if fn.Kind() != reflect.Func {
		panic(fmt.Sprintf("expected func, but was %s", fn.Kind()))
	}
	return GoFunc{name, fn}
}

func (f GoFunc) Name() string          { return f.name }
func (f GoFunc) String() string        { return "<go function " + f.name + ">" }
func (f GoFunc) Type() string          { return "go:function" }
func (f GoFunc) Freeze()               {}
func (f GoFunc) Truth() starlark.Bool  { return true }
func (f GoFunc) Hash() (uint32, error) { return 0, fmt.Errorf("unhashable type: %s", f.Type()) }

// AsGoValue returns the wrapped Go function.
func (f GoFunc) AsGoValue() interface{} { return f.fn.Interface() }

func (f GoFunc) CallInternal(thread *starlark.Thread, args starlark.Tuple, kwargs []starlark.Tuple) (val starlark.Value, resultErr error) {
	defer func() {
		if err := recover(); err != nil {
			resultErr = fmt.Errorf("%s: (p) %v (backtrace: %s)", f.name, err, debug.Stack())
		}
	}()

	if len(kwargs) > 0 {
		return nil, fmt.Errorf("%s: unexpected keyword arguments", f.name)
	}

	in, err := f.buildArgs(args)
	if err != nil {
		return nil, fmt.Errorf("%s: %s", f.name, err)
	}

	out := f.fn.Call(in)

	val, err = f.buildResult(out)
	if err != nil {
		return nil, fmt.Errorf("%s: %s", f.name, err)
	}
	return val, nil
}

func (f GoFunc) buildArgs(args starlark.Tuple) ([]reflect.Value, error) {
	fnType := f.fn.Type()
	numIn := fnType.NumIn()

	if fnType.IsVariadic() {
		if args.Len() < numIn-1 {
			return nil, fmt.Errorf("expected at least %d arguments, but got %d", numIn-1, args.Len())
		}
	} else if args.Len() != numIn {
		return nil, fmt.Errorf("expected %d arguments, but got %d", numIn, args.Len())
	}

	var result []reflect.Value
	for i, arg := range args {
		var argType reflect.Type
		if fnType.IsVariadic() && i >= numIn-1 {
			argType = fnType.In(numIn - 1).Elem()
		} else {
			argType = fnType.In(i)
		}

		argVal, err := AssignableGoValue(arg, argType)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %s", i+1, err)
		}
		result = append(result, argVal)
	}
	return result, nil
}

func (f GoFunc) buildResult(out []reflect.Value) (starlark.Value, error) {
	switch len(out) {
	case 0:
		return starlark.None, nil

	case 1:
		if f.fn.Type().Out(0) == errorType {
			if !out[0].IsNil() {
				return nil, out[0].Interface().(error)
			}
			return starlark.None, nil
		}
		return NewGoValue(out[0].Interface()).AsStarlarkValue()

	case 2:
		if f.fn.Type().Out(1) != errorType {
			return nil, fmt.Errorf("expected second result to be an error")
		}
		if !out[1].IsNil() {
			return nil, out[1].Interface().(error)
		}
		return NewGoValue(out[0].Interface()).AsStarlarkValue()

	default:
		return nil, fmt.Errorf("expected at most two results, but got %d", len(out))
	}
}

// AssignableGoValue converts a Starlark value into a reflect.Value that can
// be passed where typ is expected.
func AssignableGoValue(arg starlark.Value, typ reflect.Type) (reflect.Value, error) {
	if typ.Kind() == reflect.Interface && typ != emptyInterfaceType && typ.Implements(starlarkValueType) {
		if reflect.TypeOf(arg).AssignableTo(typ) {
			return reflect.ValueOf(arg), nil
		}
	}

	goVal, err := NewStarlarkValue(arg).AsGoValue()
	if err != nil {
		return reflect.Value{}, err
	}
	return assignTo(goVal, typ)
}

func assignTo(val interface{}, typ reflect.Type) (reflect.Value, error) {
	if val == nil {
		return reflect.Zero(typ), nil
	}

	if typ == emptyInterfaceType {
		// callers of plain Go funcs should not see *orderedmap.Map
		return reflect.ValueOf(orderedmap.Conversion{Object: val}.AsUnorderedStringMaps()), nil
	}

	rv := reflect.ValueOf(val)
	if rv.Type().AssignableTo(typ) {
		return rv, nil
	}

	switch {
	case isNumberKind(rv.Kind()) && isNumberKind(typ.Kind()):
		return rv.Convert(typ), nil

	case rv.Kind() == reflect.String && typ.Kind() == reflect.String:
		return rv.Convert(typ), nil
	}

	switch typedVal := val.(type) {
	case *orderedmap.Map:
		plainMap := orderedmap.Conversion{Object: typedVal}.AsUnorderedStringMaps()
		if stringMapType.AssignableTo(typ) {
			return reflect.ValueOf(plainMap), nil
		}

	case []interface{}:
		if typ.Kind() == reflect.Slice {
			result := reflect.MakeSlice(typ, 0, len(typedVal))
			for i, item := range typedVal {
				itemVal, err := assignTo(item, typ.Elem())
				if err != nil {
					return reflect.Value{}, fmt.Errorf("item %d: %s", i, err)
				}
				result = reflect.Append(result, itemVal)
			}
			return result, nil
		}
	}

	return reflect.Value{}, fmt.Errorf("cannot use value of type %T as %s", val, typ)
}

func isNumberKind(kind reflect.Kind) bool {
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
