// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/k14s/starlark-go/starlark"
)

// GoObject exposes a Go struct (or pointer to one) to templates.
// Exported fields and methods are available as attributes; an attribute
// name may be spelled with a lowercase first letter (e.g. user.name
// resolves field Name).
type GoObject struct {
	val reflect.Value
}

var _ starlark.Value = GoObject{}
var _ starlark.HasAttrs = GoObject{}

func NewGoObject(val reflect.Value) GoObject {
	return GoObject{val}
}

func (o GoObject) String() string {
	if stringer, ok := o.val.Interface().(fmt.Stringer); ok {
		return stringer.String()
	}
	return fmt.Sprintf("%v", o.val.Interface())
}

func (o GoObject) Type() string          { return "go:" + o.val.Type().String() }
func (o GoObject) Freeze()               {}
func (o GoObject) Truth() starlark.Bool  { return starlark.Bool(!o.val.IsZero()) }
func (o GoObject) Hash() (uint32, error) { return 0, fmt.Errorf("unhashable type: %s", o.Type()) }

// AsGoValue returns the wrapped Go value unchanged.
func (o GoObject) AsGoValue() interface{} { return o.val.Interface() }

// Attr returns (nil, nil) if attribute is not present.
func (o GoObject) Attr(name string) (starlark.Value, error) {
	for _, candidate := range o.candidateNames(name) {
		if method := o.val.MethodByName(candidate); method.IsValid() {
			return NewGoFunc(candidate, method), nil
		}

		structVal := o.structVal()
		if !structVal.IsValid() {
			continue
		}
		field, found := structVal.Type().FieldByName(candidate)
		if !found || field.PkgPath != "" {
			continue
		}
		return NewGoValue(structVal.FieldByIndex(field.Index).Interface()).AsStarlarkValue()
	}
	return nil, nil
}

func (o GoObject) AttrNames() []string {
	var names []string

	if structVal := o.structVal(); structVal.IsValid() {
		for i := 0; i < structVal.NumField(); i++ {
			if field := structVal.Type().Field(i); field.PkgPath == "" {
				names = append(names, field.Name)
			}
		}
	}

	for i := 0; i < o.val.NumMethod(); i++ {
		names = append(names, o.val.Type().Method(i).Name)
	}

	sort.Strings(names)
	return names
}

func (o GoObject) structVal() reflect.Value {
	val := o.val
	if val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return reflect.Value{}
		}
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return reflect.Value{}
	}
	return val
}

func (GoObject) candidateNames(name string) []string {
	first, size := utf8.DecodeRuneInString(name)
	if first == utf8.RuneError || unicode.IsUpper(first) {
		return []string{name}
	}
	return []string{name, strings.ToUpper(string(first)) + name[size:]}
}
