// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"fmt"
	"sort"
	"strings"

	"carvel.dev/minitpl/pkg/filepos"
	"carvel.dev/minitpl/pkg/orderedmap"
	"carvel.dev/minitpl/pkg/template/core"
	"github.com/k14s/starlark-go/starlark"
)

// Context binds variable names to values. Values may be plain Go values,
// structs (exposed via their exported fields and methods), functions
// (usable as filters) or Starlark values.
type Context map[string]interface{}

// AsOrderedMap orders keys alphabetically.
func (c Context) AsOrderedMap() *orderedmap.Map {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := orderedmap.NewMap()
	for _, k := range keys {
		result.Set(k, c[k])
	}
	return result
}

// Template is compiled once, when constructed, and may then be rendered
// any number of times (including concurrently).
type Template struct {
	name          string
	context       *orderedmap.Map
	allVariables  *variableSet
	loopVariables *variableSet
	code          []Line
	renderFunc    starlark.Callable
}

// New compiles text. Contexts are merged in order (later ones override
// earlier ones) to form the default context used by every render.
func New(name, text string, contexts ...Context) (*Template, error) {
	var maps []*orderedmap.Map
	for _, ctx := range contexts {
		maps = append(maps, ctx.AsOrderedMap())
	}
	return NewFromOrderedMaps(name, text, maps...)
}

// NewFromOrderedMaps is New for contexts that already have key order
// (e.g. decoded from files).
func NewFromOrderedMaps(name, text string, contexts ...*orderedmap.Map) (*Template, error) {
	defaultContext := orderedmap.NewMap()
	for _, ctx := range contexts {
		defaultContext.Merge(ctx)
	}

	tokens, err := NewTokenizer(name).Tokenize(text)
	if err != nil {
		return nil, err
	}

	compiled, err := newCompiler().Compile(tokens)
	if err != nil {
		return nil, err
	}

	renderFunc, err := loadRenderFunc(name, compiled.Lines)
	if err != nil {
		return nil, NewCompiledTemplateMultiError(err, compiled.Lines)
	}

	return &Template{
		name:          name,
		context:       defaultContext,
		allVariables:  compiled.AllVariables,
		loopVariables: compiled.LoopVariables,
		code:          compiled.Lines,
		renderFunc:    renderFunc,
	}, nil
}

func (t *Template) Name() string { return t.name }

// Render merges default context with overrides (later ones win) and
// evaluates the template against the result.
func (t *Template) Render(overrides ...Context) (string, error) {
	var maps []*orderedmap.Map
	for _, ctx := range overrides {
		maps = append(maps, ctx.AsOrderedMap())
	}
	return t.RenderOrderedMaps(maps...)
}

func (t *Template) RenderOrderedMaps(overrides ...*orderedmap.Map) (string, error) {
	merged := t.context.Copy()
	for _, ctx := range overrides {
		merged.Merge(ctx)
	}

	context, err := core.NewGoValue(merged).AsStarlarkValue()
	if err != nil {
		return "", fmt.Errorf("Converting context: %s", err)
	}

	thread := &starlark.Thread{Name: "render " + t.name}

	result, err := starlark.Call(thread, t.renderFunc, starlark.Tuple{context, dotsBuiltin}, nil)
	if err != nil {
		return "", &RenderError{
			TemplateName:               t.name,
			CompiledTemplateMultiError: NewCompiledTemplateMultiError(err, t.code),
		}
	}

	resultStr, ok := starlark.AsString(result)
	if !ok {
		return "", fmt.Errorf("Expected render result to be a string, but was %s", result.Type())
	}
	return resultStr, nil
}

// Variables returns names that must be present in the merged context,
// in the order they are first referenced. Filters are included.
func (t *Template) Variables() []string {
	return t.allVariables.Without(t.loopVariables)
}

func (t *Template) LoopVariables() []string { return t.loopVariables.Names() }

// MissingVariables returns required names absent from the merged context.
func (t *Template) MissingVariables(overrides ...Context) []string {
	merged := t.context.Copy()
	for _, ctx := range overrides {
		merged.Merge(ctx.AsOrderedMap())
	}

	var result []string
	for _, name := range t.Variables() {
		if _, found := merged.Get(name); !found {
			result = append(result, name)
		}
	}
	return result
}

// Code returns a copy of generated code lines.
func (t *Template) Code() []Line {
	result := make([]Line, len(t.code))
	copy(result, t.code)
	return result
}

func (t *Template) CodeAsString() string { return LinesAsString(t.code) }

func (t *Template) DebugCodeAsString() string {
	result := []string{"src:  code: | srccode"}

	for i, line := range t.code {
		src := ""
		pos := filepos.NewUnknownPosition()

		if line.SourceLine != nil {
			src = line.SourceLine.Content
			pos = line.SourceLine.Position
		}

		result = append(result, fmt.Sprintf("%s: %4d: %s | %s",
			pos.As4DigitString(), i+1, line.Code, strings.ReplaceAll(src, "\n", "\\n")))
	}

	return strings.Join(result, "\n")
}
