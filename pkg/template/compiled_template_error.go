// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"fmt"
	"strings"

	"github.com/k14s/starlark-go/resolve"
	"github.com/k14s/starlark-go/starlark"
	"github.com/k14s/starlark-go/syntax"
)

// CompiledTemplateMultiError describes failures reported by Starlark while
// loading or running generated code, pointing back at template positions.
type CompiledTemplateMultiError struct {
	errs []CompiledTemplateError
	err  error
}

var _ error = CompiledTemplateMultiError{}

type CompiledTemplateError struct {
	Positions []CompiledTemplateErrorPosition
	Msg       string
}

type CompiledTemplateErrorPosition struct {
	ContextName  string
	TemplateLine *Line
}

// RenderError is returned by Template.Render. Its message is the raw
// failure reported at the point of failure (e.g. a key missing from the
// context, a failed dot lookup, an error from a filter).
type RenderError struct {
	TemplateName string
	CompiledTemplateMultiError
}

var _ error = &RenderError{}

func (e *RenderError) Error() string {
	return fmt.Sprintf("Rendering template '%s':%s", e.TemplateName, e.CompiledTemplateMultiError.Error())
}

func NewCompiledTemplateMultiError(err error, code []Line) CompiledTemplateMultiError {
	e := CompiledTemplateMultiError{err: err}
	src := codeSource(code)

	switch typedErr := err.(type) {
	case syntax.Error:
		e.errs = append(e.errs, CompiledTemplateError{
			Positions: src.positions(typedErr.Pos, ""),
			Msg:       typedErr.Msg,
		})

	case resolve.ErrorList:
		for _, resolveErr := range typedErr {
			e.errs = append(e.errs, CompiledTemplateError{
				Positions: src.positions(resolveErr.Pos, ""),
				Msg:       resolveErr.Msg,
			})
		}

	case *starlark.EvalError:
		result := CompiledTemplateError{Msg: typedErr.Msg}
		for i := len(typedErr.CallStack) - 1; i >= 0; i-- {
			frame := typedErr.CallStack[i]
			result.Positions = append(result.Positions, src.positions(frame.Pos, frame.Name)...)
		}
		e.errs = append(e.errs, result)

	default:
		e.errs = append(e.errs, CompiledTemplateError{Msg: err.Error()})
	}

	return e
}

// Messages returns the message of each contained error.
func (e CompiledTemplateMultiError) Messages() []string {
	var result []string
	for _, err := range e.errs {
		result = append(result, err.Msg)
	}
	return result
}

// Unwrap returns the error reported by Starlark.
func (e CompiledTemplateMultiError) Unwrap() error { return e.err }

func (e CompiledTemplateMultiError) Error() string {
	result := []string{""}

	for _, err := range e.errs {
		result = append(result, fmt.Sprintf("- %s", err.Msg))

		for _, pos := range err.Positions {
			linePad := "    "

			if len(pos.ContextName) > 0 {
				result = append(result, linePad+"in "+pos.ContextName)
				linePad += "  "
			}

			if pos.TemplateLine.SourceLine != nil {
				result = append(result, linePad+pos.TemplateLine.SourceLine.String())
			} else {
				result = append(result, fmt.Sprintf("%s? | %s (generated)",
					linePad, strings.TrimSpace(pos.TemplateLine.Code)))
			}
		}
	}

	return strings.Join(result, "\n")
}

type codeSource []Line

func (s codeSource) positions(pos syntax.Position, contextName string) []CompiledTemplateErrorPosition {
	// builtins have no position
	if pos.Line <= 0 || int(pos.Line) > len(s) {
		return nil
	}
	return []CompiledTemplateErrorPosition{{
		ContextName:  contextName,
		TemplateLine: &s[pos.Line-1],
	}}
}
