// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"fmt"

	"github.com/k14s/starlark-go/starlark"
	"github.com/k14s/starlark-go/syntax"
)

// loadRenderFunc parses, resolves and initializes generated code in its own
// set of globals, and returns the frozen render function it defines.
func loadRenderFunc(name string, code []Line) (fn starlark.Callable, resultErr error) {
	// Catch any panics to give a better contextual information
	defer func() {
		if err := recover(); err != nil {
			if typedErr, ok := err.(error); ok {
				resultErr = typedErr
			} else {
				resultErr = fmt.Errorf("(p) %s", err)
			}
		}
	}()

	f, err := syntax.Parse(name, LinesAsString(code), 0)
	if err != nil {
		return nil, err
	}

	predeclared := starlark.StringDict{}

	prog, err := starlark.FileProgram(f, predeclared.Has)
	if err != nil {
		return nil, err
	}

	thread := &starlark.Thread{Name: "load " + name}

	globals, err := prog.Init(thread, predeclared)
	if err != nil {
		return nil, err
	}

	globals.Freeze()

	renderFunc, ok := globals[renderFuncName].(starlark.Callable)
	if !ok {
		return nil, fmt.Errorf("Expected generated code to define function '%s'", renderFuncName)
	}

	return renderFunc, nil
}
