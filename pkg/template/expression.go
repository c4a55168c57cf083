// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/k14s/starlark-go/starlark"
)

const (
	localVarPrefix = "c_"
	dotsFuncName   = "do_dots"
)

var (
	validName  = regexp.MustCompile(`^[_a-zA-Z][_a-zA-Z0-9]*$`)
	validIndex = regexp.MustCompile(`^[0-9]+$`)
)

// variableSet keeps names in the order they were first referenced.
type variableSet struct {
	names  []string
	tokens map[string]Token
}

func newVariableSet() *variableSet {
	return &variableSet{tokens: map[string]Token{}}
}

func (s *variableSet) Add(name string, token Token) {
	if _, found := s.tokens[name]; found {
		return
	}
	s.names = append(s.names, name)
	s.tokens[name] = token
}

func (s *variableSet) Has(name string) bool {
	_, found := s.tokens[name]
	return found
}

// FirstReference returns the token in which name was first seen.
func (s *variableSet) FirstReference(name string) Token { return s.tokens[name] }

func (s *variableSet) Names() []string {
	return append([]string{}, s.names...)
}

// Without returns names (in order) that are not present in other.
func (s *variableSet) Without(other *variableSet) []string {
	var result []string
	for _, name := range s.names {
		if !other.Has(name) {
			result = append(result, name)
		}
	}
	return result
}

func localName(name string) string { return localVarPrefix + name }

// exprCode compiles a pipeline, dot chain or identifier into code that
// evaluates it. Pipes are split before dots, so dots bind tighter.
func (c *compiler) exprCode(expr string, token Token) (string, error) {
	expr = strings.TrimSpace(expr)

	switch {
	case strings.Contains(expr, "|"):
		pipes := strings.Split(expr, "|")

		code, err := c.exprCode(pipes[0], token)
		if err != nil {
			return "", err
		}

		for _, filter := range pipes[1:] {
			filter = strings.TrimSpace(filter)
			if strings.Contains(filter, ".") {
				return "", &SyntaxError{Msg: ErrMsgDottedFilter, At: filter, Position: token.Position}
			}
			err := c.variable(filter, c.allVariables, token)
			if err != nil {
				return "", err
			}
			code = fmt.Sprintf("%s(%s)", localName(filter), code)
		}
		return code, nil

	case strings.Contains(expr, "."):
		dots := strings.Split(expr, ".")

		code, err := c.exprCode(dots[0], token)
		if err != nil {
			return "", err
		}

		args := []string{code}
		for _, dot := range dots[1:] {
			dot = strings.TrimSpace(dot)
			if !validName.MatchString(dot) && !validIndex.MatchString(dot) {
				return "", &SyntaxError{Msg: ErrMsgInvalidName, At: dot, Position: token.Position}
			}
			args = append(args, starlark.String(dot).String())
		}
		return fmt.Sprintf("%s(%s)", dotsFuncName, strings.Join(args, ", ")), nil

	default:
		err := c.variable(expr, c.allVariables, token)
		if err != nil {
			return "", err
		}
		return localName(expr), nil
	}
}

func (c *compiler) variable(name string, vars *variableSet, token Token) error {
	if !validName.MatchString(name) {
		return &SyntaxError{Msg: ErrMsgInvalidName, At: name, Position: token.Position}
	}
	vars.Add(name, token)
	return nil
}
