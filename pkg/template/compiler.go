// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"fmt"
	"strings"

	"carvel.dev/minitpl/pkg/spell"
	"github.com/k14s/starlark-go/starlark"
)

const renderFuncName = "render"

var knownTags = []string{"if", "for", "endif", "endfor"}

type openTag struct {
	name  string
	token Token
	// number of body items present when the tag was opened
	bodyStart int
}

// pendingOutput is a code fragment that produces one piece of output.
type pendingOutput struct {
	code  string
	token Token
}

type compiler struct {
	code          *CodeBuilder
	buffered      []pendingOutput
	opsStack      []openTag
	allVariables  *variableSet
	loopVariables *variableSet
}

type compiledCode struct {
	Lines         []Line
	AllVariables  *variableSet
	LoopVariables *variableSet
}

func newCompiler() *compiler {
	return &compiler{
		code:          NewCodeBuilder(),
		allVariables:  newVariableSet(),
		loopVariables: newVariableSet(),
	}
}

// Compile turns tokens into the source of a single Starlark function:
//
//	def render(context, do_dots): ... return "".join(result)
func (c *compiler) Compile(tokens []Token) (compiledCode, error) {
	c.code.AddLine(fmt.Sprintf("def %s(context, %s):", renderFuncName, dotsFuncName), nil)
	c.code.Indent()

	bindings := c.code.AddSection()

	c.code.AddLine("result = []", nil)
	c.code.AddLine("append_result = result.append", nil)
	c.code.AddLine("extend_result = result.extend", nil)
	c.code.AddLine("to_str = str", nil)

	for _, token := range tokens {
		var err error

		switch token.Kind {
		case TokenComment:
			continue

		case TokenExpression:
			var expr string
			expr, err = c.exprCode(token.Inner(), token)
			if err == nil {
				c.buffered = append(c.buffered, pendingOutput{fmt.Sprintf("to_str(%s)", expr), token})
			}

		case TokenTag:
			c.flushOutput()
			err = c.tag(token)

		case TokenLiteral:
			if len(token.Content) > 0 {
				c.buffered = append(c.buffered, pendingOutput{starlark.String(token.Content).String(), token})
			}

		default:
			panic(fmt.Sprintf("unknown token kind %s", token.Kind))
		}

		if err != nil {
			return compiledCode{}, err
		}
	}

	if len(c.opsStack) > 0 {
		last := c.opsStack[len(c.opsStack)-1]
		return compiledCode{}, &SyntaxError{Msg: ErrMsgUnmatchedTag, At: last.name, Position: last.token.Position}
	}

	c.flushOutput()

	for _, name := range c.allVariables.Without(c.loopVariables) {
		bindings.AddLine(fmt.Sprintf("%s = context[%s]", localName(name), starlark.String(name).String()),
			c.allVariables.FirstReference(name).SourceLine())
	}

	c.code.AddLine(`return "".join(result)`, nil)
	c.code.Dedent()

	lines, err := c.code.Lines()
	if err != nil {
		return compiledCode{}, err
	}

	return compiledCode{lines, c.allVariables, c.loopVariables}, nil
}

func (c *compiler) tag(token Token) error {
	words := strings.Fields(token.Inner())
	if len(words) == 0 {
		return &SyntaxError{Msg: ErrMsgUnknownTag, At: token.Content, Position: token.Position}
	}

	switch {
	case words[0] == "if":
		if len(words) != 2 {
			return &SyntaxError{Msg: ErrMsgMalformedIf, At: token.Content, Position: token.Position}
		}
		cond, err := c.exprCode(words[1], token)
		if err != nil {
			return err
		}
		c.code.AddLine(fmt.Sprintf("if %s:", cond), token.SourceLine())
		c.openTag("if", token)

	case words[0] == "for":
		if len(words) != 4 || words[2] != "in" {
			return &SyntaxError{Msg: ErrMsgMalformedFor, At: token.Content, Position: token.Position}
		}
		err := c.variable(words[1], c.loopVariables, token)
		if err != nil {
			return err
		}
		iterable, err := c.exprCode(words[3], token)
		if err != nil {
			return err
		}
		c.code.AddLine(fmt.Sprintf("for %s in %s:", localName(words[1]), iterable), token.SourceLine())
		c.openTag("for", token)

	case strings.HasPrefix(words[0], "end"):
		var name string
		switch {
		case len(words) == 1 && len(words[0]) > len("end"):
			name = strings.TrimPrefix(words[0], "end")
		case len(words) == 2 && words[0] == "end":
			name = words[1]
		default:
			return &SyntaxError{Msg: ErrMsgMalformedEnd, At: token.Content, Position: token.Position}
		}
		return c.closeTag(name, token)

	default:
		err := &SyntaxError{Msg: ErrMsgUnknownTag, At: words[0], Position: token.Position}
		if suggestion, found := spell.Nearest(words[0], knownTags, 2); found {
			err.Hint = fmt.Sprintf("did you mean '%s'?", suggestion)
		}
		return err
	}

	return nil
}

func (c *compiler) openTag(name string, token Token) {
	c.opsStack = append(c.opsStack, openTag{name: name, token: token, bodyStart: c.code.Len()})
	c.code.Indent()
}

func (c *compiler) closeTag(name string, token Token) error {
	if len(c.opsStack) == 0 {
		return &SyntaxError{Msg: ErrMsgTooManyEnds, At: token.Content, Position: token.Position}
	}

	last := c.opsStack[len(c.opsStack)-1]
	c.opsStack = c.opsStack[:len(c.opsStack)-1]

	if last.name != name {
		return &SyntaxError{
			Msg:      ErrMsgMismatchedEnd,
			At:       name,
			Hint:     fmt.Sprintf("expected end of '%s' opened at %s", last.name, last.token.Position.AsCompactString()),
			Position: token.Position,
		}
	}

	if c.code.Len() == last.bodyStart {
		c.code.AddLine("pass", token.SourceLine())
	}

	c.code.Dedent()
	return nil
}

// flushOutput emits buffered fragments using as few calls as possible.
func (c *compiler) flushOutput() {
	switch len(c.buffered) {
	case 0:
		return
	case 1:
		c.code.AddLine(fmt.Sprintf("append_result(%s)", c.buffered[0].code), c.buffered[0].token.SourceLine())
	default:
		// one item per line so that failures map to their own token
		c.code.AddLine("extend_result([", c.buffered[0].token.SourceLine())
		c.code.Indent()
		for _, item := range c.buffered {
			c.code.AddLine(item.code+",", item.token.SourceLine())
		}
		c.code.Dedent()
		c.code.AddLine("])", c.buffered[len(c.buffered)-1].token.SourceLine())
	}
	c.buffered = nil
}
