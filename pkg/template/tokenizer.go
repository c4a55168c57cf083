// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"fmt"
	"regexp"
	"strings"

	"carvel.dev/minitpl/pkg/filepos"
)

type TokenKind int

const (
	TokenLiteral TokenKind = iota
	TokenExpression
	TokenTag
	TokenComment
)

func (k TokenKind) String() string {
	switch k {
	case TokenLiteral:
		return "literal"
	case TokenExpression:
		return "expression"
	case TokenTag:
		return "tag"
	case TokenComment:
		return "comment"
	default:
		return fmt.Sprintf("TokenKind(%d)", int(k))
	}
}

// Token is a piece of template text. Content includes delimiters.
type Token struct {
	Kind     TokenKind
	Content  string
	Position *filepos.Position
}

// Inner returns content between delimiters with surrounding whitespace removed.
func (t Token) Inner() string {
	if t.Kind == TokenLiteral {
		return t.Content
	}
	return strings.TrimSpace(t.Content[2 : len(t.Content)-2])
}

func (t Token) SourceLine() *SourceLine {
	return NewSourceLine(t.Position, t.Content)
}

var (
	tokenDelimiters = regexp.MustCompile(`(?s)\{\{.*?\}\}|\{%.*?%\}|\{#.*?#\}`)
	openDelimiters  = []string{"{{", "{%", "{#"}
)

type Tokenizer struct {
	name string
}

func Tokenize(name, data string) ([]Token, error) {
	return NewTokenizer(name).Tokenize(data)
}

func NewTokenizer(name string) *Tokenizer {
	return &Tokenizer{name: name}
}

// Tokenize splits data into literal text and delimited pieces.
// Empty literals are not returned.
func (t *Tokenizer) Tokenize(data string) ([]Token, error) {
	var tokens []Token

	currLine := 1
	currCol := 1
	lastOffset := 0

	appendToken := func(content string, kind TokenKind) error {
		if len(content) == 0 {
			return nil
		}

		pos := filepos.NewPositionInFile(currLine, t.name).WithColumn(currCol)
		token := Token{Kind: kind, Content: content, Position: pos}

		if token.Kind == TokenLiteral {
			if err := t.checkUnclosed(token); err != nil {
				return err
			}
		}

		tokens = append(tokens, token)
		currLine, currCol = t.advance(content, currLine, currCol)
		return nil
	}

	for _, match := range tokenDelimiters.FindAllStringIndex(data, -1) {
		if err := appendToken(data[lastOffset:match[0]], TokenLiteral); err != nil {
			return nil, err
		}
		delimited := data[match[0]:match[1]]
		if err := appendToken(delimited, t.classify(delimited)); err != nil {
			return nil, err
		}
		lastOffset = match[1]
	}

	if err := appendToken(data[lastOffset:], TokenLiteral); err != nil {
		return nil, err
	}

	return tokens, nil
}

// classify checks prefixes of a delimited piece in order: comment, expression, tag.
func (t *Tokenizer) classify(content string) TokenKind {
	switch {
	case strings.HasPrefix(content, "{#"):
		return TokenComment
	case strings.HasPrefix(content, "{{"):
		return TokenExpression
	case strings.HasPrefix(content, "{%"):
		return TokenTag
	default:
		return TokenLiteral
	}
}

// checkUnclosed reports opening delimiters left in literal text, since
// only delimiters without a matching close end up there.
func (t *Tokenizer) checkUnclosed(token Token) error {
	idx := -1
	var opener string

	for _, delim := range openDelimiters {
		if i := strings.Index(token.Content, delim); i >= 0 && (idx < 0 || i < idx) {
			idx = i
			opener = delim
		}
	}
	if idx < 0 {
		return nil
	}

	line, col := t.advance(token.Content[:idx], token.Position.LineNum(), token.Position.Column())

	return &SyntaxError{
		Msg:      ErrMsgUnclosedDelimiter,
		At:       opener,
		Position: filepos.NewPositionInFile(line, t.name).WithColumn(col),
	}
}

func (t *Tokenizer) advance(content string, line, col int) (int, int) {
	newLines := strings.Count(content, "\n")
	if newLines == 0 {
		return line, col + len([]rune(content))
	}
	return line + newLines, len([]rune(content[strings.LastIndex(content, "\n")+1:])) + 1
}
