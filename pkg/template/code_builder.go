// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"fmt"
	"strings"
)

const indentStep = 4

// CodeBuilder accumulates lines of generated code at the current indent
// level. Sections are nested builders that reserve a spot in the output
// which can still be filled after later lines were added.
type CodeBuilder struct {
	items       []interface{} // Line or *CodeBuilder
	baseIndent  int
	indentLevel int
}

func NewCodeBuilder() *CodeBuilder {
	return &CodeBuilder{}
}

func (b *CodeBuilder) AddLine(code string, src *SourceLine) {
	if strings.Contains(code, "\n") {
		panic(fmt.Sprintf("Expected generated line to be single line: %q", code))
	}
	b.items = append(b.items, Line{
		Code:       strings.Repeat(" ", b.indentLevel) + code,
		SourceLine: src,
	})
}

// AddSection reserves a position at the current indent level.
func (b *CodeBuilder) AddSection() *CodeBuilder {
	section := &CodeBuilder{baseIndent: b.indentLevel, indentLevel: b.indentLevel}
	b.items = append(b.items, section)
	return section
}

func (b *CodeBuilder) Indent() { b.indentLevel += indentStep }

func (b *CodeBuilder) Dedent() {
	if b.indentLevel-indentStep < b.baseIndent {
		panic("Unexpected dedent below starting indent level")
	}
	b.indentLevel -= indentStep
}

// Len is the number of items (lines and sections) added directly to this builder.
func (b *CodeBuilder) Len() int { return len(b.items) }

// Lines flattens builder and its sections in order. Every builder must be
// back at the indent level it started at.
func (b *CodeBuilder) Lines() ([]Line, error) {
	if b.indentLevel != b.baseIndent {
		return nil, fmt.Errorf("Expected indent level to be %d, but was %d", b.baseIndent, b.indentLevel)
	}

	var result []Line
	for _, item := range b.items {
		switch typedItem := item.(type) {
		case Line:
			result = append(result, typedItem)
		case *CodeBuilder:
			lines, err := typedItem.Lines()
			if err != nil {
				return nil, fmt.Errorf("Section: %s", err)
			}
			result = append(result, lines...)
		default:
			panic(fmt.Sprintf("unknown code item %T", typedItem))
		}
	}
	return result, nil
}

func LinesAsString(lines []Line) string {
	result := make([]string, 0, len(lines))
	for _, line := range lines {
		result = append(result, line.Code)
	}
	// Do not add any unnecessary newlines to match code lines
	return strings.Join(result, "\n")
}
