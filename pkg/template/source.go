// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"carvel.dev/minitpl/pkg/filepos"
)

// Line is a single line of generated code. SourceLine is nil for code
// that does not correspond to any template token (e.g. function setup).
type Line struct {
	Code       string
	SourceLine *SourceLine
}

type SourceLine struct {
	Position *filepos.Position
	Content  string
}

func NewSourceLine(pos *filepos.Position, content string) *SourceLine {
	if !pos.IsKnown() {
		panic("Expected source line position to be known")
	}
	return &SourceLine{Position: pos, Content: content}
}

func (l *SourceLine) String() string {
	if l == nil {
		return ""
	}
	return l.Position.AsCompactString() + " | " + l.Content
}
