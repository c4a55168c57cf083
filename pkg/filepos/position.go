// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package filepos

import (
	"fmt"
)

type Position struct {
	lineNum int // 1 based
	col     int // 1 based; 0 if unknown
	file    string
	line    string
	known   bool
}

func NewPosition(lineNum int) *Position {
	if lineNum <= 0 {
		panic("Lines are 1 based")
	}
	return &Position{lineNum: lineNum, known: true}
}

// NewPositionInFile returns the Position of line "lineNum" within the file "file"
func NewPositionInFile(lineNum int, file string) *Position {
	p := NewPosition(lineNum)
	p.file = file
	return p
}

// NewUnknownPosition is equivalent of zero value *Position
func NewUnknownPosition() *Position {
	return &Position{}
}

// WithColumn returns a copy of the position that also records a 1 based column.
func (p *Position) WithColumn(col int) *Position {
	if col <= 0 {
		panic("Columns are 1 based")
	}
	newPos := p.DeepCopy()
	newPos.col = col
	return newPos
}

func (p *Position) SetLine(line string) { p.line = line }

func (p *Position) IsKnown() bool { return p != nil && p.known }

func (p *Position) LineNum() int {
	if !p.IsKnown() {
		panic("Position is unknown")
	}
	return p.lineNum
}

// Column returns 0 when column was not recorded.
func (p *Position) Column() int {
	if p == nil {
		return 0
	}
	return p.col
}

func (p *Position) GetLine() string { return p.line }

func (p *Position) GetFile() string {
	if p == nil {
		return ""
	}
	return p.file
}

func (p *Position) AsString() string {
	return "line " + p.AsCompactString()
}

func (p *Position) AsCompactString() string {
	filePrefix := p.GetFile()
	if len(filePrefix) > 0 {
		filePrefix += ":"
	}
	if !p.IsKnown() {
		return filePrefix + "?"
	}
	if p.col > 0 {
		return fmt.Sprintf("%s%d:%d", filePrefix, p.lineNum, p.col)
	}
	return fmt.Sprintf("%s%d", filePrefix, p.lineNum)
}

func (p *Position) As4DigitString() string {
	if p.IsKnown() {
		return fmt.Sprintf("%4d", p.LineNum())
	}
	return "????"
}

func (p *Position) DeepCopy() *Position {
	if p == nil {
		return nil
	}
	newPos := *p
	return &newPos
}
