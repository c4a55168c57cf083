// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package filepos_test

import (
	"testing"

	"carvel.dev/minitpl/pkg/filepos"
	"github.com/stretchr/testify/assert"
)

func TestPositionAsCompactString(t *testing.T) {
	assert.Equal(t, "3", filepos.NewPosition(3).AsCompactString())
	assert.Equal(t, "tpl.txt:3", filepos.NewPositionInFile(3, "tpl.txt").AsCompactString())
	assert.Equal(t, "tpl.txt:3:7", filepos.NewPositionInFile(3, "tpl.txt").WithColumn(7).AsCompactString())
	assert.Equal(t, "?", filepos.NewUnknownPosition().AsCompactString())
	assert.Equal(t, "line tpl.txt:1", filepos.NewPositionInFile(1, "tpl.txt").AsString())
}

func TestPositionWithColumnDoesNotModifyOriginal(t *testing.T) {
	pos := filepos.NewPositionInFile(2, "tpl")
	withCol := pos.WithColumn(4)

	assert.Equal(t, 0, pos.Column())
	assert.Equal(t, 4, withCol.Column())
	assert.Equal(t, 2, withCol.LineNum())
}

func TestPositionAs4DigitString(t *testing.T) {
	assert.Equal(t, "  12", filepos.NewPosition(12).As4DigitString())
	assert.Equal(t, "????", filepos.NewUnknownPosition().As4DigitString())
}

func TestNewPositionPanicsOnZeroLine(t *testing.T) {
	assert.Panics(t, func() { filepos.NewPosition(0) })
}
