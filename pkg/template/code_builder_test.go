// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package template_test

import (
	"testing"

	"carvel.dev/minitpl/pkg/filepos"
	"carvel.dev/minitpl/pkg/template"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeBuilderIndents(t *testing.T) {
	b := template.NewCodeBuilder()
	b.AddLine("def f():", nil)
	b.Indent()
	b.AddLine("if x:", nil)
	b.Indent()
	b.AddLine("pass", nil)
	b.Dedent()
	b.AddLine("return 1", nil)
	b.Dedent()

	lines, err := b.Lines()
	require.NoError(t, err)

	assert.Equal(t, "def f():\n    if x:\n        pass\n    return 1", template.LinesAsString(lines))
}

func TestCodeBuilderSectionsAreFilledLater(t *testing.T) {
	b := template.NewCodeBuilder()
	b.AddLine("def f():", nil)
	b.Indent()
	section := b.AddSection()
	b.AddLine("return a", nil)
	b.Dedent()

	section.AddLine("a = 1", nil)
	section.AddLine("b = 2", nil)

	lines, err := b.Lines()
	require.NoError(t, err)

	assert.Equal(t, "def f():\n    a = 1\n    b = 2\n    return a", template.LinesAsString(lines))
	assert.Equal(t, 3, b.Len())
}

func TestCodeBuilderKeepsSourceLines(t *testing.T) {
	src := template.NewSourceLine(filepos.NewPositionInFile(3, "tpl"), "{{ a }}")

	b := template.NewCodeBuilder()
	b.AddLine("x", src)
	b.AddLine("y", nil)

	lines, err := b.Lines()
	require.NoError(t, err)
	require.Len(t, lines, 2)

	assert.Same(t, src, lines[0].SourceLine)
	assert.Nil(t, lines[1].SourceLine)
	assert.Equal(t, "tpl:3 | {{ a }}", lines[0].SourceLine.String())
}

func TestCodeBuilderRequiresBalancedIndent(t *testing.T) {
	b := template.NewCodeBuilder()
	b.Indent()
	b.AddLine("x", nil)

	_, err := b.Lines()
	require.EqualError(t, err, "Expected indent level to be 0, but was 4")
}

func TestCodeBuilderPanics(t *testing.T) {
	t.Run("dedent below zero", func(t *testing.T) {
		assert.Panics(t, func() { template.NewCodeBuilder().Dedent() })
	})

	t.Run("dedent below section start", func(t *testing.T) {
		b := template.NewCodeBuilder()
		b.Indent()
		section := b.AddSection()
		assert.Panics(t, func() { section.Dedent() })
	})

	t.Run("multi-line code", func(t *testing.T) {
		assert.Panics(t, func() { template.NewCodeBuilder().AddLine("a\nb", nil) })
	})
}
