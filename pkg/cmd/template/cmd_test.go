// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package template_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	cmdtpl "carvel.dev/minitpl/pkg/cmd/template"
	"carvel.dev/minitpl/pkg/cmd/ui"
	"carvel.dev/minitpl/pkg/files"
	"carvel.dev/minitpl/pkg/template"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInput(tplStr string) cmdtpl.Input {
	return cmdtpl.Input{
		Template: files.MustNewFileFromSource(files.NewBytesSource("tpl.txt", []byte(tplStr))),
	}
}

func newUI(debug bool) (ui.UI, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return ui.NewCustomWriterTTY(debug, stdout, stderr), stdout, stderr
}

func TestRenderWithKVs(t *testing.T) {
	opts := cmdtpl.NewOptions()
	opts.ContextFlags.KVsFromStrings = []string{"name=world", "db.host=localhost"}
	opts.ContextFlags.KVsFromYAML = []string{"ports=[80, 443]"}

	tplUI, _, _ := newUI(false)

	out := opts.RunWithFiles(newInput("Hello {{ name|upper }} at {{ db.host }}:{% for p in ports %}{{ p }};{% endfor %}"), tplUI)
	require.NoError(t, out.Err)

	assert.Equal(t, "Hello WORLD at localhost:80;443;", out.Result)
}

func TestRenderWithoutBuiltinFilters(t *testing.T) {
	opts := cmdtpl.NewOptions()
	opts.BuiltinFilters = false
	opts.ContextFlags.KVsFromStrings = []string{"name=world"}

	tplUI, _, _ := newUI(false)

	out := opts.RunWithFiles(newInput("{{ name|upper }}"), tplUI)
	require.Error(t, out.Err)

	assert.Contains(t, out.Err.Error(), "Expected context values for: upper")
}

func TestRenderReportsMissingVariables(t *testing.T) {
	opts := cmdtpl.NewOptions()
	opts.ContextFlags.KVsFromStrings = []string{"b=1"}

	tplUI, _, _ := newUI(false)

	out := opts.RunWithFiles(newInput("{{ a }}{{ b }}{% for x in xs %}{{ x }}{{ c }}{% endfor %}"), tplUI)
	require.Error(t, out.Err)

	assert.Equal(t, "Expected context values for: a, xs, c (hint: provide them via --context-value (-v), --context-yaml or --context-file)", out.Err.Error())
}

func TestRenderReportsSyntaxErrors(t *testing.T) {
	opts := cmdtpl.NewOptions()

	tplUI, _, _ := newUI(false)

	out := opts.RunWithFiles(newInput("{% if a %}never closed"), tplUI)
	require.Error(t, out.Err)

	var syntaxErr *template.SyntaxError
	require.True(t, errors.As(out.Err, &syntaxErr))
	assert.Contains(t, out.Err.Error(), "Compiling tpl.txt: ")
}

func TestRenderReportsEvaluationErrors(t *testing.T) {
	opts := cmdtpl.NewOptions()
	opts.ContextFlags.KVsFromYAML = []string{"n=1"}

	tplUI, _, _ := newUI(false)

	out := opts.RunWithFiles(newInput("{{ n|upper }}"), tplUI)
	require.Error(t, out.Err)

	var renderErr *template.RenderError
	require.True(t, errors.As(out.Err, &renderErr))
	assert.Contains(t, out.Err.Error(), "upper: expected string, but was int")
}

func TestRenderDebugPrintsCode(t *testing.T) {
	opts := cmdtpl.NewOptions()
	opts.Debug = true
	opts.ContextFlags.KVsFromStrings = []string{"name=world"}

	tplUI, stdout, stderr := newUI(true)

	out := opts.RunWithFiles(newInput("Hi {{ name }}"), tplUI)
	require.NoError(t, out.Err)

	assert.Equal(t, "Hi world", out.Result)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "### template code")
	assert.Contains(t, stderr.String(), "def render(context, do_dots):")
}

func TestInspectContext(t *testing.T) {
	opts := cmdtpl.NewOptions()
	opts.ContextFlags.KVsFromStrings = []string{"db.host=localhost", "name=svc"}
	opts.ContextFlags.KVsFromYAML = []string{"db.port=5432"}
	opts.ContextFlags.Inspect = true

	tplUI, _, _ := newUI(false)

	// template is not compiled when inspecting
	out := opts.RunWithFiles(newInput("{% if %}"), tplUI)
	require.NoError(t, out.Err)

	expected := `db:
  host: localhost
  port: 5432
name: svc
`
	assert.Equal(t, expected, out.Result)
}

func TestRunWritesOutputFile(t *testing.T) {
	dir := t.TempDir()
	tplPath := filepath.Join(dir, "tpl.txt")
	outPath := filepath.Join(dir, "out", "result.txt")

	require.NoError(t, os.WriteFile(tplPath, []byte("{% for x in xs %}{{ x }}{% endfor %}"), 0600))

	opts := cmdtpl.NewOptions()
	opts.TemplateFile = tplPath
	opts.OutputFile = outPath
	opts.ContextFlags.KVsFromYAML = []string{"xs=[a, b]"}

	require.NoError(t, opts.Run())

	result, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "ab", string(result))
}

func TestRunRequiresTemplateFile(t *testing.T) {
	err := cmdtpl.NewOptions().Run()
	require.EqualError(t, err, "Expected template file to be specified via --file (-f)")
}

func TestVars(t *testing.T) {
	opts := cmdtpl.NewVarsOptions()

	tplUI, stdout, _ := newUI(false)

	err := opts.RunWithFiles(newInput("{{ b|upper }}{% for y in ys %}{% for x in y %}{{ x }}{% endfor %}{% endfor %}{{ a }}"), tplUI)
	require.NoError(t, err)

	expected := `Required:
- b
- ys
- a
Loop:
- x
- y
`
	assert.Equal(t, expected, stdout.String())
}
