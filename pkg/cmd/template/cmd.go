// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"time"

	"carvel.dev/minitpl/pkg/cmd/ui"
	"carvel.dev/minitpl/pkg/files"
	"carvel.dev/minitpl/pkg/filters"
	"carvel.dev/minitpl/pkg/orderedmap"
	"carvel.dev/minitpl/pkg/template"
	"gopkg.in/yaml.v3"
)

type Options struct {
	Debug          bool
	BuiltinFilters bool

	TemplateFile string
	OutputFile   string

	ContextFlags ContextFlags
}

type Input struct {
	Template *files.File
}

type Output struct {
	Result string
	Err    error
}

func NewOptions() *Options {
	return &Options{BuiltinFilters: true}
}

// BindFlags registers command-line flags with the given flag set
func (o *Options) BindFlags(flagSet CmdFlags) {
	flagSet.StringVarP(&o.TemplateFile, "file", "f", "", "Template file (ie local path, HTTP URL, -)")
	flagSet.StringVar(&o.OutputFile, "output-file", "", "Write result to file instead of stdout (file is replaced atomically)")
	flagSet.BoolVar(&o.Debug, "debug", false, "Enable debug output")
	flagSet.BoolVar(&o.BuiltinFilters, "builtin-filters", true, "Make built-in filters (e.g. upper, json, yaml) available to templates")
	o.ContextFlags.Set(flagSet)
}

func (o *Options) Run() error {
	ui := ui.NewTTY(o.Debug)
	t1 := time.Now()

	defer func() {
		ui.Debugf("total: %s\n", time.Now().Sub(t1))
	}()

	in, err := o.Input()
	if err != nil {
		return err
	}

	out := o.RunWithFiles(in, ui)
	if out.Err != nil {
		return out.Err
	}

	if len(o.OutputFile) > 0 {
		ui.Debugf("writing result to %s\n", o.OutputFile)
		return files.NewOutputFile(o.OutputFile, []byte(out.Result)).Create()
	}

	ui.Printf("%s", out.Result) // no newline

	return nil
}

func (o *Options) Input() (Input, error) {
	file, err := templateFile(o.TemplateFile)
	if err != nil {
		return Input{}, err
	}
	return Input{Template: file}, nil
}

func (o *Options) RunWithFiles(in Input, ui ui.UI) Output {
	contextVals, err := o.ContextFlags.Values()
	if err != nil {
		return Output{Err: err}
	}

	if o.ContextFlags.Inspect {
		result, err := inspectValues(contextVals)
		return Output{Result: result, Err: err}
	}

	tpl, err := compile(in, o.BuiltinFilters, ui)
	if err != nil {
		return Output{Err: err}
	}

	ctx := contextFromOrderedMap(contextVals)

	if missing := tpl.MissingVariables(ctx); len(missing) > 0 {
		return Output{Err: fmt.Errorf("Expected context values for: %s (hint: provide them via --context-value (-v), --context-yaml or --context-file)",
			strings.Join(missing, ", "))}
	}

	t1 := time.Now()

	result, err := tpl.Render(ctx)
	if err != nil {
		return Output{Err: err}
	}

	ui.Debugf("render: %s\n", time.Now().Sub(t1))

	return Output{Result: result}
}

func templateFile(path string) (*files.File, error) {
	if len(path) == 0 {
		return nil, fmt.Errorf("Expected template file to be specified via --file (-f)")
	}
	return files.NewFileFromSource(files.NewSource(path))
}

func compile(in Input, builtinFilters bool, ui ui.UI) (*template.Template, error) {
	data, err := in.Template.Bytes()
	if err != nil {
		return nil, err
	}

	var defaults []template.Context
	if builtinFilters {
		defaults = append(defaults, filters.Library())
	}

	t1 := time.Now()

	tpl, err := template.New(in.Template.RelativePath(), string(data), defaults...)
	if err != nil {
		return nil, fmt.Errorf("Compiling %s: %w", in.Template.Description(), err)
	}

	ui.Debugf("compile: %s\n", time.Now().Sub(t1))
	ui.Debugf("### template code\n%s\n", tpl.DebugCodeAsString())

	return tpl, nil
}

// contextFromOrderedMap keeps nested maps ordered; only top-level
// order (which does not matter for lookups) is lost.
func contextFromOrderedMap(vals *orderedmap.Map) template.Context {
	result := template.Context{}
	vals.Iterate(func(k, v interface{}) {
		result[fmt.Sprintf("%v", k)] = v
	})
	return result
}

func inspectValues(vals *orderedmap.Map) (string, error) {
	if vals.Len() == 0 {
		return "", nil
	}

	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	err := enc.Encode(orderedmap.Conversion{Object: vals}.AsUnorderedStringMaps())
	if err != nil {
		return "", fmt.Errorf("Marshaling context values: %s", err)
	}

	return buf.String(), enc.Close()
}

type VarsOptions struct {
	BuiltinFilters bool
	TemplateFile   string
}

func NewVarsOptions() *VarsOptions {
	return &VarsOptions{BuiltinFilters: true}
}

func (o *VarsOptions) BindFlags(flagSet CmdFlags) {
	flagSet.StringVarP(&o.TemplateFile, "file", "f", "", "Template file (ie local path, HTTP URL, -)")
	flagSet.BoolVar(&o.BuiltinFilters, "builtin-filters", true, "Do not list names provided by built-in filters")
}

func (o *VarsOptions) Run() error {
	file, err := templateFile(o.TemplateFile)
	if err != nil {
		return err
	}
	return o.RunWithFiles(Input{Template: file}, ui.NewTTY(false))
}

// RunWithFiles prints names the template expects from its context,
// followed by names bound by for loops.
func (o *VarsOptions) RunWithFiles(in Input, ui ui.UI) error {
	tpl, err := compile(in, o.BuiltinFilters, ui)
	if err != nil {
		return err
	}

	ui.Printf("Required:\n")
	for _, name := range tpl.MissingVariables() {
		ui.Printf("- %s\n", name)
	}

	loopVars := tpl.LoopVariables()
	sort.Strings(loopVars)

	ui.Printf("Loop:\n")
	for _, name := range loopVars {
		ui.Printf("- %s\n", name)
	}

	return nil
}
