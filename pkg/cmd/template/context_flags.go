// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"fmt"
	"os"
	"strings"

	"carvel.dev/minitpl/pkg/files"
	"carvel.dev/minitpl/pkg/orderedmap"
	"carvel.dev/minitpl/pkg/values"
)

// ContextFlags collect values made available to the template.
// Precedence (lowest to highest): files, env vars, key-values.
type ContextFlags struct {
	Files []string

	EnvFromStrings []string
	EnvFromYAML    []string

	KVsFromStrings []string
	KVsFromYAML    []string
	KVsFromFiles   []string

	Inspect bool
}

func (s *ContextFlags) Set(flags CmdFlags) {
	flags.StringArrayVar(&s.Files, "context-file", nil, "Load context values from YAML, JSON or TOML file (ie local path, HTTP URL, -) (can be specified multiple times)")

	flags.StringArrayVar(&s.EnvFromStrings, "context-env", nil, "Extract context values (as strings) from prefixed env vars (format: PREFIX for PREFIX_all__key1=str) (can be specified multiple times)")
	flags.StringArrayVar(&s.EnvFromYAML, "context-env-yaml", nil, "Extract context values (parsed as YAML) from prefixed env vars (format: PREFIX for PREFIX_all__key1=true) (can be specified multiple times)")

	flags.StringArrayVarP(&s.KVsFromStrings, "context-value", "v", nil, "Set specific context value to given value, as string (format: all.key1.subkey=123) (can be specified multiple times)")
	flags.StringArrayVar(&s.KVsFromYAML, "context-yaml", nil, "Set specific context value to given value, parsed as YAML (format: all.key1.subkey=true) (can be specified multiple times)")
	flags.StringArrayVar(&s.KVsFromFiles, "context-value-file", nil, "Set specific context value to given file contents, as string (format: all.key1.subkey=/file/path) (can be specified multiple times)")

	flags.BoolVar(&s.Inspect, "context-inspect", false, "Print merged context values instead of rendering")
}

type contextFlagsSource struct {
	Values        []string
	TransformFunc func(string) (interface{}, error)
}

func (s *ContextFlags) Values() (*orderedmap.Map, error) {
	fileVals, err := s.files()
	if err != nil {
		return nil, err
	}

	plainValFunc := func(rawVal string) (interface{}, error) { return rawVal, nil }

	yamlValFunc := func(rawVal string) (interface{}, error) {
		val, err := values.ParseYAMLValue([]byte(rawVal))
		if err != nil {
			return nil, fmt.Errorf("Deserializing YAML value: %s", err)
		}
		return val, nil
	}

	var result []*orderedmap.Map

	for _, src := range []contextFlagsSource{{s.EnvFromStrings, plainValFunc}, {s.EnvFromYAML, yamlValFunc}} {
		for _, envPrefix := range src.Values {
			vals, err := s.env(envPrefix, src.TransformFunc)
			if err != nil {
				return nil, fmt.Errorf("Extracting context values from env under prefix '%s': %s", envPrefix, err)
			}
			result = append(result, vals)
		}
	}

	// KVs and files take precedence over environment variables
	for _, src := range []contextFlagsSource{{s.KVsFromStrings, plainValFunc}, {s.KVsFromYAML, yamlValFunc}} {
		for _, kv := range src.Values {
			vals, err := s.kv(kv, src.TransformFunc)
			if err != nil {
				return nil, fmt.Errorf("Extracting context value from KV: %s", err)
			}
			result = append(result, vals)
		}
	}

	for _, file := range s.KVsFromFiles {
		vals, err := s.file(file)
		if err != nil {
			return nil, fmt.Errorf("Extracting context value from file: %s", err)
		}
		result = append(result, vals)
	}

	return values.Nest(fileVals, result...)
}

func (s *ContextFlags) files() (*orderedmap.Map, error) {
	result := orderedmap.NewMap()

	for _, path := range s.Files {
		file, err := files.NewFileFromSource(files.NewSource(path))
		if err != nil {
			return nil, err
		}

		vals, err := values.FromFile(file)
		if err != nil {
			return nil, fmt.Errorf("Extracting context values from file: %s", err)
		}

		result.Merge(vals)
	}

	return result, nil
}

func (s *ContextFlags) env(prefix string, valueFunc func(string) (interface{}, error)) (*orderedmap.Map, error) {
	result := orderedmap.NewMap()

	for _, envVar := range os.Environ() {
		pieces := strings.SplitN(envVar, "=", 2)
		if len(pieces) != 2 {
			return nil, fmt.Errorf("Expected env variable to be key-value pair (format: key=value)")
		}

		if !strings.HasPrefix(pieces[0], prefix+"_") {
			continue
		}

		val, err := valueFunc(pieces[1])
		if err != nil {
			return nil, fmt.Errorf("Extracting context value from env variable '%s': %s", pieces[0], err)
		}

		// '__' gets translated into a '.' since periods may not be liked by shells
		result.Set(strings.Replace(strings.TrimPrefix(pieces[0], prefix+"_"), "__", ".", -1), val)
	}

	return result, nil
}

func (s *ContextFlags) kv(kv string, valueFunc func(string) (interface{}, error)) (*orderedmap.Map, error) {
	result := orderedmap.NewMap()

	pieces := strings.SplitN(kv, "=", 2)
	if len(pieces) != 2 {
		return nil, fmt.Errorf("Expected format key=value")
	}

	val, err := valueFunc(pieces[1])
	if err != nil {
		return nil, fmt.Errorf("Deserializing value for key '%s': %s", pieces[0], err)
	}

	result.Set(pieces[0], val)

	return result, nil
}

func (s *ContextFlags) file(kv string) (*orderedmap.Map, error) {
	result := orderedmap.NewMap()

	pieces := strings.SplitN(kv, "=", 2)
	if len(pieces) != 2 {
		return nil, fmt.Errorf("Expected format key=/file/path")
	}

	contents, err := files.NewSource(pieces[1]).Bytes()
	if err != nil {
		return nil, err
	}

	result.Set(pieces[0], string(contents))

	return result, nil
}
