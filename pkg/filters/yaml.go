// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"bytes"
	"strings"

	"github.com/k14s/starlark-go/starlark"
	"gopkg.in/yaml.v3"
)

type yamlModule struct{}

// Encode renders value as a YAML document without the trailing newline.
func (b yamlModule) Encode(thread *starlark.Thread, f *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	val, err := goValueArg(args, kwargs)
	if err != nil {
		return starlark.None, err
	}

	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	err = enc.Encode(val)
	if err != nil {
		return starlark.None, err
	}

	err = enc.Close()
	if err != nil {
		return starlark.None, err
	}

	return starlark.String(strings.TrimSuffix(buf.String(), "\n")), nil
}
