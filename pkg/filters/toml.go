// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/k14s/starlark-go/starlark"
)

type tomlModule struct{}

// Encode renders a dict as a TOML document without the trailing newline.
func (b tomlModule) Encode(thread *starlark.Thread, f *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	val, err := goValueArg(args, kwargs)
	if err != nil {
		return starlark.None, err
	}

	if _, ok := val.(map[string]interface{}); !ok {
		return starlark.None, fmt.Errorf("expected dict, but was %T", val)
	}

	var buffer bytes.Buffer

	err = toml.NewEncoder(&buffer).Encode(val)
	if err != nil {
		return starlark.None, err
	}

	return starlark.String(strings.TrimSuffix(buffer.String(), "\n")), nil
}
