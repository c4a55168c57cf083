// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package files

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
)

type OutputFile struct {
	path string
	data []byte
}

func NewOutputFile(path string, data []byte) OutputFile {
	return OutputFile{path, data}
}

func (f OutputFile) Path() string  { return f.path }
func (f OutputFile) Bytes() []byte { return f.data }

// Create writes file contents atomically (readers either see previous
// contents or new contents), creating parent directories as needed.
func (f OutputFile) Create() error {
	err := os.MkdirAll(filepath.Dir(f.path), 0700)
	if err != nil {
		return err
	}
	return atomic.WriteFile(f.path, bytes.NewReader(f.data))
}
