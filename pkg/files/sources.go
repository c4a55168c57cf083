// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package files

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

type Source interface {
	Description() string
	RelativePath() (string, error)
	Bytes() ([]byte, error)
}

var _ []Source = []Source{BytesSource{}, StdinSource{}, LocalSource{}, HTTPSource{}}

// NewSource picks a source based on path: "-" is standard input,
// http(s) URLs are fetched and anything else is a local file.
func NewSource(path string) Source {
	switch {
	case path == "-":
		return NewStdinSource()
	case strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://"):
		return NewHTTPSource(path)
	default:
		return NewLocalSource(path)
	}
}

type BytesSource struct {
	path string
	data []byte
}

func NewBytesSource(path string, data []byte) BytesSource { return BytesSource{path, data} }

func (s BytesSource) Description() string           { return s.path }
func (s BytesSource) RelativePath() (string, error) { return s.path, nil }
func (s BytesSource) Bytes() ([]byte, error)        { return s.data, nil }

type StdinSource struct {
	bytes []byte
	err   error
}

var hasStdinBeenRead bool

func NewStdinSource() StdinSource {
	if hasStdinBeenRead {
		return StdinSource{nil, fmt.Errorf("Standard input has already been read, has the '-' argument been used in more than one flag?")}
	}
	hasStdinBeenRead = true

	bs, err := io.ReadAll(os.Stdin)
	return StdinSource{bs, err}
}

func (s StdinSource) Description() string           { return "stdin" }
func (s StdinSource) RelativePath() (string, error) { return "stdin", nil }
func (s StdinSource) Bytes() ([]byte, error)        { return s.bytes, s.err }

type LocalSource struct {
	path string
}

func NewLocalSource(path string) LocalSource { return LocalSource{path} }

func (s LocalSource) Description() string           { return fmt.Sprintf("file '%s'", s.path) }
func (s LocalSource) RelativePath() (string, error) { return filepath.Base(s.path), nil }

func (s LocalSource) Bytes() ([]byte, error) {
	bs, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("Reading file '%s': %s", s.path, err)
	}
	return bs, nil
}

type HTTPSource struct {
	url    string
	Client *http.Client
}

func NewHTTPSource(url string) HTTPSource { return HTTPSource{url, &http.Client{}} }

func (s HTTPSource) Description() string {
	return fmt.Sprintf("HTTP URL '%s'", s.url)
}

func (s HTTPSource) RelativePath() (string, error) { return path.Base(s.url), nil }

func (s HTTPSource) Bytes() ([]byte, error) {
	resp, err := s.Client.Get(s.url)
	if err != nil {
		return nil, fmt.Errorf("Requesting URL '%s': %s", s.url, err)
	}

	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("Requesting URL '%s': %s", s.url, resp.Status)
	}

	result, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("Reading URL '%s': %s", s.url, err)
	}

	return result, nil
}
