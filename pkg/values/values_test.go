// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package values_test

import (
	"testing"

	"carvel.dev/minitpl/pkg/files"
	"carvel.dev/minitpl/pkg/orderedmap"
	"carvel.dev/minitpl/pkg/values"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseYAMLKeepsOrder(t *testing.T) {
	result, err := values.ParseYAML([]byte(`
zeta: 1
alpha:
  nested: true
  list: [a, 2]
beta: &anchor str
gamma: *anchor
`))
	require.NoError(t, err)

	assert.Equal(t, []interface{}{"zeta", "alpha", "beta", "gamma"}, result.Keys())

	alpha, found := result.Get("alpha")
	require.True(t, found)
	assert.Equal(t, []interface{}{"nested", "list"}, alpha.(*orderedmap.Map).Keys())

	expected := map[string]interface{}{
		"zeta":  1,
		"alpha": map[string]interface{}{"nested": true, "list": []interface{}{"a", 2}},
		"beta":  "str",
		"gamma": "str",
	}

	if diff := cmp.Diff(expected, orderedmap.Conversion{Object: result}.AsUnorderedStringMaps()); diff != "" {
		t.Fatalf("values mismatch (-expected +actual):\n%s", diff)
	}
}

func TestParseJSONAsYAML(t *testing.T) {
	result, err := values.FromFile(files.MustNewFileFromSource(
		files.NewBytesSource("vals.json", []byte(`{"b": [1, {"c": null}], "a": "x"}`))))
	require.NoError(t, err)

	assert.Equal(t, []interface{}{"b", "a"}, result.Keys())

	expected := map[string]interface{}{
		"b": []interface{}{1, map[string]interface{}{"c": nil}},
		"a": "x",
	}

	if diff := cmp.Diff(expected, orderedmap.Conversion{Object: result}.AsUnorderedStringMaps()); diff != "" {
		t.Fatalf("values mismatch (-expected +actual):\n%s", diff)
	}
}

func TestParseTOML(t *testing.T) {
	result, err := values.FromFile(files.MustNewFileFromSource(
		files.NewBytesSource("vals.toml", []byte("name = \"svc\"\n[db]\nport = 5432\nhost = \"local\"\n"))))
	require.NoError(t, err)

	assert.Equal(t, []interface{}{"db", "name"}, result.Keys())

	db, found := result.Get("db")
	require.True(t, found)
	assert.Equal(t, []interface{}{"host", "port"}, db.(*orderedmap.Map).Keys())

	port, _ := db.(*orderedmap.Map).Get("port")
	assert.Equal(t, int64(5432), port)
}

func TestParseEmptyAndInvalid(t *testing.T) {
	result, err := values.ParseYAML([]byte(""))
	require.NoError(t, err)
	assert.Equal(t, 0, result.Len())

	_, err = values.ParseYAML([]byte("- a\n- b"))
	require.EqualError(t, err, "Expected top-level value to be a map, but was []interface {}")

	_, err = values.ParseYAML([]byte("a: [b"))
	require.Error(t, err)

	_, err = values.FromFile(files.MustNewFileFromSource(files.NewBytesSource("vals.txt", nil)))
	require.EqualError(t, err, "Unknown format of vals.txt (hint: use .yml, .yaml, .json or .toml extension)")
}

func TestParseYAMLValue(t *testing.T) {
	val, err := values.ParseYAMLValue([]byte("true"))
	require.NoError(t, err)
	assert.Equal(t, true, val)

	val, err = values.ParseYAMLValue([]byte("[1, two]"))
	require.NoError(t, err)
	assert.Equal(t, []interface{}{1, "two"}, val)
}

func TestNest(t *testing.T) {
	base := orderedmap.NewMap()
	db := orderedmap.NewMap()
	db.Set("host", "file-host")
	db.Set("port", 1)
	base.Set("db", db)

	flags := orderedmap.NewMap()
	flags.Set("db.host", "flag-host")
	flags.Set("app.name.first", "x")

	result, err := values.Nest(base, flags)
	require.NoError(t, err)

	expected := map[string]interface{}{
		"db":  map[string]interface{}{"host": "flag-host", "port": 1},
		"app": map[string]interface{}{"name": map[string]interface{}{"first": "x"}},
	}

	if diff := cmp.Diff(expected, orderedmap.Conversion{Object: result}.AsUnorderedStringMaps()); diff != "" {
		t.Fatalf("values mismatch (-expected +actual):\n%s", diff)
	}

	// base is not modified
	host, _ := db.Get("host")
	assert.Equal(t, "file-host", host)
}

func TestNestConflicts(t *testing.T) {
	first := orderedmap.NewMap()
	first.Set("a", "scalar")

	second := orderedmap.NewMap()
	second.Set("a.b", "x")

	_, err := values.Nest(nil, first, second)
	require.EqualError(t, err, "Expected key 'a.b' to not conflict with other values at piece 'a'")
}
