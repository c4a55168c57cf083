// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package orderedmap_test

import (
	"testing"

	"carvel.dev/minitpl/pkg/orderedmap"
	"github.com/stretchr/testify/assert"
)

func TestMapSetKeepsFirstInsertionOrder(t *testing.T) {
	m := orderedmap.NewMap()
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("a", 3)

	assert.Equal(t, []interface{}{"a", "b"}, m.Keys())

	val, found := m.Get("a")
	assert.True(t, found)
	assert.Equal(t, 3, val)
}

func TestMapMergeLaterWins(t *testing.T) {
	defaults := orderedmap.NewMap()
	defaults.Set("name", "default")
	defaults.Set("greeting", "hello")

	overrides := orderedmap.NewMap()
	overrides.Set("name", "override")
	overrides.Set("extra", true)

	merged := defaults.Copy()
	merged.Merge(overrides)

	assert.Equal(t, []interface{}{"name", "greeting", "extra"}, merged.Keys())

	val, _ := merged.Get("name")
	assert.Equal(t, "override", val)

	val, _ = defaults.Get("name")
	assert.Equal(t, "default", val, "expected Copy to detach merged map from defaults")
}

func TestMapDelete(t *testing.T) {
	m := orderedmap.NewMap()
	m.Set("a", 1)

	assert.True(t, m.Delete("a"))
	assert.False(t, m.Delete("a"))
	assert.Equal(t, 0, m.Len())
}

func TestNilMapLenAndMerge(t *testing.T) {
	var m *orderedmap.Map
	assert.Equal(t, 0, m.Len())

	target := orderedmap.NewMap()
	target.Merge(nil)
	assert.Equal(t, 0, target.Len())
}
