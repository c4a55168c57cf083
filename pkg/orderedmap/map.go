// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package orderedmap

import (
	"encoding/json"
	"reflect"
)

type Map struct {
	items []MapItem
}

type MapItem struct {
	Key   interface{}
	Value interface{}
}

func NewMap() *Map {
	return &Map{}
}

func NewMapWithItems(items []MapItem) *Map {
	return &Map{items}
}

// Set replaces value of an existing key in place, or appends a new key.
func (m *Map) Set(key, value interface{}) {
	if i := m.index(key); i >= 0 {
		m.items[i].Value = value
		return
	}
	m.items = append(m.items, MapItem{key, value})
}

func (m *Map) Get(key interface{}) (interface{}, bool) {
	if i := m.index(key); i >= 0 {
		return m.items[i].Value, true
	}
	return nil, false
}

func (m *Map) Delete(key interface{}) bool {
	if i := m.index(key); i >= 0 {
		m.items = append(m.items[:i], m.items[i+1:]...)
		return true
	}
	return false
}

// Merge sets every item of other onto m, in other's order; on key collision
// the value from other wins.
func (m *Map) Merge(other *Map) {
	if other == nil {
		return
	}
	for _, item := range other.items {
		m.Set(item.Key, item.Value)
	}
}

// Copy is a shallow copy: values are shared, item order is not.
func (m *Map) Copy() *Map {
	if m == nil {
		return NewMap()
	}
	items := make([]MapItem, len(m.items))
	copy(items, m.items)
	return &Map{items}
}

func (m *Map) index(key interface{}) int {
	for i, item := range m.items {
		if reflect.DeepEqual(item.Key, key) {
			return i
		}
	}
	return -1
}

func (m *Map) Keys() (keys []interface{}) {
	m.Iterate(func(k, _ interface{}) {
		keys = append(keys, k)
	})
	return
}

func (m *Map) Iterate(iterFunc func(k, v interface{})) {
	for _, item := range m.items {
		iterFunc(item.Key, item.Value)
	}
}

func (m *Map) IterateErr(iterFunc func(k, v interface{}) error) error {
	for _, item := range m.items {
		err := iterFunc(item.Key, item.Value)
		if err != nil {
			return err
		}
	}
	return nil
}

func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.items)
}

// Below methods disallow marshaling of Map directly;
// use Conversion to turn it into plain maps first.
var _ []json.Marshaler = []json.Marshaler{&Map{}}

func (*Map) MarshalYAML() (interface{}, error) { panic("Unexpected marshaling of *orderedmap.Map") }
func (*Map) MarshalJSON() ([]byte, error)      { panic("Unexpected marshaling of *orderedmap.Map") }
