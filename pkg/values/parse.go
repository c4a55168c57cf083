// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package values

import (
	"fmt"

	"carvel.dev/minitpl/pkg/files"
	"carvel.dev/minitpl/pkg/orderedmap"
	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// FromFile decodes file based on its type.
func FromFile(file *files.File) (*orderedmap.Map, error) {
	data, err := file.Bytes()
	if err != nil {
		return nil, err
	}

	var result *orderedmap.Map

	switch file.Type() {
	case files.TypeYAML, files.TypeJSON:
		result, err = ParseYAML(data)
	case files.TypeTOML:
		result, err = ParseTOML(data)
	default:
		return nil, fmt.Errorf("Unknown format of %s (hint: use .yml, .yaml, .json or .toml extension)", file.Description())
	}
	if err != nil {
		return nil, fmt.Errorf("Unmarshaling %s: %s", file.Description(), err)
	}

	return result, nil
}

// ParseYAML decodes a YAML (or JSON) document whose top-level value is a map.
// An empty document results in an empty map.
func ParseYAML(data []byte) (*orderedmap.Map, error) {
	val, err := ParseYAMLValue(data)
	if err != nil {
		return nil, err
	}
	return asMap(val)
}

// ParseYAMLValue decodes any YAML value (e.g. given on the command line).
func ParseYAMLValue(data []byte) (interface{}, error) {
	var node yaml.Node

	err := yaml.Unmarshal(data, &node)
	if err != nil {
		return nil, err
	}

	return fromNode(&node)
}

func ParseTOML(data []byte) (*orderedmap.Map, error) {
	var val map[string]interface{}

	err := toml.Unmarshal(data, &val)
	if err != nil {
		return nil, err
	}

	return asMap(orderedmap.Conversion{Object: val}.FromUnorderedMaps())
}

func asMap(val interface{}) (*orderedmap.Map, error) {
	switch typedVal := val.(type) {
	case nil:
		return orderedmap.NewMap(), nil
	case *orderedmap.Map:
		return typedVal, nil
	default:
		return nil, fmt.Errorf("Expected top-level value to be a map, but was %T", val)
	}
}

func fromNode(node *yaml.Node) (interface{}, error) {
	switch node.Kind {
	case 0:
		// empty input
		return nil, nil

	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return fromNode(node.Content[0])

	case yaml.MappingNode:
		result := orderedmap.NewMap()
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, err := fromNode(node.Content[i])
			if err != nil {
				return nil, err
			}
			val, err := fromNode(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			result.Set(key, val)
		}
		return result, nil

	case yaml.SequenceNode:
		result := []interface{}{}
		for _, item := range node.Content {
			val, err := fromNode(item)
			if err != nil {
				return nil, err
			}
			result = append(result, val)
		}
		return result, nil

	case yaml.AliasNode:
		return fromNode(node.Alias)

	case yaml.ScalarNode:
		var val interface{}
		err := node.Decode(&val)
		if err != nil {
			return nil, fmt.Errorf("line %d: %s", node.Line, err)
		}
		return val, nil

	default:
		return nil, fmt.Errorf("line %d: unknown YAML node kind %d", node.Line, node.Kind)
	}
}
