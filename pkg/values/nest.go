// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package values

import (
	"fmt"
	"strings"

	"carvel.dev/minitpl/pkg/orderedmap"
)

// Nest applies values on top of a copy of base. Dotted keys (e.g. "db.host")
// address nested maps, which are created as needed.
func Nest(base *orderedmap.Map, multipleVals ...*orderedmap.Map) (*orderedmap.Map, error) {
	if base == nil {
		base = orderedmap.NewMap()
	}

	result := orderedmap.Conversion{Object: base}.FromUnorderedMaps().(*orderedmap.Map)

	for _, vals := range multipleVals {
		err := vals.IterateErr(func(key, val interface{}) error {
			strKey, ok := key.(string)
			if !ok {
				result.Set(key, val)
				return nil
			}

			keyPieces := strings.Split(strKey, ".")
			currMap := result
			for _, keyPiece := range keyPieces[:len(keyPieces)-1] {
				subMap, found := currMap.Get(keyPiece)
				if found {
					if typedSubMap, ok := subMap.(*orderedmap.Map); ok {
						currMap = typedSubMap
					} else {
						return fmt.Errorf("Expected key '%s' to not conflict with other values at piece '%s'", strKey, keyPiece)
					}
				} else {
					newCurrMap := orderedmap.NewMap()
					currMap.Set(keyPiece, newCurrMap)
					currMap = newCurrMap
				}
			}
			currMap.Set(keyPieces[len(keyPieces)-1], val)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}
