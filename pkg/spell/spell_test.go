// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package spell_test

import (
	"testing"

	"carvel.dev/minitpl/pkg/spell"
	"github.com/stretchr/testify/assert"
)

func TestNearest(t *testing.T) {
	keywords := []string{"if", "for", "endif", "endfor"}

	cases := []struct {
		word     string
		expected string
		found    bool
	}{
		{"fro", "for", true},
		{"fi", "if", true},
		{"endfr", "endfor", true},
		{"edif", "endif", true},
		{"while", "", false},
		{"if", "", false},
	}

	for _, tc := range cases {
		nearest, found := spell.Nearest(tc.word, keywords, 2)
		assert.Equal(t, tc.found, found, "word %q", tc.word)
		if tc.found {
			assert.Equal(t, tc.expected, nearest, "word %q", tc.word)
		}
	}
}

func TestNearestBreaksTiesByCandidateOrder(t *testing.T) {
	nearest, found := spell.Nearest("fi", []string{"for", "if"}, 2)
	assert.True(t, found)
	assert.Equal(t, "for", nearest)

	nearest, found = spell.Nearest("fi", []string{"if", "for"}, 2)
	assert.True(t, found)
	assert.Equal(t, "if", nearest)
}

func TestNearestRespectsMaxDistance(t *testing.T) {
	_, found := spell.Nearest("endfr", []string{"endfor"}, 0)
	assert.False(t, found)

	nearest, found := spell.Nearest("endfr", []string{"endfor"}, 1)
	assert.True(t, found)
	assert.Equal(t, "endfor", nearest)
}
