// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package spell

import (
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Nearest returns the candidate closest to word by edit distance, as long
// as it is within maxDistance edits. Ties are broken by candidate order.
func Nearest(word string, candidates []string, maxDistance int) (string, bool) {
	best := ""
	bestDistance := maxDistance + 1

	for _, candidate := range candidates {
		if candidate == word {
			continue
		}
		if d := fuzzy.LevenshteinDistance(word, candidate); d < bestDistance {
			best = candidate
			bestDistance = d
		}
	}
	return best, bestDistance <= maxDistance
}
