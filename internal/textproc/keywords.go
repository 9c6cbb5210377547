// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textproc

import "sort"

// DefaultKeywordCount is the number of keywords returned when the caller
// passes k <= 0.
const DefaultKeywordCount = 5

// TopKeywords returns the k most frequent tokens in text, most frequent
// first. Ties are broken by first appearance in the text (stable sort
// over insertion order), so repeated calls on the same text return the
// same slice. Fewer than k tokens are returned when the text has fewer
// distinct tokens.
func TopKeywords(text string, k int) []string {
	if k <= 0 {
		k = DefaultKeywordCount
	}

	freq := make(map[string]int)
	var order []string
	for _, tok := range Tokens(text) {
		if freq[tok] == 0 {
			order = append(order, tok)
		}
		freq[tok]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return freq[order[i]] > freq[order[j]]
	})

	if len(order) > k {
		order = order[:k]
	}
	return order
}
