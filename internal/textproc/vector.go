// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textproc

import "math"

// TermVector is a bag-of-words term-frequency mapping. Weights are raw
// term counts, not normalized by document length. A TermVector is scoped
// to a single similarity computation and is never persisted.
type TermVector map[string]float64

// Vector builds a TermVector from text via Tokens.
func Vector(text string) TermVector {
	vec := make(TermVector)
	for _, tok := range Tokens(text) {
		vec[tok]++
	}
	return vec
}

// Cosine computes the cosine similarity between two term vectors. The
// dot product runs over the union of both key sets; a missing key
// contributes zero. Each magnitude is clamped to a minimum of 1.0, which
// only prevents division by zero: an empty vector's dot product with
// anything is zero, so its similarity is exactly 0, never NaN.
func Cosine(q, d TermVector) float64 {
	var dot float64
	for term, qw := range q {
		if dw, ok := d[term]; ok {
			dot += qw * dw
		}
	}

	return dot / (magnitude(q) * magnitude(d))
}

// magnitude returns the Euclidean norm of v, clamped to minimum 1.0.
func magnitude(v TermVector) float64 {
	var sum float64
	for _, w := range v {
		sum += w * w
	}
	m := math.Sqrt(sum)
	if m < 1.0 {
		return 1.0
	}
	return m
}
