// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import "strings"

// bioscienceTerms is the vocabulary used to decide whether an
// externally-sourced record belongs in a bioscience catalog at all. The
// gate is applied on the technical-report ingestion path only; curated
// portals are trusted as-is.
var bioscienceTerms = []string{
	"biology", "bioscience", "astrobiology", "life sciences", "microgravity",
	"space biology", "plant", "human", "microbe", "organism", "biomedical",
	"physiological", "biological", "biomedicine", "biotechnology", "genetics",
	"molecular biology", "cell biology", "radiation effects", "bone density",
	"immune system", "metabolism", "growth", "development", "adaptation",
}

// BioscienceRelevant reports whether the combined title and abstract
// mention at least one bioscience-indicative term.
func BioscienceRelevant(title, abstract string) bool {
	text := combined(title, abstract)
	for _, term := range bioscienceTerms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}
