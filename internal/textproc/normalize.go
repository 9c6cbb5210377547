// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package textproc normalizes free text into tokens and scores texts
// against each other with bag-of-words cosine similarity. All functions
// are pure and deterministic; the package holds no state.
package textproc

import (
	"strings"
	"unicode"
)

// stopwords is the fixed set of common English function words dropped
// during tokenization.
var stopwords = map[string]bool{
	"the": true, "and": true, "a": true, "an": true, "in": true, "on": true,
	"for": true, "of": true, "to": true, "is": true, "are": true, "was": true,
	"were": true, "be": true, "been": true, "being": true, "with": true,
	"by": true, "as": true, "at": true, "that": true, "this": true,
	"these": true, "those": true, "it": true, "its": true, "from": true,
	"or": true, "we": true, "our": true, "you": true, "your": true,
	"their": true, "they": true, "he": true, "she": true, "his": true,
	"her": true, "i": true, "me": true, "my": true, "mine": true,
	"but": true, "not": true, "no": true, "yes": true, "can": true,
	"will": true, "would": true, "could": true, "should": true, "may": true,
	"might": true, "into": true, "about": true, "over": true, "under": true,
	"between": true, "among": true, "than": true, "such": true, "more": true,
	"most": true, "least": true, "also": true, "using": true, "use": true,
	"used": true, "via": true, "per": true, "each": true, "both": true,
	"if": true, "then": true, "else": true,
}

// Sentences splits text into sentences on sentence-ending punctuation
// ('.', '!', '?') followed by whitespace. Fragments are trimmed and
// empty ones dropped.
func Sentences(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var sentences []string
	runes := []rune(text)
	start := 0
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if (r == '.' || r == '!' || r == '?') && i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
			if s := strings.TrimSpace(string(runes[start : i+1])); s != "" {
				sentences = append(sentences, s)
			}
			start = i + 1
		}
	}
	if s := strings.TrimSpace(string(runes[start:])); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

// Tokens lowercases text, collapses every run of non-alphanumeric
// characters into a single separator, and returns the remaining tokens
// that are not stopwords and are longer than one character. Order is
// preserved.
func Tokens(text string) []string {
	if text == "" {
		return nil
	}

	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) > 1 && !stopwords[f] {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// IsStopword reports whether the lowercase word is in the stopword set.
func IsStopword(word string) bool {
	return stopwords[word]
}
