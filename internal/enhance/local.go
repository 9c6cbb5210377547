// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package enhance

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/pdiddy/astrobio-engine/internal/catalog"
	"github.com/pdiddy/astrobio-engine/internal/textproc"
	"github.com/pdiddy/astrobio-engine/pkg/types"
)

const localBackendName = "local"

const (
	summarySentences = 3
	chatMatchLimit   = 3
)

// Local is the deterministic enhancement backend. It is always
// available and never returns an error, which makes it a safe fallback
// for every AI-backed operation.
type Local struct{}

// Name returns the backend identifier.
func (l *Local) Name() string { return localBackendName }

// Available always reports true.
func (l *Local) Available(context.Context) bool { return true }

// Summarize builds an extractive summary: the leading sentences of the
// abstract plus the most frequent terms.
func (l *Local) Summarize(_ context.Context, pub types.Publication) (string, error) {
	var b strings.Builder

	sentences := textproc.Sentences(pub.Abstract)
	if len(sentences) == 0 {
		fmt.Fprintf(&b, "%s (no abstract available).", pub.Title)
	} else {
		if len(sentences) > summarySentences {
			sentences = sentences[:summarySentences]
		}
		b.WriteString(strings.Join(sentences, " "))
	}

	terms := pub.Keywords
	if len(terms) == 0 {
		terms = textproc.TopKeywords(pub.Title+" "+pub.Abstract, textproc.DefaultKeywordCount)
	}
	if len(terms) > 0 {
		fmt.Fprintf(&b, "\n\nKey terms: %s.", strings.Join(terms, ", "))
	}
	return b.String(), nil
}

// Chat answers by ranking the supplied publications against the
// question with cosine similarity and citing the closest matches.
func (l *Local) Chat(_ context.Context, question string, pubs []types.Publication) (string, error) {
	questionVec := textproc.Vector(question)

	type match struct {
		pub   types.Publication
		score float64
	}
	var matches []match
	for _, pub := range pubs {
		score := textproc.Cosine(questionVec, textproc.Vector(pub.Title+" "+pub.Abstract))
		if score > 0 {
			matches = append(matches, match{pub: pub, score: score})
		}
	}
	if len(matches) == 0 {
		return "No publications in the catalog match that question. Try rephrasing with terms like microgravity, radiation, or a specific organism.", nil
	}

	sort.SliceStable(matches, func(i, j int) bool { return matches[i].score > matches[j].score })
	if len(matches) > chatMatchLimit {
		matches = matches[:chatMatchLimit]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d related publication(s):\n", len(matches))
	for _, m := range matches {
		fmt.Fprintf(&b, "- %s", m.pub.Title)
		if m.pub.Year != 0 {
			fmt.Fprintf(&b, " (%d)", m.pub.Year)
		}
		if first := firstSentence(m.pub.Abstract); first != "" {
			fmt.Fprintf(&b, ": %s", first)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

// AnalyzeGaps flags the research domains and organism types with the
// thinnest coverage relative to the rest of the catalog.
func (l *Local) AnalyzeGaps(_ context.Context, stats catalog.Stats) (string, error) {
	if stats.TotalPublications == 0 {
		return "The catalog is empty; ingest publications before running a gap analysis.", nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Catalog coverage across %d publications:\n", stats.TotalPublications)

	if under := underrepresented(stats.ByDomain); len(under) > 0 {
		fmt.Fprintf(&b, "- Thinly covered research domains: %s.\n", strings.Join(under, ", "))
	}
	if under := underrepresented(stats.ByOrganism); len(under) > 0 {
		fmt.Fprintf(&b, "- Thinly covered organism types: %s.\n", strings.Join(under, ", "))
	}

	if len(stats.ByYear) > 0 {
		latest := 0
		for year := range stats.ByYear {
			if year > latest {
				latest = year
			}
		}
		recent := 0
		for year, count := range stats.ByYear {
			if year > latest-5 {
				recent += count
			}
		}
		fmt.Fprintf(&b, "- %d of %d publications fall in the five most recent years (through %d).\n",
			recent, stats.TotalPublications, latest)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

// underrepresented returns the labels whose count is below half the
// mean bucket size, sorted smallest first.
func underrepresented(counts map[string]int) []string {
	if len(counts) < 2 {
		return nil
	}
	total := 0
	for _, c := range counts {
		total += c
	}
	threshold := float64(total) / float64(len(counts)) / 2

	type bucket struct {
		label string
		count int
	}
	var thin []bucket
	for label, count := range counts {
		if float64(count) < threshold {
			thin = append(thin, bucket{label, count})
		}
	}
	sort.Slice(thin, func(i, j int) bool {
		if thin[i].count != thin[j].count {
			return thin[i].count < thin[j].count
		}
		return thin[i].label < thin[j].label
	})

	labels := make([]string, len(thin))
	for i, t := range thin {
		labels[i] = t.label
	}
	return labels
}

func firstSentence(text string) string {
	sentences := textproc.Sentences(text)
	if len(sentences) == 0 {
		return ""
	}
	return sentences[0]
}
