// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the astrobio-engine pipeline.
package types

import "time"

// Publication is the canonical record shape all source schemas are
// normalized into. A publication is identified by SourceID, which is
// unique across the corpus; re-submitting the same SourceID is a no-op.
type Publication struct {
	// ID is the catalog row identifier, assigned at creation.
	ID int64 `json:"id" yaml:"id"`

	// SourceID is the source-assigned identifier (NTRS citation ID,
	// CKAN dataset ID, PubSpace record ID). Unique across the corpus.
	SourceID string `json:"source_id" yaml:"source_id"`

	// Title is the publication title.
	Title string `json:"title" yaml:"title"`

	// Abstract is the publication abstract or dataset description.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Authors lists author names in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// Date is the full publication date. Zero when the source date
	// string matched none of the known formats.
	Date time.Time `json:"date,omitempty" yaml:"date,omitempty"`

	// Year is the publication year, extracted independently of Date
	// and more leniently. Zero when unknown.
	Year int `json:"publication_year,omitempty" yaml:"publication_year,omitempty"`

	// Type is the publication type (e.g. "technical_report", "dataset",
	// "journal_article"). Defaults to "unknown".
	Type string `json:"publication_type" yaml:"publication_type"`

	// Source identifies the harvesting source (e.g. "ntrs", "open_data").
	Source string `json:"source" yaml:"source"`

	// URL points at the source record or PDF, when available.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`

	// DOI is the digital object identifier, when available.
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// Keywords lists source-supplied keyword terms.
	Keywords []string `json:"keywords" yaml:"keywords"`

	// OrganismType is the rule-assigned organism label (Human, Plant,
	// Microbe, Animal, Other). Assigned at creation, never recomputed.
	OrganismType string `json:"organism_type" yaml:"organism_type"`

	// ResearchDomain is the rule-assigned domain label (Microgravity,
	// Radiation, ...). Assigned at creation, never recomputed.
	ResearchDomain string `json:"research_domain" yaml:"research_domain"`
}

// DefaultPublicationType is used when a source supplies no type.
const DefaultPublicationType = "unknown"
