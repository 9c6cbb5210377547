// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// SearchFilters holds exact-match predicates over categorical publication
// fields. All supplied filters are combined with AND semantics; zero
// values mean "no filter on this field".
type SearchFilters struct {
	// OrganismType filters by the rule-assigned organism label.
	OrganismType string `json:"organism_type,omitempty" yaml:"organism_type,omitempty"`

	// ResearchDomain filters by the rule-assigned domain label.
	ResearchDomain string `json:"research_domain,omitempty" yaml:"research_domain,omitempty"`

	// Year filters by publication year.
	Year int `json:"publication_year,omitempty" yaml:"publication_year,omitempty"`

	// Type filters by publication type.
	Type string `json:"publication_type,omitempty" yaml:"publication_type,omitempty"`
}

// IsEmpty reports whether no filter is set.
func (f SearchFilters) IsEmpty() bool {
	return f.OrganismType == "" && f.ResearchDomain == "" && f.Year == 0 && f.Type == ""
}

// SearchPage is one page of a filtered publication search. Total counts
// the full filtered set, not the page.
type SearchPage struct {
	Publications []Publication `json:"publications" yaml:"publications"`
	Total        int           `json:"total" yaml:"total"`
	Offset       int           `json:"offset" yaml:"offset"`
	Limit        int           `json:"limit" yaml:"limit"`
}
