// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"fmt"

	"github.com/pdiddy/astrobio-engine/pkg/types"
)

// Stats aggregates catalog-wide counts for the stats endpoint.
type Stats struct {
	TotalPublications int               `json:"total_publications"`
	BySource          map[string]int    `json:"by_source"`
	ByType            map[string]int    `json:"by_type"`
	ByOrganism        map[string]int    `json:"by_organism"`
	ByDomain          map[string]int    `json:"by_domain"`
	ByYear            map[int]int       `json:"by_year"`
	TopKeywords       []KeywordCount    `json:"top_keywords"`
	Sources           []SourceSyncState `json:"sources"`
}

// KeywordCount pairs a keyword with the number of publications using it.
type KeywordCount struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

// SourceSyncState reports per-source ingestion bookkeeping.
type SourceSyncState struct {
	Name         string `json:"name"`
	LastSync     string `json:"last_sync"`
	TotalRecords int    `json:"total_records"`
}

const topKeywordLimit = 10

// GetStats computes the catalog aggregates in one pass of group-by
// queries.
func (s *Store) GetStats(ctx context.Context) (Stats, error) {
	stats := Stats{
		BySource:   map[string]int{},
		ByType:     map[string]int{},
		ByOrganism: map[string]int{},
		ByDomain:   map[string]int{},
		ByYear:     map[int]int{},
	}

	if err := s.db.QueryRowContext(ctx,
		`SELECT count(*) FROM publications`,
	).Scan(&stats.TotalPublications); err != nil {
		return Stats{}, fmt.Errorf("counting publications: %w", err)
	}

	groupBys := []struct {
		column string
		apply  func(label string, count int)
	}{
		{"source", func(l string, c int) { stats.BySource[l] = c }},
		{"publication_type", func(l string, c int) { stats.ByType[l] = c }},
		{"organism_type", func(l string, c int) { stats.ByOrganism[l] = c }},
		{"research_domain", func(l string, c int) { stats.ByDomain[l] = c }},
	}
	for _, g := range groupBys {
		if err := s.groupCount(ctx, g.column, g.apply); err != nil {
			return Stats{}, err
		}
	}

	yearRows, err := s.db.QueryContext(ctx,
		`SELECT publication_year, count(*) FROM publications
		 WHERE publication_year IS NOT NULL
		 GROUP BY publication_year`)
	if err != nil {
		return Stats{}, fmt.Errorf("counting by year: %w", err)
	}
	defer yearRows.Close()
	for yearRows.Next() {
		var year, count int
		if err := yearRows.Scan(&year, &count); err != nil {
			return Stats{}, fmt.Errorf("scanning year count: %w", err)
		}
		stats.ByYear[year] = count
	}
	if err := yearRows.Err(); err != nil {
		return Stats{}, err
	}

	keywordRows, err := s.db.QueryContext(ctx,
		`SELECT term, usage_count FROM keywords
		 WHERE usage_count > 0
		 ORDER BY usage_count DESC, term ASC LIMIT ?`, topKeywordLimit)
	if err != nil {
		return Stats{}, fmt.Errorf("listing top keywords: %w", err)
	}
	defer keywordRows.Close()
	for keywordRows.Next() {
		var kc KeywordCount
		if err := keywordRows.Scan(&kc.Term, &kc.Count); err != nil {
			return Stats{}, fmt.Errorf("scanning keyword count: %w", err)
		}
		stats.TopKeywords = append(stats.TopKeywords, kc)
	}
	if err := keywordRows.Err(); err != nil {
		return Stats{}, err
	}

	sourceRows, err := s.db.QueryContext(ctx,
		`SELECT name, coalesce(last_sync, ''), total_records
		 FROM data_sources ORDER BY name`)
	if err != nil {
		return Stats{}, fmt.Errorf("listing data sources: %w", err)
	}
	defer sourceRows.Close()
	for sourceRows.Next() {
		var state SourceSyncState
		if err := sourceRows.Scan(&state.Name, &state.LastSync, &state.TotalRecords); err != nil {
			return Stats{}, fmt.Errorf("scanning data source: %w", err)
		}
		stats.Sources = append(stats.Sources, state)
	}
	return stats, sourceRows.Err()
}

func (s *Store) groupCount(ctx context.Context, column string, apply func(string, int)) error {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(
		`SELECT coalesce(%s, ''), count(*) FROM publications GROUP BY %s`,
		column, column))
	if err != nil {
		return fmt.Errorf("counting by %s: %w", column, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			label string
			count int
		)
		if err := rows.Scan(&label, &count); err != nil {
			return fmt.Errorf("scanning %s count: %w", column, err)
		}
		if label == "" {
			label = types.DefaultPublicationType
		}
		apply(label, count)
	}
	return rows.Err()
}
