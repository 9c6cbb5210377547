// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"fmt"
)

// TimelineEntry is one research-domain/year bucket of the catalog
// timeline.
type TimelineEntry struct {
	ResearchDomain string   `json:"research_domain"`
	Year           int      `json:"year"`
	Count          int      `json:"count"`
	Titles         []string `json:"titles"`
}

const timelineTitleLimit = 3

// Timeline buckets publications by research domain and year, newest
// first, with a few representative titles per bucket. Publications
// without a known year are left out.
func (s *Store) Timeline(ctx context.Context) ([]TimelineEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT research_domain, publication_year, count(*)
		 FROM publications
		 WHERE publication_year IS NOT NULL
		 GROUP BY research_domain, publication_year
		 ORDER BY publication_year DESC, research_domain ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying timeline: %w", err)
	}
	defer rows.Close()

	var entries []TimelineEntry
	for rows.Next() {
		var e TimelineEntry
		if err := rows.Scan(&e.ResearchDomain, &e.Year, &e.Count); err != nil {
			return nil, fmt.Errorf("scanning timeline bucket: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range entries {
		titles, err := s.bucketTitles(ctx, entries[i].ResearchDomain, entries[i].Year)
		if err != nil {
			return nil, err
		}
		entries[i].Titles = titles
	}
	return entries, nil
}

func (s *Store) bucketTitles(ctx context.Context, domain string, year int) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT title FROM publications
		 WHERE research_domain = ? AND publication_year = ?
		 ORDER BY id ASC LIMIT ?`, domain, year, timelineTitleLimit)
	if err != nil {
		return nil, fmt.Errorf("listing bucket titles: %w", err)
	}
	defer rows.Close()

	var titles []string
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, fmt.Errorf("scanning title: %w", err)
		}
		titles = append(titles, title)
	}
	return titles, rows.Err()
}
