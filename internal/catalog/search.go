// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pdiddy/astrobio-engine/internal/textproc"
	"github.com/pdiddy/astrobio-engine/pkg/types"
)

// GetPublication loads one publication with its authors and keywords.
// Returns sql.ErrNoRows (wrapped) when the id is unknown.
func (s *Store) GetPublication(ctx context.Context, id int64) (types.Publication, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, source_id, title, abstract, publication_date, publication_year,
			publication_type, source, url, doi, organism_type, research_domain
		 FROM publications WHERE id = ?`, id)

	pub, err := scanPublication(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return types.Publication{}, fmt.Errorf("publication %d: %w", id, err)
		}
		return types.Publication{}, fmt.Errorf("loading publication %d: %w", id, err)
	}

	if err := s.loadAssociations(ctx, &pub); err != nil {
		return types.Publication{}, err
	}
	return pub, nil
}

// Search returns one page of publications matching the conjunction of
// the supplied filters, optionally narrowed by a case-insensitive
// substring match of query against title or abstract. Results are
// ordered by publication year descending; Total reflects the full
// filtered set, not the page.
func (s *Store) Search(ctx context.Context, query string, filters types.SearchFilters, limit, offset int) (types.SearchPage, error) {
	if limit <= 0 {
		limit = s.maxResults
	}
	if offset < 0 {
		offset = 0
	}

	where, args := buildWhere(query, filters)

	var total int
	if err := s.db.QueryRowContext(ctx,
		`SELECT count(*) FROM publications`+where, args...,
	).Scan(&total); err != nil {
		return types.SearchPage{}, fmt.Errorf("counting results: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source_id, title, abstract, publication_date, publication_year,
			publication_type, source, url, doi, organism_type, research_domain
		 FROM publications`+where+
			` ORDER BY publication_year DESC, id ASC LIMIT ? OFFSET ?`,
		append(args, limit, offset)...)
	if err != nil {
		return types.SearchPage{}, fmt.Errorf("querying publications: %w", err)
	}
	defer rows.Close()

	page := types.SearchPage{Total: total, Offset: offset, Limit: limit}
	for rows.Next() {
		pub, err := scanPublication(rows)
		if err != nil {
			return types.SearchPage{}, fmt.Errorf("scanning publication: %w", err)
		}
		page.Publications = append(page.Publications, pub)
	}
	if err := rows.Err(); err != nil {
		return types.SearchPage{}, err
	}

	for i := range page.Publications {
		if err := s.loadAssociations(ctx, &page.Publications[i]); err != nil {
			return types.SearchPage{}, err
		}
	}
	return page, nil
}

// RankBySimilarity is the alternative ranking mode: instead of the
// substring filter it scores every filtered candidate against the query
// with bag-of-words cosine similarity over title and abstract, and
// orders the page by descending score. Candidates scoring zero are
// dropped.
func (s *Store) RankBySimilarity(ctx context.Context, query string, filters types.SearchFilters, limit, offset int) (types.SearchPage, error) {
	if limit <= 0 {
		limit = s.maxResults
	}
	if offset < 0 {
		offset = 0
	}

	where, args := buildWhere("", filters)
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source_id, title, abstract, publication_date, publication_year,
			publication_type, source, url, doi, organism_type, research_domain
		 FROM publications`+where+` ORDER BY id ASC`, args...)
	if err != nil {
		return types.SearchPage{}, fmt.Errorf("querying candidates: %w", err)
	}
	defer rows.Close()

	type scored struct {
		pub   types.Publication
		score float64
	}
	queryVec := textproc.Vector(query)

	var candidates []scored
	for rows.Next() {
		pub, err := scanPublication(rows)
		if err != nil {
			return types.SearchPage{}, fmt.Errorf("scanning candidate: %w", err)
		}
		score := textproc.Cosine(queryVec, textproc.Vector(pub.Title+" "+pub.Abstract))
		if score > 0 {
			candidates = append(candidates, scored{pub: pub, score: score})
		}
	}
	if err := rows.Err(); err != nil {
		return types.SearchPage{}, err
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	page := types.SearchPage{Total: len(candidates), Offset: offset, Limit: limit}
	for i := offset; i < len(candidates) && i < offset+limit; i++ {
		pub := candidates[i].pub
		if err := s.loadAssociations(ctx, &pub); err != nil {
			return types.SearchPage{}, err
		}
		page.Publications = append(page.Publications, pub)
	}
	return page, nil
}

// buildWhere assembles the conjunctive WHERE clause for the filters and
// optional substring query.
func buildWhere(query string, filters types.SearchFilters) (string, []any) {
	var (
		conds []string
		args  []any
	)

	if filters.OrganismType != "" {
		conds = append(conds, "organism_type = ?")
		args = append(args, filters.OrganismType)
	}
	if filters.ResearchDomain != "" {
		conds = append(conds, "research_domain = ?")
		args = append(args, filters.ResearchDomain)
	}
	if filters.Year != 0 {
		conds = append(conds, "publication_year = ?")
		args = append(args, filters.Year)
	}
	if filters.Type != "" {
		conds = append(conds, "publication_type = ?")
		args = append(args, filters.Type)
	}
	if query != "" {
		conds = append(conds, "(lower(title) LIKE ? OR lower(abstract) LIKE ?)")
		pattern := "%" + strings.ToLower(query) + "%"
		args = append(args, pattern, pattern)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanPublication(row scanner) (types.Publication, error) {
	var (
		pub      types.Publication
		abstract sql.NullString
		dateStr  sql.NullString
		year     sql.NullInt64
		source   sql.NullString
		url      sql.NullString
		doi      sql.NullString
		organism sql.NullString
		domain   sql.NullString
	)

	if err := row.Scan(
		&pub.ID, &pub.SourceID, &pub.Title, &abstract, &dateStr, &year,
		&pub.Type, &source, &url, &doi, &organism, &domain,
	); err != nil {
		return types.Publication{}, err
	}

	pub.Abstract = abstract.String
	pub.Year = int(year.Int64)
	pub.Source = source.String
	pub.URL = url.String
	pub.DOI = doi.String
	pub.OrganismType = organism.String
	pub.ResearchDomain = domain.String
	if dateStr.Valid && dateStr.String != "" {
		if t, err := time.Parse(time.RFC3339, dateStr.String); err == nil {
			pub.Date = t
		}
	}
	return pub, nil
}

// loadAssociations fills in the author and keyword lists for one publication.
func (s *Store) loadAssociations(ctx context.Context, pub *types.Publication) error {
	authorRows, err := s.db.QueryContext(ctx,
		`SELECT a.name FROM authors a
		 JOIN publication_authors pa ON pa.author_id = a.id
		 WHERE pa.publication_id = ? ORDER BY a.id`, pub.ID)
	if err != nil {
		return fmt.Errorf("loading authors: %w", err)
	}
	defer authorRows.Close()
	for authorRows.Next() {
		var name string
		if err := authorRows.Scan(&name); err != nil {
			return fmt.Errorf("scanning author: %w", err)
		}
		pub.Authors = append(pub.Authors, name)
	}
	if err := authorRows.Err(); err != nil {
		return err
	}

	keywordRows, err := s.db.QueryContext(ctx,
		`SELECT k.term FROM keywords k
		 JOIN publication_keywords pk ON pk.keyword_id = k.id
		 WHERE pk.publication_id = ? ORDER BY k.id`, pub.ID)
	if err != nil {
		return fmt.Errorf("loading keywords: %w", err)
	}
	defer keywordRows.Close()
	for keywordRows.Next() {
		var term string
		if err := keywordRows.Scan(&term); err != nil {
			return fmt.Errorf("scanning keyword: %w", err)
		}
		pub.Keywords = append(pub.Keywords, term)
	}
	return keywordRows.Err()
}
