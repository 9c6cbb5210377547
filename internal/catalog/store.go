// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog persists canonical publications in SQLite and answers
// filtered, paginated searches over them. Authors and keywords are
// global, deduplicated entities shared across publications; the unique
// constraints on their name columns make find-or-create atomic inside
// the creation transaction.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/astrobio-engine/pkg/types"
)

const dbFile = "astrobio.db"

// Store manages the publication catalog SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// NewStore opens or creates the catalog database at
// catalogDir/astrobio.db and creates the schema if it does not exist.
func NewStore(cfg types.CatalogConfig) (*Store, error) {
	dir := cfg.CatalogDir
	if dir == "" {
		dir = "catalog"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating catalog directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS publications (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			source_id TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL,
			abstract TEXT,
			publication_date TEXT,
			publication_year INTEGER,
			publication_type TEXT NOT NULL DEFAULT 'unknown',
			source TEXT,
			url TEXT,
			doi TEXT,
			organism_type TEXT,
			research_domain TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_publications_year ON publications(publication_year)`,
		`CREATE INDEX IF NOT EXISTS idx_publications_organism ON publications(organism_type)`,
		`CREATE INDEX IF NOT EXISTS idx_publications_domain ON publications(research_domain)`,
		`CREATE TABLE IF NOT EXISTS authors (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS keywords (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			term TEXT NOT NULL UNIQUE,
			usage_count INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS publication_authors (
			publication_id INTEGER NOT NULL REFERENCES publications(id),
			author_id INTEGER NOT NULL REFERENCES authors(id),
			PRIMARY KEY (publication_id, author_id)
		)`,
		`CREATE TABLE IF NOT EXISTS publication_keywords (
			publication_id INTEGER NOT NULL REFERENCES publications(id),
			keyword_id INTEGER NOT NULL REFERENCES keywords(id),
			PRIMARY KEY (publication_id, keyword_id)
		)`,
		`CREATE TABLE IF NOT EXISTS data_sources (
			name TEXT PRIMARY KEY,
			last_sync TEXT,
			total_records INTEGER NOT NULL DEFAULT 0
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// CreatePublication stores a canonical publication with its authors and
// keywords. Creation is idempotent by SourceID: re-submitting an
// existing identifier returns the stored record unchanged (no merge of
// new fields) with created=false. The whole operation runs in one
// transaction, which also serializes concurrent submissions of the same
// identifier.
func (s *Store) CreatePublication(ctx context.Context, pub types.Publication) (types.Publication, bool, error) {
	if pub.SourceID == "" {
		return types.Publication{}, false, fmt.Errorf("publication has no source identifier")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return types.Publication{}, false, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var existingID int64
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM publications WHERE source_id = ?`, pub.SourceID,
	).Scan(&existingID)
	if err == nil {
		tx.Rollback()
		existing, getErr := s.GetPublication(ctx, existingID)
		if getErr != nil {
			return types.Publication{}, false, getErr
		}
		return existing, false, nil
	}
	if err != sql.ErrNoRows {
		return types.Publication{}, false, fmt.Errorf("looking up publication: %w", err)
	}

	pubType := pub.Type
	if pubType == "" {
		pubType = types.DefaultPublicationType
	}
	dateStr := ""
	if !pub.Date.IsZero() {
		dateStr = pub.Date.Format(time.RFC3339)
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO publications
			(source_id, title, abstract, publication_date, publication_year,
			 publication_type, source, url, doi, organism_type, research_domain)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		pub.SourceID, pub.Title, pub.Abstract, dateStr, nullableInt(pub.Year),
		pubType, pub.Source, pub.URL, pub.DOI, pub.OrganismType, pub.ResearchDomain,
	)
	if err != nil {
		return types.Publication{}, false, fmt.Errorf("inserting publication: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return types.Publication{}, false, fmt.Errorf("reading publication id: %w", err)
	}

	if err := s.attachAuthors(ctx, tx, id, pub.Authors); err != nil {
		return types.Publication{}, false, err
	}
	if err := s.attachKeywords(ctx, tx, id, pub.Keywords); err != nil {
		return types.Publication{}, false, err
	}

	if err := tx.Commit(); err != nil {
		return types.Publication{}, false, fmt.Errorf("committing publication: %w", err)
	}

	created, err := s.GetPublication(ctx, id)
	if err != nil {
		return types.Publication{}, false, err
	}
	return created, true, nil
}

// attachAuthors upserts each author by exact trimmed name and links it
// to the publication. Empty names are skipped; an already-linked author
// is not linked twice.
func (s *Store) attachAuthors(ctx context.Context, tx *sql.Tx, pubID int64, names []string) error {
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO authors (name) VALUES (?) ON CONFLICT(name) DO NOTHING`, name,
		); err != nil {
			return fmt.Errorf("upserting author %q: %w", name, err)
		}

		var authorID int64
		if err := tx.QueryRowContext(ctx,
			`SELECT id FROM authors WHERE name = ?`, name,
		).Scan(&authorID); err != nil {
			return fmt.Errorf("looking up author %q: %w", name, err)
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO publication_authors (publication_id, author_id) VALUES (?, ?)
			 ON CONFLICT DO NOTHING`, pubID, authorID,
		); err != nil {
			return fmt.Errorf("linking author %q: %w", name, err)
		}
	}
	return nil
}

// attachKeywords upserts each keyword by exact trimmed term and links
// it to the publication. The global usage counter counts distinct
// publications referencing the keyword, so it is incremented only when
// the link is actually new.
func (s *Store) attachKeywords(ctx context.Context, tx *sql.Tx, pubID int64, terms []string) error {
	for _, term := range terms {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO keywords (term) VALUES (?) ON CONFLICT(term) DO NOTHING`, term,
		); err != nil {
			return fmt.Errorf("upserting keyword %q: %w", term, err)
		}

		var keywordID int64
		if err := tx.QueryRowContext(ctx,
			`SELECT id FROM keywords WHERE term = ?`, term,
		).Scan(&keywordID); err != nil {
			return fmt.Errorf("looking up keyword %q: %w", term, err)
		}

		res, err := tx.ExecContext(ctx,
			`INSERT INTO publication_keywords (publication_id, keyword_id) VALUES (?, ?)
			 ON CONFLICT DO NOTHING`, pubID, keywordID,
		)
		if err != nil {
			return fmt.Errorf("linking keyword %q: %w", term, err)
		}

		linked, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("checking keyword link %q: %w", term, err)
		}
		if linked > 0 {
			if _, err := tx.ExecContext(ctx,
				`UPDATE keywords SET usage_count = usage_count + 1 WHERE id = ?`, keywordID,
			); err != nil {
				return fmt.Errorf("counting keyword %q: %w", term, err)
			}
		}
	}
	return nil
}

// RecordSync updates the per-source sync bookkeeping after an ingestion run.
func (s *Store) RecordSync(ctx context.Context, source string, records int) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO data_sources (name, last_sync, total_records) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
			last_sync = excluded.last_sync,
			total_records = data_sources.total_records + excluded.total_records`,
		source, time.Now().UTC().Format(time.RFC3339), records,
	)
	if err != nil {
		return fmt.Errorf("recording sync for %s: %w", source, err)
	}
	return nil
}

// nullableInt maps 0 to NULL so "year unknown" does not index as year 0.
func nullableInt(v int) any {
	if v == 0 {
		return nil
	}
	return v
}
