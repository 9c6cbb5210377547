// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ingest drives the fetch-normalize-store pipeline: it pulls
// records from the configured NASA sources, enriches them with
// classification labels and extracted keywords, and files them into the
// catalog.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/astrobio-engine/internal/catalog"
	"github.com/pdiddy/astrobio-engine/internal/classify"
	"github.com/pdiddy/astrobio-engine/internal/fetch"
	"github.com/pdiddy/astrobio-engine/internal/textproc"
	"github.com/pdiddy/astrobio-engine/pkg/types"
)

// SourceAll selects every registered source.
const SourceAll = "all"

// Summary holds the outcome of an ingestion run.
type Summary struct {
	Created  int
	Skipped  int
	Filtered int
	Failed   int
	Errors   []string
}

// Total returns the number of records processed.
func (s Summary) Total() int {
	return s.Created + s.Skipped + s.Filtered + s.Failed
}

// HasFailures reports whether any record failed to store.
func (s Summary) HasFailures() bool {
	return s.Failed > 0
}

// newSources builds the registered source set. The NTRS search surface
// is broad, so its records pass through a bioscience relevance gate
// before storage; the other two sources are already scoped.
func newSources(cfg types.FetchConfig) map[string]fetch.Source {
	client := fetch.NewClient(cfg)
	return map[string]fetch.Source{
		"ntrs":      &fetch.NTRSSource{Client: client},
		"open_data": &fetch.OpenDataSource{Client: client},
		"pubspace":  &fetch.PubSpaceSource{Client: client},
	}
}

// SourceNames lists the valid source selectors, sorted, with "all" last.
func SourceNames() []string {
	names := []string{"ntrs", "open_data", "pubspace"}
	sort.Strings(names)
	return append(names, SourceAll)
}

// Run fetches from the named source (or all of them) and stores the
// results. An unknown source name is rejected up front. Individual
// record failures are collected in the summary and do not stop the run.
func Run(ctx context.Context, store *catalog.Store, sourceName, query string, cfg types.FetchConfig, w io.Writer) (Summary, error) {
	registry := newSources(cfg)

	var selected []fetch.Source
	switch {
	case sourceName == SourceAll:
		for _, name := range SourceNames() {
			if name != SourceAll {
				selected = append(selected, registry[name])
			}
		}
	default:
		src, ok := registry[sourceName]
		if !ok {
			return Summary{}, fmt.Errorf("unknown source %q (valid: %s)",
				sourceName, strings.Join(SourceNames(), ", "))
		}
		selected = []fetch.Source{src}
	}

	return RunSources(ctx, store, selected, query, cfg, w)
}

// RunSources fetches from an explicit source list and stores the
// results. Run resolves source names onto this.
func RunSources(ctx context.Context, store *catalog.Store, selected []fetch.Source, query string, cfg types.FetchConfig, w io.Writer) (Summary, error) {
	out := fetch.All(ctx, selected, query, cfg, w)

	summary := storeRecords(ctx, store, out.Records, w)
	summary.Errors = append(summary.Errors, out.SourceErrors...)

	perSource := map[string]int{}
	for _, rec := range out.Records {
		perSource[rec.Source]++
	}
	for _, src := range selected {
		if err := store.RecordSync(ctx, src.Name(), perSource[src.Name()]); err != nil {
			summary.Errors = append(summary.Errors, err.Error())
		}
	}

	fmt.Fprintf(w, "\nIngest summary: %d created, %d skipped, %d filtered, %d failed (total: %d)\n",
		summary.Created, summary.Skipped, summary.Filtered, summary.Failed, summary.Total())
	return summary, nil
}

// RunFile ingests a local dump of publications from a YAML or JSON
// file instead of the live APIs. The same enrichment and idempotence
// rules apply.
func RunFile(ctx context.Context, store *catalog.Store, path string, w io.Writer) (Summary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Summary{}, fmt.Errorf("reading dump file: %w", err)
	}

	var records []types.Publication
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &records); err != nil {
			return Summary{}, fmt.Errorf("parsing JSON dump: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &records); err != nil {
			return Summary{}, fmt.Errorf("parsing YAML dump: %w", err)
		}
	default:
		return Summary{}, fmt.Errorf("unsupported dump format %q (want .json, .yaml, or .yml)", filepath.Ext(path))
	}

	summary := storeRecords(ctx, store, records, w)
	fmt.Fprintf(w, "\nIngest summary: %d created, %d skipped, %d filtered, %d failed (total: %d)\n",
		summary.Created, summary.Skipped, summary.Filtered, summary.Failed, summary.Total())
	return summary, nil
}

// storeRecords enriches and stores one batch, printing per-record
// status and continuing after individual failures.
func storeRecords(ctx context.Context, store *catalog.Store, records []types.Publication, w io.Writer) Summary {
	var summary Summary
	for _, rec := range records {
		if rec.Source == "ntrs" && !classify.BioscienceRelevant(rec.Title, rec.Abstract) {
			summary.Filtered++
			continue
		}

		enriched := enrich(rec)
		_, created, err := store.CreatePublication(ctx, enriched)
		if err != nil {
			summary.Failed++
			summary.Errors = append(summary.Errors, fmt.Sprintf("%s: %v", rec.Title, err))
			fmt.Fprintf(w, "failed:  %s (%v)\n", rec.Title, err)
			continue
		}
		if created {
			summary.Created++
			fmt.Fprintf(w, "created: %s\n", rec.Title)
		} else {
			summary.Skipped++
			fmt.Fprintf(w, "skipped: %s (already in catalog)\n", rec.Title)
		}
	}
	return summary
}

// enrich fills in the derived fields: classification labels always, and
// extracted keywords only when the source supplied none.
func enrich(rec types.Publication) types.Publication {
	rec.OrganismType = classify.OrganismType(rec.Title, rec.Abstract)
	rec.ResearchDomain = classify.ResearchDomain(rec.Title, rec.Abstract)
	if len(rec.Keywords) == 0 {
		rec.Keywords = textproc.TopKeywords(rec.Title+" "+rec.Abstract, textproc.DefaultKeywordCount)
	}
	return rec
}
