// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pdiddy/astrobio-engine/pkg/types"
)

// pubSpaceAPIBase is the NASA PubSpace search endpoint. Declared as a
// var so tests can substitute an httptest server.
var pubSpaceAPIBase = "https://pubspace.larc.nasa.gov/search"

// PubSpaceSource queries NASA PubSpace for peer-reviewed articles.
type PubSpaceSource struct {
	Client *http.Client
}

// Name returns the source identifier.
func (s *PubSpaceSource) Name() string { return "pubspace" }

// Fetch queries PubSpace and returns normalized records.
func (s *PubSpaceSource) Fetch(ctx context.Context, query string, cfg types.FetchConfig) ([]types.Publication, error) {
	if query == "" {
		query = "space biology"
	}
	limit := cfg.MaxRecords
	if limit <= 0 {
		limit = 100
	}

	params := url.Values{
		"q":      {query},
		"limit":  {fmt.Sprintf("%d", limit)},
		"format": {"json"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pubSpaceAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("PubSpace API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("PubSpace API returned HTTP %d", resp.StatusCode)
	}

	var psr pubSpaceResponse
	if err := json.NewDecoder(resp.Body).Decode(&psr); err != nil {
		return nil, fmt.Errorf("parsing PubSpace response: %w", err)
	}

	var records []types.Publication
	for _, result := range psr.Results {
		if rec, ok := parsePubSpaceResult(result); ok {
			records = append(records, rec)
		}
	}
	return records, nil
}

// parsePubSpaceResult maps one PubSpace record onto the canonical shape.
func parsePubSpaceResult(r pubSpaceResult) (types.Publication, bool) {
	if r.ID == "" {
		return types.Publication{}, false
	}

	return types.Publication{
		SourceID: "pubspace-" + r.ID,
		Title:    r.Title,
		Abstract: r.Abstract,
		Authors:  r.Authors,
		Date:     ParseDate(r.Date),
		Year:     ExtractYear(r.Date),
		URL:      r.URL,
		Type:     "journal_article",
		Source:   "pubspace",
		DOI:      r.DOI,
	}, true
}

// PubSpace API JSON structures.
type pubSpaceResponse struct {
	Results []pubSpaceResult `json:"results"`
}

type pubSpaceResult struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Abstract string   `json:"abstract"`
	Authors  []string `json:"authors"`
	Date     string   `json:"date"`
	URL      string   `json:"url"`
	DOI      string   `json:"doi"`
}
