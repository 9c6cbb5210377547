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

// ntrsAPIBase is the NASA Technical Reports Server search endpoint.
// Declared as a var so tests can substitute an httptest server.
var ntrsAPIBase = "https://ntrs.nasa.gov/api/citations/search"

// NTRSSource queries the NASA Technical Reports Server.
type NTRSSource struct {
	Client *http.Client
}

// Name returns the source identifier.
func (s *NTRSSource) Name() string { return "ntrs" }

// Fetch queries NTRS and returns normalized records. Individual results
// that fail to parse are skipped; the rest of the batch survives.
func (s *NTRSSource) Fetch(ctx context.Context, query string, cfg types.FetchConfig) ([]types.Publication, error) {
	if query == "" {
		query = "bioscience"
	}
	limit := cfg.MaxRecords
	if limit <= 0 {
		limit = 100
	}

	params := url.Values{
		"q":    {query},
		"size": {fmt.Sprintf("%d", limit)},
		"from": {"0"},
		"sort": {"date_desc"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ntrsAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("NTRS API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("NTRS API returned HTTP %d", resp.StatusCode)
	}

	var nr ntrsResponse
	if err := json.NewDecoder(resp.Body).Decode(&nr); err != nil {
		return nil, fmt.Errorf("parsing NTRS response: %w", err)
	}

	var records []types.Publication
	for _, result := range nr.Results {
		if rec, ok := parseNTRSResult(result); ok {
			records = append(records, rec)
		}
	}
	return records, nil
}

// parseNTRSResult maps one NTRS citation onto the canonical shape.
// A citation without an identifier is unusable and is dropped.
func parseNTRSResult(r ntrsResult) (types.Publication, bool) {
	if r.ID.String() == "" {
		return types.Publication{}, false
	}

	pub := types.Publication{
		SourceID: "ntrs-" + r.ID.String(),
		Title:    r.Title,
		Abstract: r.Abstract,
		Date:     ParseDate(r.Published),
		Year:     ExtractYear(r.Published),
		URL:      r.Download.PDF,
		Type:     r.Type,
		Source:   "ntrs",
		Keywords: r.Keywords,
		DOI:      r.DOI,
	}
	if pub.Type == "" {
		pub.Type = "technical_report"
	}
	for _, a := range r.Authors {
		pub.Authors = append(pub.Authors, a.Name)
	}
	return pub, true
}

// NTRS API JSON structures.
type ntrsResponse struct {
	Results []ntrsResult `json:"results"`
}

type ntrsResult struct {
	ID        json.Number  `json:"id"`
	Title     string       `json:"title"`
	Abstract  string       `json:"abstract"`
	Authors   []ntrsAuthor `json:"authors"`
	Published string       `json:"published"`
	Download  ntrsDownload `json:"download"`
	Type      string       `json:"type"`
	Keywords  []string     `json:"keywords"`
	DOI       string       `json:"doi"`
}

type ntrsAuthor struct {
	Name string `json:"name"`
}

type ntrsDownload struct {
	PDF string `json:"pdf"`
}
