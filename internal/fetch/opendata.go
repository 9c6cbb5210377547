// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pdiddy/astrobio-engine/pkg/types"
)

// openDataAPIBase is the NASA Open Data Portal CKAN search endpoint.
// Declared as a var so tests can substitute an httptest server.
var openDataAPIBase = "https://data.nasa.gov/api/3/action/package_search"

// defaultOpenDataKeywords are searched one at a time when the config
// supplies no keyword list of its own.
var defaultOpenDataKeywords = []string{
	"bioscience", "biology", "life sciences", "astrobiology", "space biology",
}

// openDataRows is the CKAN page size per keyword query.
const openDataRows = 50

// OpenDataSource queries the NASA Open Data Portal. The portal is
// keyword-driven rather than free-text, so one HTTP request is issued
// per configured keyword with a fixed delay in between.
type OpenDataSource struct {
	Client *http.Client
}

// Name returns the source identifier.
func (s *OpenDataSource) Name() string { return "open_data" }

// Fetch cycles through the configured keywords against the CKAN API.
// A failing keyword query is skipped and the cycle moves on to the next
// keyword, so a transient failure mid-cycle still harvests the rest.
// The combined failures come back as one error alongside whatever was
// retrieved.
func (s *OpenDataSource) Fetch(ctx context.Context, query string, cfg types.FetchConfig) ([]types.Publication, error) {
	keywords := cfg.OpenDataKeywords
	if len(keywords) == 0 {
		keywords = defaultOpenDataKeywords
	}
	delay := cfg.InterRequestDelay
	if delay <= 0 {
		delay = time.Second
	}

	var records []types.Publication
	var failed []string
	for i, keyword := range keywords {
		if i > 0 {
			select {
			case <-ctx.Done():
				return records, ctx.Err()
			case <-time.After(delay):
			}
		}

		batch, err := s.fetchKeyword(ctx, keyword, cfg)
		if err != nil {
			failed = append(failed, fmt.Sprintf("%q: %v", keyword, err))
			continue
		}
		records = append(records, batch...)
	}
	if len(failed) > 0 {
		return records, fmt.Errorf("keyword queries failed: %s", strings.Join(failed, "; "))
	}
	return records, nil
}

func (s *OpenDataSource) fetchKeyword(ctx context.Context, keyword string, cfg types.FetchConfig) ([]types.Publication, error) {
	params := url.Values{
		"q":    {keyword},
		"rows": {fmt.Sprintf("%d", openDataRows)},
		"sort": {"metadata_modified desc"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, openDataAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Open Data API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Open Data API returned HTTP %d", resp.StatusCode)
	}

	var odr openDataResponse
	if err := json.NewDecoder(resp.Body).Decode(&odr); err != nil {
		return nil, fmt.Errorf("parsing Open Data response: %w", err)
	}

	var records []types.Publication
	for _, ds := range odr.Result.Results {
		if rec, ok := parseOpenDataResult(ds); ok {
			records = append(records, rec)
		}
	}
	return records, nil
}

// parseOpenDataResult maps one CKAN dataset onto the canonical shape.
func parseOpenDataResult(ds openDataDataset) (types.Publication, bool) {
	if ds.ID == "" {
		return types.Publication{}, false
	}

	pub := types.Publication{
		SourceID: "opendata-" + ds.ID,
		Title:    ds.Title,
		Abstract: ds.Notes,
		Date:     ParseDate(ds.MetadataCreated),
		Year:     ExtractYear(ds.MetadataCreated),
		URL:      ds.URL,
		Type:     "dataset",
		Source:   "open_data",
	}
	if ds.Organization.Title != "" {
		pub.Authors = []string{ds.Organization.Title}
	}
	for _, tag := range ds.Tags {
		if tag.Name != "" {
			pub.Keywords = append(pub.Keywords, tag.Name)
		}
	}
	return pub, true
}

// CKAN API JSON structures.
type openDataResponse struct {
	Result openDataResult `json:"result"`
}

type openDataResult struct {
	Results []openDataDataset `json:"results"`
}

type openDataDataset struct {
	ID              string        `json:"id"`
	Title           string        `json:"title"`
	Notes           string        `json:"notes"`
	URL             string        `json:"url"`
	MetadataCreated string        `json:"metadata_created"`
	Organization    openDataOrg   `json:"organization"`
	Tags            []openDataTag `json:"tags"`
}

type openDataOrg struct {
	Title string `json:"title"`
}

type openDataTag struct {
	Name string `json:"name"`
}
