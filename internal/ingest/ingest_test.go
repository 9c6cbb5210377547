package ingest

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/astrobio-engine/internal/catalog"
	"github.com/pdiddy/astrobio-engine/internal/fetch"
	"github.com/pdiddy/astrobio-engine/pkg/types"
)

func newTestStore(t *testing.T) *catalog.Store {
	t.Helper()
	s, err := catalog.NewStore(types.CatalogConfig{CatalogDir: t.TempDir()})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

type mockSource struct {
	name    string
	records []types.Publication
	err     error
}

func (m *mockSource) Name() string { return m.name }

func (m *mockSource) Fetch(_ context.Context, _ string, _ types.FetchConfig) ([]types.Publication, error) {
	return m.records, m.err
}

func TestRunRejectsUnknownSource(t *testing.T) {
	store := newTestStore(t)
	var buf bytes.Buffer

	_, err := Run(context.Background(), store, "genelab", "", types.FetchConfig{}, &buf)
	if err == nil {
		t.Fatal("unknown source should be rejected")
	}
	for _, name := range SourceNames() {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("error should list valid source %q: %v", name, err)
		}
	}
}

func TestRunSourcesStoresAndEnriches(t *testing.T) {
	store := newTestStore(t)
	src := &mockSource{
		name: "pubspace",
		records: []types.Publication{
			{
				SourceID: "pubspace-1",
				Title:    "Astronaut Bone Density in Microgravity",
				Abstract: "Bone density decreases during crewed missions.",
				Source:   "pubspace",
				Year:     2020,
			},
		},
	}

	var buf bytes.Buffer
	summary, err := RunSources(context.Background(), store,
		[]fetch.Source{src}, "", types.FetchConfig{}, &buf)
	if err != nil {
		t.Fatalf("RunSources: %v", err)
	}
	if summary.Created != 1 || summary.Total() != 1 {
		t.Errorf("summary = %+v, want 1 created", summary)
	}

	page, err := store.Search(context.Background(), "", types.SearchFilters{}, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Publications) != 1 {
		t.Fatalf("stored = %d, want 1", len(page.Publications))
	}
	pub := page.Publications[0]
	if pub.OrganismType != "Human" {
		t.Errorf("OrganismType = %q, want Human (from astronaut trigger)", pub.OrganismType)
	}
	if pub.ResearchDomain != "Microgravity" {
		t.Errorf("ResearchDomain = %q, want Microgravity", pub.ResearchDomain)
	}
	if len(pub.Keywords) == 0 {
		t.Error("keywords should be extracted when the source supplies none")
	}
}

func TestRunSourcesIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	src := &mockSource{
		name: "pubspace",
		records: []types.Publication{
			{SourceID: "pubspace-1", Title: "Plant Growth", Source: "pubspace"},
		},
	}

	var buf bytes.Buffer
	ctx := context.Background()
	if _, err := RunSources(ctx, store, []fetch.Source{src}, "", types.FetchConfig{}, &buf); err != nil {
		t.Fatal(err)
	}
	summary, err := RunSources(ctx, store, []fetch.Source{src}, "", types.FetchConfig{}, &buf)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Created != 0 || summary.Skipped != 1 {
		t.Errorf("second run summary = %+v, want 1 skipped", summary)
	}
}

func TestRunSourcesFiltersIrrelevantNTRSRecords(t *testing.T) {
	store := newTestStore(t)
	src := &mockSource{
		name: "ntrs",
		records: []types.Publication{
			{SourceID: "ntrs-1", Title: "Hypersonic Inlet Design", Source: "ntrs"},
			{SourceID: "ntrs-2", Title: "Microbial Growth in Spaceflight", Source: "ntrs"},
		},
	}

	var buf bytes.Buffer
	summary, err := RunSources(context.Background(), store,
		[]fetch.Source{src}, "", types.FetchConfig{}, &buf)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Filtered != 1 {
		t.Errorf("Filtered = %d, want 1 (aeronautics record gated out)", summary.Filtered)
	}
	if summary.Created != 1 {
		t.Errorf("Created = %d, want 1", summary.Created)
	}
}

func TestRunSourcesContinuesAfterRecordFailure(t *testing.T) {
	store := newTestStore(t)
	src := &mockSource{
		name: "pubspace",
		records: []types.Publication{
			{SourceID: "", Title: "No Identifier", Source: "pubspace"},
			{SourceID: "pubspace-2", Title: "Valid Record", Source: "pubspace"},
		},
	}

	var buf bytes.Buffer
	summary, err := RunSources(context.Background(), store,
		[]fetch.Source{src}, "", types.FetchConfig{}, &buf)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Failed != 1 || summary.Created != 1 {
		t.Errorf("summary = %+v, want 1 failed and 1 created", summary)
	}
	if len(summary.Errors) != 1 || !strings.Contains(summary.Errors[0], "No Identifier") {
		t.Errorf("Errors = %v, want one entry naming the failed record", summary.Errors)
	}
	if !strings.Contains(buf.String(), "failed:") {
		t.Error("output should report the failed record")
	}
}

func TestRunSourcesCollectsSourceErrors(t *testing.T) {
	store := newTestStore(t)
	failing := &mockSource{name: "ntrs", err: context.DeadlineExceeded}
	working := &mockSource{
		name: "pubspace",
		records: []types.Publication{
			{SourceID: "pubspace-1", Title: "Valid Record", Source: "pubspace"},
		},
	}

	var buf bytes.Buffer
	summary, err := RunSources(context.Background(), store,
		[]fetch.Source{failing, working}, "", types.FetchConfig{}, &buf)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Created != 1 {
		t.Errorf("Created = %d, want 1 from the working source", summary.Created)
	}
	if len(summary.Errors) != 1 {
		t.Fatalf("Errors = %v, want the failing source recorded", summary.Errors)
	}
	if !strings.Contains(summary.Errors[0], "ntrs") {
		t.Errorf("Errors[0] = %q, want the source name in the message", summary.Errors[0])
	}
}

func TestRunFile(t *testing.T) {
	store := newTestStore(t)
	dir := t.TempDir()

	yamlDump := `
- source_id: dump-1
  title: Radiation Dosimetry for Mice
  abstract: Rodent exposure measurements.
  source: local
  publication_year: 2017
- source_id: dump-2
  title: Yeast Cultures on Orbit
  source: local
  publication_year: 2016
`
	path := filepath.Join(dir, "dump.yaml")
	if err := os.WriteFile(path, []byte(yamlDump), 0o644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	summary, err := RunFile(context.Background(), store, path, &buf)
	if err != nil {
		t.Fatalf("RunFile: %v", err)
	}
	if summary.Created != 2 {
		t.Errorf("Created = %d, want 2", summary.Created)
	}

	page, err := store.Search(context.Background(), "radiation", types.SearchFilters{}, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if page.Total != 1 {
		t.Errorf("Total = %d, want the dumped record searchable", page.Total)
	}
	if page.Publications[0].OrganismType != "Animal" {
		t.Errorf("OrganismType = %q, want Animal (mice trigger)", page.Publications[0].OrganismType)
	}
}

func TestRunFileRejectsUnknownFormat(t *testing.T) {
	store := newTestStore(t)
	path := filepath.Join(t.TempDir(), "dump.csv")
	if err := os.WriteFile(path, []byte("a,b\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if _, err := RunFile(context.Background(), store, path, &buf); err == nil {
		t.Error("unsupported format should be rejected")
	}
}
