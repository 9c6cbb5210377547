package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/astrobio-engine/internal/catalog"
	"github.com/pdiddy/astrobio-engine/internal/ingest"
	"github.com/pdiddy/astrobio-engine/pkg/types"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultDelay     = 1 * time.Second
	defaultUserAgent = "astrobio-engine/0.1"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Fetch publications from NASA sources into the catalog",
	Long: `Ingest pulls records from NTRS, the Open Data Portal, or PubSpace,
normalizes and classifies them, and stores them in the catalog. Records
already in the catalog are skipped. With --file, a local YAML or JSON
dump is ingested instead of the live APIs.`,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().String("source", ingest.SourceAll, "source to fetch (ntrs, open_data, pubspace, all)")
	ingestCmd.Flags().String("query", "", "search query sent to the source (default per source)")
	ingestCmd.Flags().String("file", "", "ingest a local YAML/JSON dump instead of the live APIs")
	ingestCmd.Flags().Int("max-records", 100, "maximum records fetched per source")
	ingestCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")
	ingestCmd.Flags().Duration("delay", 0, "delay between requests to the same portal (default 1s)")

	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	catalogDir, _ := rootCmd.PersistentFlags().GetString("catalog-dir")
	store, err := catalog.NewStore(types.CatalogConfig{CatalogDir: catalogDir})
	if err != nil {
		return err
	}
	defer store.Close()

	if file, _ := cmd.Flags().GetString("file"); file != "" {
		summary, err := ingest.RunFile(cmd.Context(), store, file, os.Stdout)
		if err != nil {
			return err
		}
		if summary.HasFailures() {
			return fmt.Errorf("%d record(s) failed ingestion", summary.Failed)
		}
		return nil
	}

	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = defaultTimeout
	}
	delay, _ := cmd.Flags().GetDuration("delay")
	if delay == 0 {
		delay = defaultDelay
	}
	maxRecords, _ := cmd.Flags().GetInt("max-records")
	source, _ := cmd.Flags().GetString("source")
	query, _ := cmd.Flags().GetString("query")

	cfg := types.FetchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		MaxRecords:        maxRecords,
		InterRequestDelay: delay,
	}

	summary, err := ingest.Run(cmd.Context(), store, source, query, cfg, os.Stdout)
	if err != nil {
		return err
	}
	if summary.HasFailures() {
		return fmt.Errorf("%d record(s) failed ingestion", summary.Failed)
	}
	return nil
}
