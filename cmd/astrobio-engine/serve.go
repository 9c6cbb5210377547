package main

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/astrobio-engine/internal/catalog"
	"github.com/pdiddy/astrobio-engine/internal/enhance"
	"github.com/pdiddy/astrobio-engine/internal/server"
	"github.com/pdiddy/astrobio-engine/pkg/types"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the JSON HTTP API",
	Long: `Serve exposes the catalog over HTTP: /search, /publications/{id},
/nasa-data/ingest, /nasa-data/stats, /summarize, /chat, /gap_analyze,
and /timeline.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "listen address")
	serveCmd.Flags().String("model", "", "Gemini model identifier (default "+enhance.DefaultGeminiModel+")")
	serveCmd.Flags().Int("max-records", 100, "maximum records fetched per source during ingestion")
	serveCmd.Flags().Duration("timeout", defaultTimeout, "HTTP request timeout for source fetches")
	serveCmd.Flags().Duration("delay", defaultDelay, "delay between requests to the same portal")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	catalogDir, _ := rootCmd.PersistentFlags().GetString("catalog-dir")
	store, err := catalog.NewStore(types.CatalogConfig{CatalogDir: catalogDir})
	if err != nil {
		return err
	}
	defer store.Close()

	addr, _ := cmd.Flags().GetString("addr")
	if v := viper.GetString("server.addr"); addr == ":8080" && v != "" {
		addr = v
	}
	maxRecords, _ := cmd.Flags().GetInt("max-records")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	delay, _ := cmd.Flags().GetDuration("delay")
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	fetchCfg := types.FetchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		MaxRecords:        maxRecords,
		InterRequestDelay: delay,
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	svc := enhance.NewService(newGeminiFromConfig(cmd))
	srv := server.NewServer(store, svc, fetchCfg, logrus.NewEntry(logger))
	return srv.Start(addr)
}
