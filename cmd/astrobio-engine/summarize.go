package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/astrobio-engine/internal/catalog"
	"github.com/pdiddy/astrobio-engine/internal/enhance"
	"github.com/pdiddy/astrobio-engine/pkg/types"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize <publication-id>",
	Short: "Summarize one catalog publication",
	Long: `Summarize produces a prose summary of a stored publication. With a
Gemini API key configured (gemini-api-key secret or config) the model
writes the summary; otherwise a local extractive summary is produced.`,
	Args: cobra.ExactArgs(1),
	RunE: runSummarize,
}

func init() {
	summarizeCmd.Flags().String("model", "", "Gemini model identifier (default "+enhance.DefaultGeminiModel+")")

	rootCmd.AddCommand(summarizeCmd)
}

func runSummarize(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("publication id must be an integer: %q", args[0])
	}

	catalogDir, _ := rootCmd.PersistentFlags().GetString("catalog-dir")
	store, err := catalog.NewStore(types.CatalogConfig{CatalogDir: catalogDir})
	if err != nil {
		return err
	}
	defer store.Close()

	pub, err := store.GetPublication(cmd.Context(), id)
	if err != nil {
		return err
	}

	svc := enhance.NewService(newGeminiFromConfig(cmd))
	res := svc.Summarize(cmd.Context(), pub)

	fmt.Printf("%s\n\n%s\n\n(backend: %s)\n", pub.Title, res.Text, res.Backend)
	return nil
}

// newGeminiFromConfig builds the AI backend from flags, config, and
// secrets. Returns a nil interface when no API key is configured, which
// makes the enhancement service local-only.
func newGeminiFromConfig(cmd *cobra.Command) enhance.Enhancer {
	model, _ := cmd.Flags().GetString("model")
	if model == "" {
		model = viper.GetString("ai.model")
	}
	g := enhance.NewGemini(types.AIConfig{
		Model:      model,
		APIKey:     secretDefault("gemini-api-key", viper.GetString("ai.api_key")),
		MaxRetries: viper.GetInt("ai.max_retries"),
	})
	if g == nil {
		return nil
	}
	return g
}
