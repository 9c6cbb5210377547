package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/astrobio-engine/internal/catalog"
	"github.com/pdiddy/astrobio-engine/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the publication catalog",
	Long: `Search runs a filtered query against the catalog. The optional query
argument matches title and abstract as a case-insensitive substring;
with --similarity it ranks by bag-of-words cosine similarity instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("organism", "", "filter by organism type (Human, Plant, Microbe, Animal, Other)")
	searchCmd.Flags().String("domain", "", "filter by research domain")
	searchCmd.Flags().Int("year", 0, "filter by publication year")
	searchCmd.Flags().String("type", "", "filter by publication type")
	searchCmd.Flags().Int("limit", 20, "maximum number of results")
	searchCmd.Flags().Int("offset", 0, "number of results to skip")
	searchCmd.Flags().Bool("similarity", false, "rank by similarity to the query instead of filtering")
	searchCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	catalogDir, _ := rootCmd.PersistentFlags().GetString("catalog-dir")
	store, err := catalog.NewStore(types.CatalogConfig{CatalogDir: catalogDir})
	if err != nil {
		return err
	}
	defer store.Close()

	var query string
	if len(args) > 0 {
		query = args[0]
	}

	organism, _ := cmd.Flags().GetString("organism")
	domain, _ := cmd.Flags().GetString("domain")
	year, _ := cmd.Flags().GetInt("year")
	pubType, _ := cmd.Flags().GetString("type")
	limit, _ := cmd.Flags().GetInt("limit")
	offset, _ := cmd.Flags().GetInt("offset")
	similarity, _ := cmd.Flags().GetBool("similarity")
	asJSON, _ := cmd.Flags().GetBool("json")

	filters := types.SearchFilters{
		OrganismType:   organism,
		ResearchDomain: domain,
		Year:           year,
		Type:           pubType,
	}

	var page types.SearchPage
	if similarity {
		page, err = store.RankBySimilarity(cmd.Context(), query, filters, limit, offset)
	} else {
		page, err = store.Search(cmd.Context(), query, filters, limit, offset)
	}
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(page)
	}

	fmt.Printf("%d result(s), showing %d (offset %d)\n\n", page.Total, len(page.Publications), page.Offset)
	for _, pub := range page.Publications {
		fmt.Printf("[%d] %s", pub.ID, pub.Title)
		if pub.Year != 0 {
			fmt.Printf(" (%d)", pub.Year)
		}
		fmt.Println()
		fmt.Printf("    %s / %s / %s", pub.Source, pub.OrganismType, pub.ResearchDomain)
		if len(pub.Authors) > 0 {
			fmt.Printf(" by %s", strings.Join(pub.Authors, "; "))
		}
		fmt.Println()
	}
	return nil
}
