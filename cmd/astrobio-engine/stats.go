package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/pdiddy/astrobio-engine/internal/catalog"
	"github.com/pdiddy/astrobio-engine/pkg/types"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print catalog statistics",
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().Bool("json", false, "output statistics as JSON")

	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	catalogDir, _ := rootCmd.PersistentFlags().GetString("catalog-dir")
	store, err := catalog.NewStore(types.CatalogConfig{CatalogDir: catalogDir})
	if err != nil {
		return err
	}
	defer store.Close()

	stats, err := store.GetStats(cmd.Context())
	if err != nil {
		return err
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}

	fmt.Printf("Publications: %d\n", stats.TotalPublications)
	printCounts("By source", stats.BySource)
	printCounts("By type", stats.ByType)
	printCounts("By organism", stats.ByOrganism)
	printCounts("By domain", stats.ByDomain)

	if len(stats.TopKeywords) > 0 {
		fmt.Println("Top keywords:")
		for _, kc := range stats.TopKeywords {
			fmt.Printf("  %-24s %d\n", kc.Term, kc.Count)
		}
	}
	if len(stats.Sources) > 0 {
		fmt.Println("Sync state:")
		for _, src := range stats.Sources {
			fmt.Printf("  %-12s %6d records, last sync %s\n", src.Name, src.TotalRecords, src.LastSync)
		}
	}
	return nil
}

func printCounts(title string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	fmt.Printf("%s:\n", title)
	for _, label := range labels {
		fmt.Printf("  %-24s %d\n", label, counts[label])
	}
}
