// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the astrobio-engine CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/astrobio-engine/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns the secret value for key if it exists, or fallback otherwise.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the astrobio-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "astrobio-engine",
	Short: "NASA bioscience publication catalog and search pipeline",
	Long: `astrobio-engine harvests NASA bioscience publications from NTRS, the
Open Data Portal, and PubSpace, normalizes them into one catalog, and
serves filtered search, statistics, and AI-assisted summaries over HTTP.

Each pipeline stage is a subcommand: ingest pulls and stores records,
search and stats query the catalog from the command line, summarize
produces a publication summary, and serve runs the JSON API.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./astrobio-engine.yaml or ~/.config/astrobio-engine/config.yaml)")
	rootCmd.PersistentFlags().String("catalog-dir", "catalog", "directory holding the catalog database")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("astrobio-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "astrobio-engine"))
		}
	}

	viper.SetEnvPrefix("ASTROBIO_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
