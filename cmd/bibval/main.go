// Package main provides the bibval CLI entry point.
package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/matsen/bibval/internal/config"
	"github.com/matsen/bibval/internal/matcher"
	"github.com/matsen/bibval/internal/storage"
	"github.com/matsen/bibval/internal/validator"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bibval",
	Short: "Validate bibliography entries against external metadata sources",
	Long: `bibval checks locally authored bibliography entries against
external metadata sources (OpenAlex, Open Library, OpenReview).

Core features:
  - Field-level discrepancy detection (title, year, authors, DOI, venue)
  - Combined match scoring with best-candidate selection
  - DOI and title lookup across sources
  - DOI extraction from PDFs
  - Saved check runs for later review

All commands output JSON by default; use --human for readable output.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Load .env if present (for local overrides during development)
	_ = godotenv.Load()

	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}

// mustLoadConfig loads the global configuration, exits on error.
func mustLoadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return cfg
}

// newMatcher builds a matcher with any configured threshold overrides.
func newMatcher(cfg *config.Config) *matcher.Matcher {
	return matcher.NewWithThresholds(cfg.MatcherThresholds())
}

// sourceOptions translates config into validator client options.
func sourceOptions(cfg *config.Config) []validator.ClientOption {
	var opts []validator.ClientOption
	if cfg.Mailto != "" {
		opts = append(opts, validator.WithMailto(cfg.Mailto))
	}
	if cfg.TimeoutSeconds > 0 {
		opts = append(opts, validator.WithHTTPClient(&http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		}))
	}
	return opts
}

// mustOpenReports opens the report database, exits on error.
// The caller is responsible for calling Close() on the returned DB.
func mustOpenReports(cfg *config.Config) *storage.DB {
	path := cfg.ReportPath
	if path == "" {
		path = config.DefaultReportPath()
	}
	db, err := storage.OpenDB(path)
	if err != nil {
		exitWithError(ExitError, "opening report database: %v", err)
	}
	return db
}
