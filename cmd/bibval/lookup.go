package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matsen/bibval/internal/entry"
	"github.com/matsen/bibval/internal/validator"
)

var lookupISBN bool

func init() {
	lookupCmd.Flags().BoolVar(&lookupISBN, "isbn", false, "Treat the argument as an ISBN (Open Library only)")
	rootCmd.AddCommand(lookupCmd)
}

var lookupCmd = &cobra.Command{
	Use:   "lookup <doi>",
	Short: "Look up a single entry by DOI or ISBN",
	Long: `Look up a bibliographic record by identifier across all sources.

Sources are tried in a fixed order; the first record found wins.

Examples:
  bibval lookup 10.1093/sysbio/syy032
  bibval lookup --isbn 978-0-387-31073-2`,
	Args: cobra.ExactArgs(1),
	RunE: runLookup,
}

// LookupResult pairs a fetched entry with the source that supplied it.
type LookupResult struct {
	Source string      `json:"source"`
	Entry  entry.Entry `json:"entry"`
}

func runLookup(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	ctx := context.Background()

	var result *LookupResult

	if lookupISBN {
		client := validator.NewOpenLibraryClient(sourceOptions(cfg)...)
		found, err := client.SearchByISBN(ctx, args[0])
		if err != nil {
			exitWithError(ExitDataError, "looking up ISBN: %v", err)
		}
		if found != nil {
			result = &LookupResult{Source: client.Name(), Entry: *found}
		}
	} else {
		for _, src := range validator.Sources(sourceOptions(cfg)...) {
			found, err := searchByDOI(ctx, src, args[0])
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "skipping %s: %v\n", src.Name(), err)
				continue
			}
			if found != nil {
				result = &LookupResult{Source: src.Name(), Entry: *found}
				break
			}
		}
	}

	if result == nil {
		exitWithError(ExitDataError, "no record found for %s", args[0])
	}

	if humanOutput {
		printEntry(result.Source, result.Entry)
		return nil
	}
	return outputJSON(result)
}

func printEntry(source string, e entry.Entry) {
	fmt.Printf("Source: %s\n", source)
	fmt.Printf("Title:  %s\n", e.Title)
	if len(e.Authors) > 0 {
		fmt.Printf("Author: %s\n", strings.Join(e.Authors, "; "))
	}
	if e.HasYear() {
		fmt.Printf("Year:   %d\n", e.Year)
	}
	if e.HasVenue() {
		fmt.Printf("Venue:  %s\n", e.Venue)
	}
	if e.HasDOI() {
		fmt.Printf("DOI:    %s\n", e.DOI)
	}
}
