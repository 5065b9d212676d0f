package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/bibval/internal/entry"
	"github.com/matsen/bibval/internal/pdf"
	"github.com/matsen/bibval/internal/validator"
)

func init() {
	rootCmd.AddCommand(pdfCmd)
}

var pdfCmd = &cobra.Command{
	Use:   "pdf <file.pdf>",
	Short: "Identify a PDF and fetch its metadata record",
	Long: `Extract a DOI from the leading pages of a PDF and look it up
across the metadata sources. When the PDF carries no DOI, fall back to a
title search using the first substantial line of the first page.

Examples:
  bibval pdf paper.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runPDF,
}

func runPDF(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	ctx := context.Background()
	sources := validator.Sources(sourceOptions(cfg)...)

	doi, err := pdf.ExtractDOI(args[0])
	if err != nil {
		exitWithError(ExitDataError, "reading PDF: %v", err)
	}

	if doi != "" {
		for _, src := range sources {
			found, err := searchByDOI(ctx, src, doi)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "skipping %s: %v\n", src.Name(), err)
				continue
			}
			if found != nil {
				result := LookupResult{Source: src.Name(), Entry: *found}
				if humanOutput {
					printEntry(result.Source, result.Entry)
					return nil
				}
				return outputJSON(result)
			}
		}
		exitWithError(ExitDataError, "DOI %s extracted but not found in any source", doi)
	}

	// No DOI in the PDF: try the title heuristic.
	title, err := pdf.ExtractTitle(args[0])
	if err != nil || title == "" {
		exitWithError(ExitDataError, "no DOI or usable title found in %s", args[0])
	}

	m := newMatcher(cfg)
	for _, src := range sources {
		candidates, err := searchByTitle(ctx, src, title)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "skipping %s: %v\n", src.Name(), err)
			continue
		}
		if best := m.FindBestMatch(entry.Entry{Title: title}, candidates); best != nil {
			result := LookupResult{Source: src.Name(), Entry: best.Entry}
			if humanOutput {
				fmt.Printf("Matched by title (score %.2f)\n", best.Score)
				printEntry(result.Source, result.Entry)
				return nil
			}
			return outputJSON(result)
		}
	}

	exitWithError(ExitDataError, "no match found for extracted title %q", title)
	return nil
}
