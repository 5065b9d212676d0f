package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/matsen/bibval/internal/entry"
	"github.com/matsen/bibval/internal/matcher"
	"github.com/matsen/bibval/internal/validator"
)

func init() {
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <title>",
	Short: "Search sources by title and score the candidates",
	Long: `Search all metadata sources by title and score every candidate
against the query. Candidates that fail the hard filters score 0.

Examples:
  bibval search "Deep Learning for Image Classification"`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

// SearchCandidate is one scored candidate from a title search.
type SearchCandidate struct {
	Source string      `json:"source"`
	Score  float64     `json:"score"`
	Entry  entry.Entry `json:"entry"`
}

// SearchResult is the outcome of a search command.
type SearchResult struct {
	Query      string            `json:"query"`
	Candidates []SearchCandidate `json:"candidates"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	m := newMatcher(cfg)
	ctx := context.Background()

	target := entry.Entry{Title: args[0]}

	result := SearchResult{Query: args[0], Candidates: []SearchCandidate{}}

	for _, src := range validator.Sources(sourceOptions(cfg)...) {
		candidates, err := searchByTitle(ctx, src, args[0])
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "skipping %s: %v\n", src.Name(), err)
			continue
		}
		for _, c := range candidates {
			result.Candidates = append(result.Candidates, SearchCandidate{
				Source: src.Name(),
				Score:  m.MatchScore(target, c),
				Entry:  c,
			})
		}
	}

	// Highest score first; stable to keep source order among equals.
	sort.SliceStable(result.Candidates, func(i, j int) bool {
		return result.Candidates[i].Score > result.Candidates[j].Score
	})

	if humanOutput {
		printSearchResult(m, result)
		return nil
	}
	return outputJSON(result)
}

func printSearchResult(m *matcher.Matcher, result SearchResult) {
	if len(result.Candidates) == 0 {
		fmt.Println("No candidates found.")
		return
	}

	for _, c := range result.Candidates {
		marker := " "
		if c.Score >= m.Thresholds().TitleMatch {
			marker = "*"
		}
		fmt.Printf("%s %.2f  %s", marker, c.Score, truncate(c.Entry.Title, listTitleMaxLen))
		if c.Entry.HasYear() {
			fmt.Printf(" (%d)", c.Entry.Year)
		}
		fmt.Printf("  [%s]\n", c.Source)
	}
}
