package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matsen/bibval/internal/bibtex"
	"github.com/matsen/bibval/internal/entry"
	"github.com/matsen/bibval/internal/storage"
	"github.com/matsen/bibval/internal/validator"
)

var (
	checkSave  bool
	checkEntry string
)

func init() {
	checkCmd.Flags().BoolVar(&checkSave, "save", false, "Save findings to the report database")
	checkCmd.Flags().StringVar(&checkEntry, "entry", "", "Check only the entry with this citation key")
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check <file.bib>",
	Short: "Validate bibliography entries against metadata sources",
	Long: `Validate every entry of a .bib file against external metadata sources.

Each entry is looked up by DOI when it has one, otherwise by title search
with best-candidate selection. Detected discrepancies are reported per
field with a severity (error, warning, info).

Examples:
  bibval check refs.bib                 # Check all entries
  bibval check refs.bib --entry smith21 # Check a single entry
  bibval check refs.bib --save          # Persist findings for 'bibval report'`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

// CheckResult is the outcome of a check command.
type CheckResult struct {
	BibPath string        `json:"bib_path"`
	Checked int           `json:"checked"`
	Found   int           `json:"found"`
	Issues  int           `json:"issues"`
	Entries []EntryResult `json:"entries"`
	RunID   int64         `json:"run_id,omitempty"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	entries, err := bibtex.ParseFile(args[0])
	if err != nil {
		exitWithError(ExitDataError, "reading bibliography: %v", err)
	}

	if checkEntry != "" {
		entries = filterByID(entries, checkEntry)
		if len(entries) == 0 {
			exitWithError(ExitDataError, "entry %q not found in %s", checkEntry, args[0])
		}
	}

	cfg := mustLoadConfig()
	m := newMatcher(cfg)
	sources := validator.Sources(sourceOptions(cfg)...)

	started := time.Now()
	ctx := context.Background()

	result := CheckResult{
		BibPath: args[0],
		Entries: make([]EntryResult, 0, len(entries)),
	}

	for _, e := range entries {
		er := validateEntry(ctx, m, sources, e)
		result.Checked++
		if er.Found {
			result.Found++
		}
		result.Issues += len(er.Discrepancies)
		result.Entries = append(result.Entries, er)
	}

	if checkSave {
		db := mustOpenReports(cfg)
		defer db.Close()

		runID, err := db.SaveRun(args[0], started, collectFindings(result.Entries))
		if err != nil {
			exitWithError(ExitError, "saving run: %v", err)
		}
		result.RunID = runID
	}

	if humanOutput {
		printCheckResult(result)
		return nil
	}
	return outputJSON(result)
}

func filterByID(entries []entry.Entry, id string) []entry.Entry {
	for _, e := range entries {
		if e.ID == id {
			return []entry.Entry{e}
		}
	}
	return nil
}

// collectFindings flattens entry results into persistable findings.
func collectFindings(entries []EntryResult) []storage.Finding {
	var findings []storage.Finding
	for _, er := range entries {
		for _, d := range er.Discrepancies {
			findings = append(findings, storage.Finding{
				EntryID:     er.EntryID,
				Source:      er.Source,
				Field:       string(d.Field),
				Severity:    string(d.Severity),
				LocalValue:  d.LocalValue,
				RemoteValue: d.RemoteValue,
				Message:     d.Message,
				Score:       er.Score,
			})
		}
	}
	return findings
}

func printCheckResult(result CheckResult) {
	for _, er := range result.Entries {
		switch {
		case !er.Found:
			fmt.Printf("? %s: no match found in any source\n", er.EntryID)
		case len(er.Discrepancies) == 0:
			fmt.Printf("✓ %s (%s, score %.2f)\n", er.EntryID, er.Source, er.Score)
		default:
			fmt.Printf("%s %s (%s, score %.2f)\n",
				severityMarker(worstSeverity(er.Discrepancies)), er.EntryID, er.Source, er.Score)
			for _, d := range er.Discrepancies {
				fmt.Printf("  %s [%s] %s\n", severityMarker(d.Severity), d.Field, d.Message)
				fmt.Printf("      local:  %s\n", truncate(d.LocalValue, listTitleMaxLen))
				fmt.Printf("      remote: %s\n", truncate(d.RemoteValue, listTitleMaxLen))
			}
		}
		for _, se := range er.SourceErrors {
			fmt.Printf("  (skipped source: %s)\n", se)
		}
	}

	fmt.Printf("\nChecked %d entries: %d found, %d issues\n",
		result.Checked, result.Found, result.Issues)
	if result.RunID > 0 {
		fmt.Printf("Saved as run %d\n", result.RunID)
	}
}

// worstSeverity returns the highest-ranked severity among discrepancies.
func worstSeverity(ds []entry.Discrepancy) entry.Severity {
	worst := entry.SeverityInfo
	for _, d := range ds {
		switch d.Severity {
		case entry.SeverityError:
			return entry.SeverityError
		case entry.SeverityWarning:
			worst = entry.SeverityWarning
		}
	}
	return worst
}
