package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/matsen/bibval/internal/entry"
)

var reportLimit int

func init() {
	reportCmd.Flags().IntVar(&reportLimit, "limit", 20, "Maximum number of runs to list")
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report [run-id]",
	Short: "List saved check runs or show one run's findings",
	Long: `List check runs saved with 'bibval check --save', or show the
findings of a specific run.

Examples:
  bibval report        # List recent runs
  bibval report 3      # Show findings of run 3`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	db := mustOpenReports(cfg)
	defer db.Close()

	if len(args) == 0 {
		runs, err := db.ListRuns(reportLimit)
		if err != nil {
			exitWithError(ExitError, "listing runs: %v", err)
		}

		if humanOutput {
			if len(runs) == 0 {
				fmt.Println("No saved runs.")
				return nil
			}
			for _, r := range runs {
				fmt.Printf("%4d  %s  %s (%d findings)\n",
					r.ID, r.StartedAt.Local().Format(time.DateTime), r.BibPath, r.FindingCount)
			}
			return nil
		}
		return outputJSON(runs)
	}

	runID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid run id %q", args[0])
	}

	findings, err := db.RunFindings(runID)
	if err != nil {
		exitWithError(ExitError, "loading findings: %v", err)
	}

	if humanOutput {
		if len(findings) == 0 {
			fmt.Println("No findings for this run.")
			return nil
		}
		for _, f := range findings {
			fmt.Printf("%s %s [%s] %s (via %s)\n",
				severityMarker(entry.Severity(f.Severity)), f.EntryID, f.Field, f.Message, f.Source)
		}
		return nil
	}
	return outputJSON(findings)
}
