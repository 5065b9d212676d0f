package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matsen/bibval/internal/config"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Get or set configuration values",
	Long: `Get or set global configuration values.

Usage:
  bibval config                             # Show all config
  bibval config mailto                      # Get specific value
  bibval config mailto you@example.org      # Set value
  bibval config timeout-seconds 60          # Set request timeout

Keys:
  mailto           Contact address for polite-pool sources (OpenAlex)
  timeout-seconds  HTTP request timeout for source lookups
  report-path      Location of the saved-run database`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()

	// No args: show all config
	if len(args) == 0 {
		if humanOutput {
			fmt.Printf("mailto:          %s\n", cfg.Mailto)
			fmt.Printf("timeout-seconds: %d\n", cfg.TimeoutSeconds)
			fmt.Printf("report-path:     %s\n", cfg.ReportPath)
			return nil
		}
		return outputJSON(cfg)
	}

	key := args[0]

	// One arg: get value
	if len(args) == 1 {
		switch key {
		case "mailto":
			fmt.Println(cfg.Mailto)
		case "timeout-seconds":
			fmt.Println(cfg.TimeoutSeconds)
		case "report-path":
			fmt.Println(cfg.ReportPath)
		default:
			return fmt.Errorf("unknown config key: %s", key)
		}
		return nil
	}

	// Two args: set value
	value := args[1]
	switch key {
	case "mailto":
		cfg.Mailto = value
	case "timeout-seconds":
		seconds, err := strconv.Atoi(value)
		if err != nil || seconds < 0 {
			return fmt.Errorf("timeout-seconds must be a non-negative integer")
		}
		cfg.TimeoutSeconds = seconds
	case "report-path":
		cfg.ReportPath = value
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}

	if err := cfg.Save(); err != nil {
		exitWithError(ExitConfigError, "saving config: %v", err)
	}

	if humanOutput {
		fmt.Printf("Set %s = %s\n", key, value)
	} else {
		outputJSON(map[string]string{"key": key, "value": value, "path": config.Path()})
	}
	return nil
}
