package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/matsen/bibval/internal/entry"
)

// Title truncation length for human-readable listings.
const listTitleMaxLen = 70

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError writes an error message to stderr and returns the exit code.
func outputError(code int, format string, args ...interface{}) int {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	return code
}

// exitWithError writes an error message to stderr and exits.
func exitWithError(code int, format string, args ...interface{}) {
	os.Exit(outputError(code, format, args...))
}

// truncate shortens a string to maxLen, appending "..." when cut.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// severityMarker returns the marker used for a discrepancy in human output.
func severityMarker(s entry.Severity) string {
	switch s {
	case entry.SeverityError:
		return "✗"
	case entry.SeverityWarning:
		return "!"
	default:
		return "i"
	}
}
