// Package bibtex reads locally authored .bib files into entries.
package bibtex

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/matsen/bibval/internal/entry"
)

// Regex patterns for line-oriented BibTeX scanning.
var (
	// Entry start: @type{key,
	entryStartRegex = regexp.MustCompile(`@(\w+)\s*\{\s*([^,\s]+)\s*,`)
	// Field line: name = {value} or name = "value", optional trailing comma
	fieldRegex = regexp.MustCompile(`(?i)^\s*(\w+)\s*=\s*[\{"](.*?)[\}"]\s*,?\s*$`)
)

// ParseFile reads a .bib file and returns its entries in file order.
// Entries only track the fields relevant to validation: title, author,
// year, doi, and venue (journal or booktitle).
func ParseFile(path string) ([]entry.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening bib file: %w", err)
	}
	defer f.Close()

	var entries []entry.Entry
	var current *entry.Entry

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()

		if matches := entryStartRegex.FindStringSubmatch(line); len(matches) > 2 {
			if current != nil {
				entries = append(entries, *current)
			}
			e := entry.New(matches[2], strings.ToLower(matches[1]))
			current = &e
			continue
		}

		if current == nil {
			continue
		}

		matches := fieldRegex.FindStringSubmatch(line)
		if len(matches) < 3 {
			continue
		}

		name := strings.ToLower(matches[1])
		value := cleanValue(matches[2])
		if value == "" {
			continue
		}

		switch name {
		case "title":
			current.Title = value
		case "author":
			current.Authors = splitAuthors(value)
		case "year":
			if year, err := strconv.Atoi(value); err == nil {
				current.Year = year
			}
		case "doi":
			current.DOI = entry.NormalizeDOI(value)
		case "journal", "booktitle":
			// journal wins if both appear; booktitle only fills a gap
			if name == "journal" || current.Venue == "" {
				current.Venue = value
			}
		}
	}

	if current != nil {
		entries = append(entries, *current)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading bib file: %w", err)
	}

	return entries, nil
}

// cleanValue strips protective braces and collapses whitespace in a BibTeX
// field value.
func cleanValue(v string) string {
	v = strings.ReplaceAll(v, "{", "")
	v = strings.ReplaceAll(v, "}", "")
	return strings.Join(strings.Fields(v), " ")
}

// splitAuthors splits a BibTeX author field on the "and" keyword. Names in
// "Last, First" form are flipped to "First Last" so all sources compare in
// the same shape.
func splitAuthors(value string) []string {
	parts := strings.Split(value, " and ")
	authors := make([]string, 0, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if idx := strings.Index(p, ","); idx > 0 {
			last := strings.TrimSpace(p[:idx])
			first := strings.TrimSpace(p[idx+1:])
			if first != "" {
				p = first + " " + last
			} else {
				p = last
			}
		}
		authors = append(authors, p)
	}

	return authors
}
