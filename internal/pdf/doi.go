// Package pdf extracts bibliographic identifiers from PDF files so they
// can be validated against metadata sources.
package pdf

import (
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// doiSearchPages limits how deep the DOI scan goes; publishers put the DOI
// on the first page, occasionally the second.
const doiSearchPages = 3

// DOI pattern: 10.XXXX/... where XXXX is 4+ digits.
var doiPattern = regexp.MustCompile(`10\.\d{4,9}/[^\s<>"{}|\\^~\[\]` + "`" + `]+`)

// ExtractDOI scans the leading pages of a PDF for a DOI. Returns "" (not
// an error) when no DOI is present.
func ExtractDOI(filePath string) (string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	maxPages := doiSearchPages
	if r.NumPage() < maxPages {
		maxPages = r.NumPage()
	}

	for i := 1; i <= maxPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		if doi := FindDOI(text); doi != "" {
			return doi, nil
		}
	}

	return "", nil
}

// ExtractTitle guesses the paper title from the first page: the first
// substantial line that does not look like a running header. Used as the
// search fallback when a PDF carries no DOI.
func ExtractTitle(filePath string) (string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if r.NumPage() < 1 {
		return "", nil
	}

	page := r.Page(1)
	if page.V.IsNull() {
		return "", nil
	}

	text, err := page.GetPlainText(nil)
	if err != nil {
		return "", nil
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) > 20 && !isHeaderLine(line) {
			return line, nil
		}
	}

	return "", nil
}

// FindDOI returns the first plausible DOI in free text, or "".
func FindDOI(text string) string {
	for _, match := range doiPattern.FindAllString(text, -1) {
		match = strings.TrimRight(match, ".,;:)")
		if isValidDOI(match) {
			return match
		}
	}
	return ""
}

// isValidDOI performs basic shape validation on a DOI candidate.
func isValidDOI(doi string) bool {
	if len(doi) < 10 || !strings.HasPrefix(doi, "10.") {
		return false
	}
	slashIdx := strings.Index(doi, "/")
	return slashIdx != -1 && slashIdx < len(doi)-1
}

// isHeaderLine checks if a line is likely a running header or footer
// rather than the title.
func isHeaderLine(line string) bool {
	lower := strings.ToLower(line)
	switch {
	case strings.Contains(lower, "journal"):
		return true
	case strings.Contains(lower, "volume") && strings.Contains(lower, "issue"):
		return true
	case strings.Contains(lower, "copyright"):
		return true
	case strings.Contains(lower, "article") && strings.Contains(lower, "published"):
		return true
	}
	return false
}
