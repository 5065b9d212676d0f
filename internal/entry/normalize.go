package entry

import (
	"strings"
	"unicode"
)

// NormalizeString canonicalizes free text for similarity comparison:
// lowercase, punctuation folded to spaces, whitespace collapsed to single
// separators. Raw values are kept separately for display.
func NormalizeString(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// NormalizeDOI normalizes a DOI for comparison.
// Removes common URL prefixes and lowercases.
func NormalizeDOI(doi string) string {
	doi = strings.TrimSpace(doi)
	doi = strings.TrimPrefix(doi, "https://doi.org/")
	doi = strings.TrimPrefix(doi, "http://doi.org/")
	doi = strings.TrimPrefix(doi, "doi.org/")
	doi = strings.TrimPrefix(doi, "doi:")
	return strings.ToLower(doi)
}
