// Package matcher compares bibliographic entries: field-level discrepancy
// detection between a local and a remote entry, and combined match scoring
// for selecting the best candidate among fetched records.
package matcher

import "github.com/matsen/bibval/internal/entry"

// Winkler prefix bonus parameters. Paper titles routinely share a long
// leading phrase; the usual 0.1 scale pushes near-miss titles past the
// warning thresholds, so the bonus is halved to keep them distinguishable.
const (
	winklerPrefixScale = 0.05
	winklerMaxPrefix   = 4
)

// Similarity returns the Jaro-Winkler similarity of two normalized strings
// in [0, 1], where 1 means identical, weighted toward shared prefixes.
// This is the single primitive behind every fuzzy comparison in the
// package; callers normalize first.
func Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}

	ra, rb := []rune(a), []rune(b)
	jaro := jaroSimilarity(ra, rb)

	prefix := 0
	for i := 0; i < len(ra) && i < len(rb) && i < winklerMaxPrefix; i++ {
		if ra[i] != rb[i] {
			break
		}
		prefix++
	}

	return jaro + float64(prefix)*winklerPrefixScale*(1.0-jaro)
}

// jaroSimilarity is the unweighted Jaro similarity: matches are paired
// within a window of half the longer length minus one, transpositions
// counted pairwise over the matched sequences.
func jaroSimilarity(a, b []rune) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	window := max(len(a), len(b))/2 - 1
	if window < 0 {
		window = 0
	}

	aMatched := make([]bool, len(a))
	bMatched := make([]bool, len(b))

	matches := 0
	for i := range a {
		start := i - window
		if start < 0 {
			start = 0
		}
		end := i + window + 1
		if end > len(b) {
			end = len(b)
		}

		for j := start; j < end; j++ {
			if bMatched[j] || a[i] != b[j] {
				continue
			}
			aMatched[i] = true
			bMatched[j] = true
			matches++
			break
		}
	}

	if matches == 0 {
		return 0.0
	}

	transpositions := 0
	k := 0
	for i := range a {
		if !aMatched[i] {
			continue
		}
		for !bMatched[k] {
			k++
		}
		if a[i] != b[k] {
			transpositions++
		}
		k++
	}

	m := float64(matches)
	t := float64(transpositions) / 2

	return (m/float64(len(a)) + m/float64(len(b)) + (m-t)/m) / 3
}

// normalizedSimilarity normalizes both inputs and compares them.
func normalizedSimilarity(a, b string) float64 {
	return Similarity(entry.NormalizeString(a), entry.NormalizeString(b))
}
