package matcher

import (
	"fmt"
	"strings"

	"github.com/matsen/bibval/internal/entry"
)

// Matcher compares entries under a set of thresholds. The zero value is
// not usable; construct with New or NewWithThresholds. All methods are
// pure functions of their inputs and safe for concurrent use.
type Matcher struct {
	t Thresholds
}

// New returns a Matcher using the default thresholds.
func New() *Matcher {
	return &Matcher{t: DefaultThresholds()}
}

// NewWithThresholds returns a Matcher using custom thresholds.
func NewWithThresholds(t Thresholds) *Matcher {
	return &Matcher{t: t}
}

// Thresholds returns the comparison policy in effect.
func (m *Matcher) Thresholds() Thresholds {
	return m.t
}

// CompareEntries compares a local entry against a remote entry and returns
// the detected discrepancies in fixed field order: title, year, authors,
// DOI, venue. A field is only evaluated when both sides know it, except
// DOI, which flags a local gap when only the remote side has one.
func (m *Matcher) CompareEntries(local, remote entry.Entry) []entry.Discrepancy {
	var discrepancies []entry.Discrepancy

	// Titles
	if local.HasTitle() && remote.HasTitle() {
		sim := normalizedSimilarity(local.Title, remote.Title)

		if sim < m.t.TitleMatch {
			discrepancies = append(discrepancies, entry.Discrepancy{
				Field:       entry.FieldTitle,
				Severity:    entry.SeverityError,
				LocalValue:  local.Title,
				RemoteValue: remote.Title,
				Message:     fmt.Sprintf("Title significantly different (similarity: %.0f%%)", sim*100),
			})
		} else if sim < m.t.TitleWarning {
			discrepancies = append(discrepancies, entry.Discrepancy{
				Field:       entry.FieldTitle,
				Severity:    entry.SeverityWarning,
				LocalValue:  local.Title,
				RemoteValue: remote.Title,
				Message:     fmt.Sprintf("Title slightly different (similarity: %.0f%%)", sim*100),
			})
		}
	}

	// Years
	if local.HasYear() && remote.HasYear() && local.Year != remote.Year {
		discrepancies = append(discrepancies, entry.Discrepancy{
			Field:       entry.FieldYear,
			Severity:    entry.SeverityError,
			LocalValue:  fmt.Sprintf("%d", local.Year),
			RemoteValue: fmt.Sprintf("%d", remote.Year),
			Message:     fmt.Sprintf("Year mismatch: %d vs %d", local.Year, remote.Year),
		})
	}

	// Authors
	discrepancies = append(discrepancies, m.compareAuthors(local.Authors, remote.Authors)...)

	// Missing DOI in the local entry. Intentionally asymmetric: the goal is
	// to prompt enrichment of the local record, never removal of remote data.
	if !local.HasDOI() && remote.HasDOI() {
		discrepancies = append(discrepancies, entry.Discrepancy{
			Field:       entry.FieldDOI,
			Severity:    entry.SeverityWarning,
			LocalValue:  "(none)",
			RemoteValue: remote.DOI,
			Message:     "Missing DOI in local entry",
		})
	}

	// Venues
	if local.HasVenue() && remote.HasVenue() {
		sim := normalizedSimilarity(local.Venue, remote.Venue)

		if sim < m.t.VenueMatch {
			discrepancies = append(discrepancies, entry.Discrepancy{
				Field:       entry.FieldVenue,
				Severity:    entry.SeverityInfo,
				LocalValue:  local.Venue,
				RemoteValue: remote.Venue,
				Message:     "Venue name differs",
			})
		}
	}

	return discrepancies
}

// compareAuthors checks author lists: count mismatch first, then each local
// author against its best remote counterpart. Either list being empty means
// there is no signal to give.
func (m *Matcher) compareAuthors(local, remote []string) []entry.Discrepancy {
	var discrepancies []entry.Discrepancy

	if len(local) == 0 || len(remote) == 0 {
		return discrepancies
	}

	if len(local) != len(remote) {
		discrepancies = append(discrepancies, entry.Discrepancy{
			Field:       entry.FieldAuthors,
			Severity:    entry.SeverityWarning,
			LocalValue:  fmt.Sprintf("%d authors", len(local)),
			RemoteValue: fmt.Sprintf("%d authors", len(remote)),
			Message:     fmt.Sprintf("Author count differs: %d (local) vs %d (remote)", len(local), len(remote)),
		})
	}

	// Each local author is matched independently; remote authors are not
	// consumed across checks. A local author counts as matched on full-name
	// similarity or on last-name similarity, the same rule AuthorOverlap
	// applies ("John Smith" vs "J. Smith"). Ties keep the first-encountered
	// remote author.
	for _, localAuthor := range local {
		localNorm := entry.NormalizeString(localAuthor)
		localLast := lastName(localNorm)

		bestAuthor := ""
		bestSim := -1.0
		matched := false
		for _, remoteAuthor := range remote {
			remoteNorm := entry.NormalizeString(remoteAuthor)

			sim := Similarity(localNorm, remoteNorm)
			if sim > bestSim {
				bestAuthor = remoteAuthor
				bestSim = sim
			}
			if sim >= m.t.AuthorMatch ||
				Similarity(localLast, lastName(remoteNorm)) >= m.t.LastNameMatch {
				matched = true
			}
		}

		if !matched {
			discrepancies = append(discrepancies, entry.Discrepancy{
				Field:       entry.FieldAuthors,
				Severity:    entry.SeverityWarning,
				LocalValue:  localAuthor,
				RemoteValue: bestAuthor,
				Message:     fmt.Sprintf("Author name spelling may differ: '%s' vs '%s'", localAuthor, bestAuthor),
			})
		}
	}

	return discrepancies
}

// lastName returns the final whitespace-delimited token of a normalized name.
func lastName(normalized string) string {
	fields := strings.Fields(normalized)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}
