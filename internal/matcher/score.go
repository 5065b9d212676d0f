package matcher

import (
	"strings"

	"github.com/matsen/bibval/internal/entry"
)

// TitleSimilarity returns the similarity of the normalized titles, or 0.0
// if either title is unknown.
func (m *Matcher) TitleSimilarity(a, b entry.Entry) float64 {
	if !a.HasTitle() || !b.HasTitle() {
		return 0.0
	}
	return normalizedSimilarity(a.Title, b.Title)
}

// YearsCompatible reports whether two entries could plausibly describe the
// same publication, year-wise. An unknown year on either side gives no
// filtering signal and counts as compatible.
func (m *Matcher) YearsCompatible(a, b entry.Entry) bool {
	if !a.HasYear() || !b.HasYear() {
		return true
	}
	diff := a.Year - b.Year
	if diff < 0 {
		diff = -diff
	}
	return diff <= m.t.MaxYearDifference
}

// AuthorOverlap returns the fraction of local authors that have at least
// one match among the remote authors. A match is full-name similarity at or
// above the author threshold, or last-name similarity at or above the
// last-name threshold ("John Smith" vs "J. Smith"). Returns 1.0 when either
// list is empty, since no overlap can be computed.
func (m *Matcher) AuthorOverlap(local, remote entry.Entry) float64 {
	if len(local.Authors) == 0 || len(remote.Authors) == 0 {
		return 1.0
	}

	matches := 0
	for _, localAuthor := range local.Authors {
		localNorm := entry.NormalizeString(localAuthor)
		localLast := lastName(localNorm)

		for _, remoteAuthor := range remote.Authors {
			remoteNorm := entry.NormalizeString(remoteAuthor)

			if Similarity(localNorm, remoteNorm) >= m.t.AuthorMatch ||
				Similarity(localLast, lastName(remoteNorm)) >= m.t.LastNameMatch {
				matches++
				break
			}
		}
	}

	return float64(matches) / float64(len(local.Authors))
}

// MatchScore computes a combined confidence score in [0, 1] that candidate
// describes the same publication as target. Hard filters (title, year,
// author overlap) force 0.0; an exact DOI match forces 1.0; otherwise the
// score blends title similarity with author overlap.
func (m *Matcher) MatchScore(target, candidate entry.Entry) float64 {
	titleSim := m.TitleSimilarity(target, candidate)

	if titleSim < m.t.TitleMatch {
		return 0.0
	}

	if !m.YearsCompatible(target, candidate) {
		return 0.0
	}

	authorSim := m.AuthorOverlap(target, candidate)

	if len(target.Authors) > 0 && len(candidate.Authors) > 0 && authorSim < m.t.MinAuthorOverlap {
		return 0.0
	}

	// Exact DOI identity overrides the blend.
	if target.HasDOI() && candidate.HasDOI() &&
		strings.EqualFold(entry.NormalizeDOI(target.DOI), entry.NormalizeDOI(candidate.DOI)) {
		return 1.0
	}

	return titleSim*m.t.TitleWeight + authorSim*m.t.AuthorWeight
}

// Match pairs a candidate entry with its match score.
type Match struct {
	Entry entry.Entry `json:"entry"`
	Score float64     `json:"score"`
}

// FindBestMatch scores every candidate against the target and returns the
// highest-scoring one, or nil if no candidate scores above 0.0. Ties keep
// the first candidate encountered.
func (m *Matcher) FindBestMatch(target entry.Entry, candidates []entry.Entry) *Match {
	var best *Match
	for _, c := range candidates {
		score := m.MatchScore(target, c)
		if score <= 0.0 {
			continue
		}
		if best == nil || score > best.Score {
			best = &Match{Entry: c, Score: score}
		}
	}
	return best
}
