package main

import (
	"context"
	"time"

	"github.com/matsen/bibval/internal/entry"
	"github.com/matsen/bibval/internal/matcher"
	"github.com/matsen/bibval/internal/validator"
)

// rateLimitBackoff is how long to wait before the single retry after a
// source throttles a request.
const rateLimitBackoff = 2 * time.Second

// EntryResult is the validation outcome for one local entry.
type EntryResult struct {
	EntryID       string              `json:"entry_id"`
	Title         string              `json:"title,omitempty"`
	Found         bool                `json:"found"`
	Source        string              `json:"source,omitempty"`
	Score         float64             `json:"score,omitempty"`
	Discrepancies []entry.Discrepancy `json:"discrepancies"`
	SourceErrors  []string            `json:"source_errors,omitempty"`
}

// searchByDOI performs a DOI lookup with one backoff-and-retry on rate
// limiting. Parse failures and repeated throttling are returned to the
// caller, which skips the source for this lookup.
func searchByDOI(ctx context.Context, v validator.Validator, doi string) (*entry.Entry, error) {
	result, err := v.SearchByDOI(ctx, doi)
	if validator.IsRateLimited(err) {
		time.Sleep(rateLimitBackoff)
		result, err = v.SearchByDOI(ctx, doi)
	}
	return result, err
}

// searchByTitle performs a title search with one backoff-and-retry on rate
// limiting.
func searchByTitle(ctx context.Context, v validator.Validator, title string) ([]entry.Entry, error) {
	results, err := v.SearchByTitle(ctx, title)
	if validator.IsRateLimited(err) {
		time.Sleep(rateLimitBackoff)
		results, err = v.SearchByTitle(ctx, title)
	}
	return results, err
}

// validateEntry checks one local entry against the sources in order and
// returns the outcome from the first source that yields a usable remote
// record. DOI lookup is preferred; otherwise the best-scoring candidate
// from a title search is used. Source failures are recorded, never fatal.
func validateEntry(ctx context.Context, m *matcher.Matcher, sources []validator.Validator, local entry.Entry) EntryResult {
	result := EntryResult{
		EntryID:       local.ID,
		Title:         local.Title,
		Discrepancies: []entry.Discrepancy{},
	}

	for _, src := range sources {
		remote, score, err := fetchRemote(ctx, m, src, local)
		if err != nil {
			result.SourceErrors = append(result.SourceErrors, src.Name()+": "+err.Error())
			continue
		}
		if remote == nil {
			continue
		}

		result.Found = true
		result.Source = src.Name()
		result.Score = score
		result.Discrepancies = m.CompareEntries(local, *remote)
		return result
	}

	return result
}

// fetchRemote retrieves the best remote counterpart of local from one
// source. Returns (nil, 0, nil) when the source simply has no match.
func fetchRemote(ctx context.Context, m *matcher.Matcher, src validator.Validator, local entry.Entry) (*entry.Entry, float64, error) {
	if local.HasDOI() {
		remote, err := searchByDOI(ctx, src, local.DOI)
		if err != nil {
			return nil, 0, err
		}
		if remote != nil {
			return remote, m.MatchScore(local, *remote), nil
		}
	}

	if !local.HasTitle() {
		return nil, 0, nil
	}

	candidates, err := searchByTitle(ctx, src, local.Title)
	if err != nil {
		return nil, 0, err
	}

	best := m.FindBestMatch(local, candidates)
	if best == nil {
		return nil, 0, nil
	}
	return &best.Entry, best.Score, nil
}
