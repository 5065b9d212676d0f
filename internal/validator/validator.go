// Package validator provides clients for external bibliographic metadata
// sources. Each client satisfies the Validator capability: lookup by DOI,
// search by title, and a stable name for diagnostics.
package validator

import (
	"context"
	"errors"
	"fmt"

	"github.com/matsen/bibval/internal/entry"
)

// Validator is the capability contract for a bibliographic data source.
// Implementations must be safe for concurrent use.
type Validator interface {
	// SearchByDOI looks up a single entry by DOI.
	// Returns (nil, nil) when the source has no record; that is not an error.
	SearchByDOI(ctx context.Context, doi string) (*entry.Entry, error)

	// SearchByTitle searches for candidate entries by title.
	// Returns an empty slice when nothing is found or the source signals
	// non-success.
	SearchByTitle(ctx context.Context, title string) ([]entry.Entry, error)

	// Name returns a stable human-readable source identifier.
	Name() string
}

// Common errors returned by validator clients.
var (
	// ErrRateLimited indicates the source throttled the request.
	// Retryable: back off and retry the same request.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrNetworkError indicates a connectivity problem reaching the source.
	ErrNetworkError = errors.New("network error")
)

// ParseError indicates a response that could not be decoded. Non-retryable
// for that response; callers should skip the source for this lookup.
type ParseError struct {
	Source string
	Detail string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parsing %s response: %s: %v", e.Source, e.Detail, e.Err)
	}
	return fmt.Sprintf("parsing %s response: %s", e.Source, e.Detail)
}

func (e *ParseError) Unwrap() error { return e.Err }

// IsRateLimited returns true if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// IsParseError returns true if the error is a response decoding failure.
func IsParseError(err error) bool {
	var parseErr *ParseError
	return errors.As(err, &parseErr)
}

// Sources returns all available validators in a fixed order.
func Sources(opts ...ClientOption) []Validator {
	return []Validator{
		NewOpenAlexClient(opts...),
		NewOpenLibraryClient(opts...),
		NewOpenReviewClient(opts...),
	}
}
