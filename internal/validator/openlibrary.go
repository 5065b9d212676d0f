package validator

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/matsen/bibval/internal/entry"
)

// OpenLibraryBaseURL is the Open Library API base URL.
const OpenLibraryBaseURL = "https://openlibrary.org"

// yearPattern matches a 4-digit number plausible as a publication year.
var yearPattern = regexp.MustCompile(`\b(1[89]\d{2}|20\d{2})\b`)

// OpenLibraryClient queries the Open Library API. Primarily useful for
// books; it has no DOI index, so DOI lookups always yield no result.
type OpenLibraryClient struct {
	client
}

// NewOpenLibraryClient creates an Open Library validator.
func NewOpenLibraryClient(opts ...ClientOption) *OpenLibraryClient {
	return &OpenLibraryClient{client: newClient(OpenLibraryBaseURL, opts...)}
}

// Name returns the source identifier.
func (c *OpenLibraryClient) Name() string { return "Open Library" }

type openLibrarySearchResponse struct {
	Docs []openLibraryDoc `json:"docs"`
}

type openLibraryDoc struct {
	Key              string   `json:"key"`
	Title            string   `json:"title"`
	AuthorName       []string `json:"author_name"`
	FirstPublishYear int      `json:"first_publish_year"`
	Publisher        []string `json:"publisher"`
}

func (d openLibraryDoc) toEntry() entry.Entry {
	e := entry.New(d.Key, "book")
	e.Title = d.Title
	e.Year = d.FirstPublishYear
	e.Authors = d.AuthorName

	if len(d.Publisher) > 0 {
		e.Venue = d.Publisher[0]
	}

	return e
}

type openLibraryEdition struct {
	Title       string               `json:"title"`
	PublishDate string               `json:"publish_date"`
	Publishers  []string             `json:"publishers"`
	Works       []openLibraryWorkRef `json:"works"`
}

type openLibraryWorkRef struct {
	Key string `json:"key"`
}

type openLibraryWork struct {
	Title string `json:"title"`
}

func (b openLibraryEdition) toEntry() entry.Entry {
	e := entry.New("", "book")
	e.Title = b.Title
	e.Year = extractYear(b.PublishDate)

	if len(b.Publishers) > 0 {
		e.Venue = b.Publishers[0]
	}

	return e
}

// extractYear pulls a 4-digit year out of a free-form publish date such as
// "1996" or "January 1, 1996". Returns 0 when none is found.
func extractYear(date string) int {
	match := yearPattern.FindString(date)
	if match == "" {
		return 0
	}
	year, err := strconv.Atoi(match)
	if err != nil {
		return 0
	}
	return year
}

// SearchByDOI always yields no result; Open Library has no DOI index.
func (c *OpenLibraryClient) SearchByDOI(ctx context.Context, doi string) (*entry.Entry, error) {
	return nil, nil
}

// SearchByISBN looks up a book edition by ISBN, merging in work-level
// title and author details when the edition record is sparse.
func (c *OpenLibraryClient) SearchByISBN(ctx context.Context, isbn string) (*entry.Entry, error) {
	cleaned := cleanISBN(isbn)

	reqURL := fmt.Sprintf("%s/isbn/%s.json", c.baseURL, cleaned)

	resp, err := c.get(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusNotFound {
		resp.Body.Close()
		return nil, nil
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, nil
	}

	var edition openLibraryEdition
	if err := decodeJSON(resp, &edition, c.Name()); err != nil {
		return nil, err
	}

	e := edition.toEntry()

	if e.Title == "" && len(edition.Works) > 0 {
		if work, err := c.getWork(ctx, edition.Works[0].Key); err == nil && work != nil {
			e.Title = work.Title
		}
	}

	return &e, nil
}

func (c *OpenLibraryClient) getWork(ctx context.Context, workKey string) (*openLibraryWork, error) {
	reqURL := fmt.Sprintf("%s%s.json", c.baseURL, workKey)

	resp, err := c.get(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, nil
	}

	var work openLibraryWork
	if err := decodeJSON(resp, &work, c.Name()); err != nil {
		return nil, err
	}

	return &work, nil
}

// SearchByTitle searches book records by title.
func (c *OpenLibraryClient) SearchByTitle(ctx context.Context, title string) ([]entry.Entry, error) {
	reqURL := fmt.Sprintf(
		"%s/search.json?q=%s&limit=%d&fields=key,title,author_name,first_publish_year,publisher",
		c.baseURL, url.QueryEscape(title), searchLimit)

	resp, err := c.get(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, nil
	}

	var search openLibrarySearchResponse
	if err := decodeJSON(resp, &search, c.Name()); err != nil {
		return nil, err
	}

	entries := make([]entry.Entry, 0, len(search.Docs))
	for _, d := range search.Docs {
		entries = append(entries, d.toEntry())
	}

	return entries, nil
}

// cleanISBN strips hyphens and whitespace from an ISBN.
func cleanISBN(isbn string) string {
	var b strings.Builder
	for _, r := range isbn {
		if (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
