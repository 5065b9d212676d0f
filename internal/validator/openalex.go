package validator

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/matsen/bibval/internal/entry"
)

// OpenAlexBaseURL is the OpenAlex API base URL.
const OpenAlexBaseURL = "https://api.openalex.org"

// OpenAlexClient queries the OpenAlex works API.
type OpenAlexClient struct {
	client
}

// NewOpenAlexClient creates an OpenAlex validator.
func NewOpenAlexClient(opts ...ClientOption) *OpenAlexClient {
	return &OpenAlexClient{client: newClient(OpenAlexBaseURL, opts...)}
}

// Name returns the source identifier.
func (c *OpenAlexClient) Name() string { return "OpenAlex" }

type openAlexSearchResponse struct {
	Results []openAlexWork `json:"results"`
}

type openAlexWork struct {
	ID              string               `json:"id"`
	Title           string               `json:"title"`
	Authorships     []openAlexAuthorship `json:"authorships"`
	PublicationYear int                  `json:"publication_year"`
	PrimaryLocation *openAlexLocation    `json:"primary_location"`
	DOI             string               `json:"doi"`
}

type openAlexAuthorship struct {
	Author *openAlexAuthor `json:"author"`
}

type openAlexAuthor struct {
	DisplayName string `json:"display_name"`
}

type openAlexLocation struct {
	Source *openAlexSource `json:"source"`
}

type openAlexSource struct {
	DisplayName string `json:"display_name"`
}

func (w openAlexWork) toEntry() entry.Entry {
	e := entry.New(w.ID, "article")
	e.Title = w.Title
	e.Year = w.PublicationYear

	if w.PrimaryLocation != nil && w.PrimaryLocation.Source != nil {
		e.Venue = w.PrimaryLocation.Source.DisplayName
	}

	for _, a := range w.Authorships {
		if a.Author != nil && a.Author.DisplayName != "" {
			e.Authors = append(e.Authors, a.Author.DisplayName)
		}
	}

	// OpenAlex returns the DOI as a full URL.
	e.DOI = strings.Replace(w.DOI, "https://doi.org/", "", 1)

	return e
}

// SearchByDOI looks up a work by DOI.
func (c *OpenAlexClient) SearchByDOI(ctx context.Context, doi string) (*entry.Entry, error) {
	reqURL := fmt.Sprintf("%s/works/doi:%s%s", c.baseURL, doi, c.mailtoParam("?"))

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

	var work openAlexWork
	if err := decodeJSON(resp, &work, c.Name()); err != nil {
		return nil, err
	}

	e := work.toEntry()
	return &e, nil
}

// SearchByTitle searches works by title relevance.
func (c *OpenAlexClient) SearchByTitle(ctx context.Context, title string) ([]entry.Entry, error) {
	reqURL := fmt.Sprintf("%s/works?search=%s&per_page=%d%s",
		c.baseURL, url.QueryEscape(title), searchLimit, c.mailtoParam("&"))

	resp, err := c.get(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, nil
	}

	var search openAlexSearchResponse
	if err := decodeJSON(resp, &search, c.Name()); err != nil {
		return nil, err
	}

	entries := make([]entry.Entry, 0, len(search.Results))
	for _, w := range search.Results {
		entries = append(entries, w.toEntry())
	}

	return entries, nil
}

// mailtoParam returns the polite-pool query fragment, or "" when unset.
func (c *OpenAlexClient) mailtoParam(sep string) string {
	if c.mailto == "" {
		return ""
	}
	return sep + "mailto=" + url.QueryEscape(c.mailto)
}
