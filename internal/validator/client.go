package validator

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	// defaultTimeout is the default HTTP request timeout.
	defaultTimeout = 30 * time.Second

	// requestsPerSecond is a conservative shared default; the public APIs
	// used here all tolerate well above this rate.
	requestsPerSecond = 5.0

	// userAgent identifies bibval to the metadata sources.
	userAgent = "bibval/0.1.0 (https://github.com/matsen/bibval)"

	// searchLimit is the number of candidates requested per title search.
	searchLimit = 5
)

// client holds the HTTP plumbing shared by all validator implementations.
type client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	mailto     string
}

// ClientOption configures a validator client.
type ClientOption func(*client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) ClientOption {
	return func(c *client) {
		c.baseURL = url
	}
}

// WithMailto sets a contact address forwarded to sources that support
// polite-pool identification (OpenAlex).
func WithMailto(mailto string) ClientOption {
	return func(c *client) {
		c.mailto = mailto
	}
}

func newClient(baseURL string, opts ...ClientOption) client {
	c := client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		baseURL:    baseURL,
	}

	for _, opt := range opts {
		opt(&c)
	}

	return c
}

// get performs a rate-limited GET. HTTP 429 maps to ErrRateLimited;
// transport failures map to ErrNetworkError. Other statuses are left for
// the caller to interpret, since "not found" semantics differ per endpoint.
func (c *client) get(ctx context.Context, url string) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: status %d", ErrRateLimited, resp.StatusCode)
	}

	return resp, nil
}

// decodeJSON decodes a response body, wrapping failures as ParseError.
func decodeJSON(resp *http.Response, v any, source string) error {
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return &ParseError{Source: source, Detail: "decoding JSON body", Err: err}
	}
	return nil
}
