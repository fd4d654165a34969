// Package cellar retrieves document HTML from the Publications Office
// content repository by CELEX or CELLAR identifier.
package cellar

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is the Publications Office resource root.
const DefaultBaseURL = "http://publications.europa.eu"

// StatusError reports a non-success HTTP response from the repository.
type StatusError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("cellar: %s returned status %d: %s", e.URL, e.StatusCode, e.Body)
}

// Retryable reports whether the failure is likely transient. Server
// errors and throttling qualify, client errors do not.
func (e *StatusError) Retryable() bool {
	return e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests
}

// Client fetches rendered document HTML. Responses are cached in memory
// for a configurable TTL so repeated extractions of the same document
// do not re-hit the repository.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *bodyCache
	stats      *FetchStats
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the repository root, e.g. for tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithCacheTTL sets how long fetched bodies stay cached. Zero or
// negative disables caching.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) {
		if ttl > 0 {
			c.cache = newBodyCache(ttl)
		} else {
			c.cache = nil
		}
	}
}

// NewClient creates a Client against the public repository with a
// 60 second request timeout and a one hour body cache.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		cache:      newBodyCache(time.Hour),
		stats:      NewFetchStats(time.Hour),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Stats exposes the rolling fetch latency window.
func (c *Client) Stats() *FetchStats {
	return c.stats
}

// HTMLByCELEX fetches the HTML rendition of the document with the
// given CELEX identifier.
func (c *Client) HTMLByCELEX(ctx context.Context, celexID string) (string, error) {
	return c.fetch(ctx, c.baseURL+"/resource/celex/"+celexID)
}

// HTMLByCellar fetches the HTML rendition of the document with the
// given CELLAR identifier. A "cellar:" prefix is stripped if present.
func (c *Client) HTMLByCellar(ctx context.Context, cellarID string) (string, error) {
	if _, rest, ok := strings.Cut(cellarID, ":"); ok {
		cellarID = rest
	}
	return c.fetch(ctx, c.baseURL+"/resource/cellar/"+cellarID)
}

func (c *Client) fetch(ctx context.Context, url string) (string, error) {
	if c.cache != nil {
		if body, ok := c.cache.Get(url); ok {
			return body, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("cellar: build request: %w", err)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml")
	req.Header.Set("Accept-Language", "en")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("cellar: fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", &StatusError{
			StatusCode: resp.StatusCode,
			URL:        url,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("cellar: read %s: %w", url, err)
	}
	c.stats.Record(time.Since(start).Milliseconds())

	html := string(body)
	if c.cache != nil {
		c.cache.Set(url, html)
	}
	return html, nil
}

// Close releases idle connections held by the underlying transport.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
