// Package http provides HTTP implementations of inlink.SitemapService and
// inlink.Fetcher for static sites that don't require JavaScript rendering.
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/fwojciec/inlink"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultMaxBodySize limits how much of a response body is read.
const DefaultMaxBodySize = 10 * 1024 * 1024

// Option configures a Fetcher or SitemapService.
type Option func(*client)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
// Ignored when WithHTTPClient is used.
func WithTimeout(d time.Duration) Option {
	return func(c *client) {
		c.timeout = d
	}
}

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *client) {
		c.http = hc
	}
}

// WithPoliteness sets the user agent pool requests draw from.
func WithPoliteness(p inlink.Politeness) Option {
	return func(c *client) {
		c.politeness = p
	}
}

// WithMaxBodySize limits the number of body bytes read per response.
func WithMaxBodySize(n int64) Option {
	return func(c *client) {
		c.maxBodySize = n
	}
}

// client holds the request plumbing shared by Fetcher and SitemapService.
type client struct {
	http        *http.Client
	timeout     time.Duration
	politeness  inlink.Politeness
	maxBodySize int64
}

func newClient(opts ...Option) *client {
	c := &client{
		timeout:     DefaultFetchTimeout,
		politeness:  inlink.DefaultPoliteness(),
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: c.timeout}
	}
	return c
}

// get issues a GET with a freshly picked user agent. The caller must close
// the response body. Non-2xx responses are returned as errors.
func (c *client) get(ctx context.Context, targetURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.politeness.UserAgent())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, targetURL)
	}

	return resp, nil
}
