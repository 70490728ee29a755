package http

import (
	"context"
	"io"

	"github.com/fwojciec/inlink"
	"golang.org/x/net/html/charset"
)

// Ensure Fetcher implements inlink.Fetcher at compile time.
var _ inlink.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using HTTP requests.
// Every request carries a user agent drawn from the configured pool.
type Fetcher struct {
	client *client
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	return &Fetcher{client: newClient(opts...)}
}

// Fetch retrieves the HTML content from the given URL, decoded to UTF-8
// according to the response Content-Type and any <meta charset>.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	resp, err := f.client.get(ctx, url)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", inlink.Errorf(inlink.EPAGEFETCH, "retrieving %s: %v", url, err)
	}
	defer resp.Body.Close()

	body := io.LimitReader(resp.Body, f.client.maxBodySize)
	r, err := charset.NewReader(body, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", inlink.Errorf(inlink.EPAGEFETCH, "decoding %s: %v", url, err)
	}

	b, err := io.ReadAll(r)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", inlink.Errorf(inlink.EPAGEFETCH, "reading %s: %v", url, err)
	}

	return string(b), nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
