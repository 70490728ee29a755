package http

import (
	"bufio"
	"compress/gzip"
	"context"
	"io"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/inlink"
)

// Ensure SitemapService implements inlink.SitemapService.
var _ inlink.SitemapService = (*SitemapService)(nil)

// SitemapService resolves page URLs from a sitemap document via HTTP.
type SitemapService struct {
	client *client
}

// NewSitemapService creates a new SitemapService.
func NewSitemapService(opts ...Option) *SitemapService {
	return &SitemapService{client: newClient(opts...)}
}

// ResolveURLs fetches the sitemap and returns the text of every <loc>
// element regardless of nesting depth, in document order.
// Returns an empty slice (not nil) if the sitemap lists no URLs.
func (s *SitemapService) ResolveURLs(ctx context.Context, sitemapURL string, filter *inlink.URLFilter) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := inlink.ValidateSitemapURL(sitemapURL); err != nil {
		return nil, err
	}

	resp, err := s.client.get(ctx, sitemapURL)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, inlink.Errorf(inlink.ESITEMAPFETCH, "retrieving sitemap: %v", err)
	}
	defer resp.Body.Close()

	body, err := decompress(io.LimitReader(resp.Body, s.client.maxBodySize))
	if err != nil {
		return nil, inlink.Errorf(inlink.ESITEMAPPARSE, "decompressing sitemap: %v", err)
	}

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, inlink.Errorf(inlink.ESITEMAPPARSE, "parsing sitemap XML: %v", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, inlink.Errorf(inlink.ESITEMAPPARSE, "empty sitemap XML")
	}

	urls := collectLocs(root, []string{})
	return filter.Apply(urls), nil
}

// collectLocs appends the text of every <loc> below el in document order.
func collectLocs(el *etree.Element, urls []string) []string {
	for _, child := range el.ChildElements() {
		if child.Tag == "loc" {
			if u := strings.TrimSpace(child.Text()); u != "" {
				urls = append(urls, u)
			}
			continue
		}
		urls = collectLocs(child, urls)
	}
	return urls
}

// decompress transparently gunzips bodies served as .xml.gz.
func decompress(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(2)
	if err != nil || magic[0] != 0x1f || magic[1] != 0x8b {
		return br, nil
	}
	return gzip.NewReader(br)
}
