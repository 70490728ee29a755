package mock

import (
	"context"

	"github.com/fwojciec/inlink"
)

var _ inlink.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of inlink.SitemapService.
type SitemapService struct {
	ResolveURLsFn func(ctx context.Context, sitemapURL string, filter *inlink.URLFilter) ([]string, error)
}

func (s *SitemapService) ResolveURLs(ctx context.Context, sitemapURL string, filter *inlink.URLFilter) ([]string, error) {
	return s.ResolveURLsFn(ctx, sitemapURL, filter)
}
