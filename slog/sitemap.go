// Package slog provides logging decorators for the inlink pipeline
// services using the standard structured logger.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/inlink"
)

// Ensure LoggingSitemapService implements inlink.SitemapService.
var _ inlink.SitemapService = (*LoggingSitemapService)(nil)

// LoggingSitemapService wraps a SitemapService with debug logging.
type LoggingSitemapService struct {
	next   inlink.SitemapService
	logger *slog.Logger
}

// NewLoggingSitemapService creates a new LoggingSitemapService.
func NewLoggingSitemapService(next inlink.SitemapService, logger *slog.Logger) *LoggingSitemapService {
	return &LoggingSitemapService{next: next, logger: logger}
}

// ResolveURLs delegates to the wrapped service and logs the operation.
func (s *LoggingSitemapService) ResolveURLs(ctx context.Context, sitemapURL string, filter *inlink.URLFilter) (urls []string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("sitemap resolve",
			"url", sitemapURL,
			"count", len(urls),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ResolveURLs(ctx, sitemapURL, filter)
}
