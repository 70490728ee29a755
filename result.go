package inlink

import "context"

// Result is the outcome of scanning one sitemap.
type Result struct {
	SitemapURL string
	Keywords   []string

	// URLs holds the resolved sitemap URLs in document order.
	URLs []string

	// Occurrences holds every keyword hit, ordered by page, keyword,
	// text unit and token position.
	Occurrences []Occurrence

	// Failures holds pages that could not be fetched or parsed.
	// They contribute no occurrences and do not abort the scan.
	Failures []PageFailure
}

// PageFailure records a non-fatal error for a single page.
type PageFailure struct {
	URL string
	Err error
}

// ResultStore persists a scan result with atomic semantics.
// Save writes to a pending location; Commit makes it permanent;
// Abort discards it.
type ResultStore interface {
	Save(ctx context.Context, result *Result) error
	Commit() error
	Abort() error
}
