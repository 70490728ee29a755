// Package scan orchestrates a keyword scan: it resolves a sitemap, fetches
// every listed page, extracts its text and collects keyword occurrences.
package scan

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/fwojciec/inlink"
	"golang.org/x/sync/errgroup"
)

// Scanner runs the occurrence pipeline over a single sitemap.
type Scanner struct {
	Sitemaps  inlink.SitemapService
	Fetcher   inlink.Fetcher
	Extractor inlink.Extractor

	// Throttle is waited on before every page request. Nil means no delay.
	Throttle inlink.Throttle

	// RateLimiter caps requests per host on top of Throttle. Optional.
	RateLimiter inlink.DomainLimiter

	// Concurrency is the number of pages processed at once.
	// Values below 2 process pages strictly one at a time.
	Concurrency int

	// RetryDelays holds the wait before each fetch retry. Nil disables retries.
	RetryDelays []time.Duration

	// Filter restricts which sitemap URLs are scanned. Optional.
	Filter *inlink.URLFilter

	// Logf receives retry notices. Optional.
	Logf LogFunc
}

// ProgressEvent reports progress during a scan.
type ProgressEvent struct {
	Type        ProgressType
	Completed   int
	Total       int
	URL         string
	Occurrences int
	Error       error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting scan progress.
// It is never called concurrently.
type ProgressFunc func(event ProgressEvent)

// pageResult holds the outcome of processing a single URL.
type pageResult struct {
	position    int
	url         string
	occurrences []inlink.Occurrence
	err         error
	done        bool
}

// Scan resolves sitemapURL and matches keywords against every page it lists.
//
// Invalid input is rejected before any request is made. A sitemap error ends
// the scan without fetching any page. Page errors are recorded in
// Result.Failures and the scan moves on. If ctx is canceled the partial
// result is returned together with the context error.
func (s *Scanner) Scan(ctx context.Context, sitemapURL string, keywords []string, progress ProgressFunc) (*inlink.Result, error) {
	if err := inlink.ValidateKeywords(keywords); err != nil {
		return nil, err
	}
	if err := inlink.ValidateSitemapURL(sitemapURL); err != nil {
		return nil, err
	}

	result := &inlink.Result{
		SitemapURL: sitemapURL,
		Keywords:   keywords,
	}

	urls, err := s.Sitemaps.ResolveURLs(ctx, sitemapURL, s.Filter)
	if err != nil {
		return result, err
	}
	result.URLs = urls

	total := len(urls)
	if progress == nil {
		progress = func(ProgressEvent) {}
	}
	progress(ProgressEvent{Type: ProgressStarted, Total: total})

	var pages []pageResult
	if s.Concurrency > 1 {
		pages = s.scanConcurrent(ctx, urls, keywords, progress)
	} else {
		pages = s.scanSequential(ctx, urls, keywords, progress)
	}

	// Assemble in sitemap order regardless of completion order.
	for _, page := range pages {
		if !page.done {
			continue
		}
		if page.err != nil {
			result.Failures = append(result.Failures, inlink.PageFailure{URL: page.url, Err: page.err})
			continue
		}
		result.Occurrences = append(result.Occurrences, page.occurrences...)
	}

	progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})

	return result, ctx.Err()
}

func (s *Scanner) scanSequential(ctx context.Context, urls, keywords []string, progress ProgressFunc) []pageResult {
	results := make([]pageResult, len(urls))
	for i, u := range urls {
		if ctx.Err() != nil {
			break
		}
		results[i] = s.processURL(ctx, i, u, keywords)
		report(progress, results[i], i+1, len(urls))
	}
	return results
}

func (s *Scanner) scanConcurrent(ctx context.Context, urls, keywords []string, progress ProgressFunc) []pageResult {
	resultCh := make(chan pageResult, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.Concurrency)

	go func() {
		for i, u := range urls {
			g.Go(func() error {
				resultCh <- s.processURL(gctx, i, u, keywords)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	// Collect results by position
	results := make([]pageResult, len(urls))
	var completed int
	for result := range resultCh {
		completed++
		results[result.position] = result
		report(progress, result, completed, len(urls))
	}
	return results
}

// processURL waits its turn, fetches one page and matches keywords against it.
func (s *Scanner) processURL(ctx context.Context, position int, pageURL string, keywords []string) pageResult {
	result := pageResult{
		position: position,
		url:      pageURL,
	}

	if s.Throttle != nil {
		if err := s.Throttle.Wait(ctx); err != nil {
			return result
		}
	}
	if s.RateLimiter != nil {
		if err := s.RateLimiter.Wait(ctx, hostOf(pageURL)); err != nil {
			return result
		}
	}

	html, err := FetchWithRetryDelays(ctx, pageURL, s.Fetcher.Fetch, s.Logf, s.RetryDelays)
	if err != nil {
		// A page interrupted by cancellation is skipped, not failed.
		if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
			return result
		}
		result.err = err
		result.done = true
		return result
	}

	text, err := s.Extractor.Extract(html)
	if err != nil {
		result.err = err
		result.done = true
		return result
	}

	result.occurrences = inlink.FindOccurrences(pageURL, text, keywords)
	result.done = true
	return result
}

func report(progress ProgressFunc, result pageResult, completed, total int) {
	if !result.done {
		return
	}
	event := ProgressEvent{
		Type:        ProgressCompleted,
		Completed:   completed,
		Total:       total,
		URL:         result.url,
		Occurrences: len(result.occurrences),
	}
	if result.err != nil {
		event.Type = ProgressFailed
		event.Error = result.err
	}
	progress(event)
}

// hostOf returns the host of rawURL, or rawURL itself if it does not parse.
func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Host
}
