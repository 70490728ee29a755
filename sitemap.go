package inlink

import (
	"context"
	"net/url"
	"regexp"
)

// SitemapService resolves the page URLs declared by a sitemap.
type SitemapService interface {
	// ResolveURLs fetches the sitemap at sitemapURL and returns the text of
	// every <loc> element in document order. Sitemap indexes are not
	// followed; their <loc> entries are returned like any other.
	// Duplicates are kept.
	//
	// The filter can be used to include/exclude URLs by pattern.
	// If filter is nil, all URLs are returned.
	ResolveURLs(ctx context.Context, sitemapURL string, filter *URLFilter) ([]string, error)
}

// ValidateSitemapURL returns EINVALID unless rawURL is an absolute http or
// https URL.
func ValidateSitemapURL(rawURL string) error {
	if rawURL == "" {
		return Errorf(EINVALID, "sitemap URL required")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return Errorf(EINVALID, "invalid sitemap URL %q: %v", rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Errorf(EINVALID, "sitemap URL must use http or https: %q", rawURL)
	}
	if u.Host == "" {
		return Errorf(EINVALID, "sitemap URL must include a host: %q", rawURL)
	}
	return nil
}

// URLFilter specifies patterns for including/excluding URLs.
type URLFilter struct {
	// Include patterns - if set, only URLs matching at least one pattern are included.
	Include []*regexp.Regexp

	// Exclude patterns - URLs matching any pattern are excluded.
	// Exclude is applied after Include.
	Exclude []*regexp.Regexp
}

// NewURLFilter compiles include and exclude patterns into a filter.
// Returns nil when both lists are empty.
func NewURLFilter(include, exclude []string) (*URLFilter, error) {
	if len(include) == 0 && len(exclude) == 0 {
		return nil, nil
	}
	f := &URLFilter{}
	for _, pattern := range include {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, Errorf(EINVALID, "invalid include pattern %q: %v", pattern, err)
		}
		f.Include = append(f.Include, re)
	}
	for _, pattern := range exclude {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, Errorf(EINVALID, "invalid exclude pattern %q: %v", pattern, err)
		}
		f.Exclude = append(f.Exclude, re)
	}
	return f, nil
}

// Match returns true if the URL passes the filter.
// If the filter is nil, all URLs pass.
func (f *URLFilter) Match(url string) bool {
	if f == nil {
		return true
	}

	// If include patterns exist, URL must match at least one
	if len(f.Include) > 0 {
		matched := false
		for _, re := range f.Include {
			if re.MatchString(url) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	for _, re := range f.Exclude {
		if re.MatchString(url) {
			return false
		}
	}

	return true
}

// Apply returns the URLs that pass the filter, preserving order.
func (f *URLFilter) Apply(urls []string) []string {
	if f == nil {
		return urls
	}
	filtered := make([]string, 0, len(urls))
	for _, u := range urls {
		if f.Match(u) {
			filtered = append(filtered, u)
		}
	}
	return filtered
}
