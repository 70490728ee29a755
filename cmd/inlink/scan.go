package main

import (
	"fmt"

	"github.com/fwojciec/inlink"
	"github.com/fwojciec/inlink/markdown"
	"github.com/fwojciec/inlink/scan"
)

// Run executes the scan command.
func (c *ScanCmd) Run(deps *Dependencies) error {
	// Preview mode: show URLs without fetching pages
	if c.Preview {
		return c.runPreview(deps)
	}

	return c.runScan(deps)
}

func (c *ScanCmd) runPreview(deps *Dependencies) error {
	urls, err := deps.Sitemaps.ResolveURLs(deps.Ctx, c.SitemapURL, deps.Filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", inlink.ErrorMessage(err))
		return err
	}

	if len(urls) == 0 {
		fmt.Fprintln(deps.Stdout, markdown.NoticeNoURLs)
		return nil
	}

	for _, u := range urls {
		fmt.Fprintln(deps.Stdout, u)
	}

	return nil
}

func (c *ScanCmd) runScan(deps *Dependencies) error {
	progress := func(event scan.ProgressEvent) {
		switch event.Type {
		case scan.ProgressStarted:
			if event.Total > 0 {
				fmt.Fprintf(deps.Stdout, "Found %d URLs\n", event.Total)
			}
		case scan.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "warning: failed to retrieve URL %s: %s\n", event.URL, inlink.ErrorMessage(event.Error))
		}
	}

	result, err := deps.Scanner.Scan(deps.Ctx, c.SitemapURL, c.Keywords, progress)
	if err != nil {
		if isCanceled(err) {
			fmt.Fprintln(deps.Stderr, "interrupted: nothing written")
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", inlink.ErrorMessage(err))
		}
		abortAll(deps.Exports)
		return err
	}

	switch {
	case len(result.URLs) == 0:
		fmt.Fprintln(deps.Stdout, markdown.NoticeNoURLs)
	case len(result.Occurrences) == 0:
		fmt.Fprintln(deps.Stdout, markdown.NoticeNoOccurrences)
	default:
		fmt.Fprintf(deps.Stdout, "Found %d occurrences on %d pages\n",
			len(result.Occurrences), len(result.URLs)-len(result.Failures))
		for _, kc := range inlink.CountByKeyword(result.Occurrences) {
			fmt.Fprintf(deps.Stdout, "  %-20s %d\n", kc.Keyword, kc.Count)
		}
	}

	return c.export(deps, result)
}

// export saves result to every destination, writing all or none.
func (c *ScanCmd) export(deps *Dependencies, result *inlink.Result) error {
	for _, e := range deps.Exports {
		if err := e.Store.Save(deps.Ctx, result); err != nil {
			abortAll(deps.Exports)
			fmt.Fprintf(deps.Stderr, "error saving %s: %v\n", e.Name, err)
			return err
		}
	}

	for i, e := range deps.Exports {
		if err := e.Store.Commit(); err != nil {
			abortAll(deps.Exports[i+1:])
			fmt.Fprintf(deps.Stderr, "error committing %s: %v\n", e.Name, err)
			return err
		}
		fmt.Fprintf(deps.Stdout, "Wrote %s\n", e.Name)
	}

	return nil
}

func abortAll(exports []Export) {
	for _, e := range exports {
		_ = e.Store.Abort()
	}
}
