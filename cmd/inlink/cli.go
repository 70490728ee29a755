package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/inlink"
	"github.com/fwojciec/inlink/scan"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer

	Sitemaps inlink.SitemapService
	Scanner  *scan.Scanner
	Filter   *inlink.URLFilter

	// Exports receive the result once the scan finishes.
	Exports []Export
}

// Export is a named destination for a scan result.
type Export struct {
	Name  string
	Store inlink.ResultStore
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	SitemapURL   string        `arg:"" name:"sitemap-url" help:"URL of the sitemap to scan"`
	Keywords     string        `short:"k" xor:"keywords" help:"Comma-separated keywords to look for"`
	KeywordsFile string        `short:"K" xor:"keywords" type:"path" help:"CSV file with a 'keyword' column"`
	Output       string        `short:"o" type:"path" help:"Write occurrences to this CSV file"`
	Report       string        `short:"r" type:"path" help:"Write a Markdown report with frequency charts to this file"`
	DB           string        `name:"db" type:"path" help:"Write the run to this SQLite database"`
	Preview      bool          `short:"p" help:"List the sitemap URLs without fetching pages"`
	Include      []string      `short:"I" help:"Only scan URLs matching this regex (repeatable)"`
	Exclude      []string      `short:"X" help:"Skip URLs matching this regex (repeatable)"`
	UserAgents   []string      `name:"user-agent" sep:"none" help:"User agent to rotate through (repeatable)"`
	MinDelay     time.Duration `default:"${min_delay}" help:"Minimum wait before each page request"`
	MaxDelay     time.Duration `default:"${max_delay}" help:"Maximum wait before each page request"`
	Timeout      time.Duration `short:"t" default:"${timeout}" help:"Timeout per request"`
	Concurrency  int           `short:"c" default:"${concurrency}" help:"Pages fetched at once"`
	Retries      int           `default:"${retries}" help:"Retries per failed page fetch"`
	RateLimit    float64       `default:"0" help:"Max requests per second per host, 0 for no limit"`
	Verbose      bool          `short:"v" help:"Log every request to stderr"`
}

// ScanCmd scans a sitemap for keyword occurrences.
type ScanCmd struct {
	SitemapURL string
	Keywords   []string
	Preview    bool
}
