package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/inlink"
	"github.com/fwojciec/inlink/csv"
	"github.com/fwojciec/inlink/fs"
	"github.com/fwojciec/inlink/goquery"
	inlinkhttp "github.com/fwojciec/inlink/http"
	"github.com/fwojciec/inlink/markdown"
	"github.com/fwojciec/inlink/scan"
	inlinkslog "github.com/fwojciec/inlink/slog"
	"github.com/fwojciec/inlink/sqlite"
	"github.com/fwojciec/inlink/yaml"
	"github.com/joho/godotenv"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	// A .env file in the working directory may set INLINK_CONFIG.
	_ = godotenv.Load()

	m := NewMain()

	err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Config file path. Set before calling Run(). A missing file is ignored.
	ConfigPath string
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		ConfigPath: defaultConfigPath(),
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := m.loadConfig()
	if err != nil {
		fmt.Fprintf(stderr, "Hint: Set INLINK_CONFIG to use a different config file\n")
		return err
	}
	politeness := cfg.Politeness(inlink.DefaultPoliteness())

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("inlink"),
		kong.Description("Find where keywords occur across the pages of a sitemap"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		configVars(politeness, cfg),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle no arguments
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	if err := inlink.ValidateSitemapURL(cli.SitemapURL); err != nil {
		return err
	}

	// Keywords are required unless in preview mode
	var keywords []string
	if !cli.Preview {
		if keywords, err = readKeywords(cli); err != nil {
			return err
		}
	}

	if len(cli.UserAgents) > 0 {
		politeness.UserAgents = cli.UserAgents
	}
	politeness.MinDelay = cli.MinDelay
	politeness.MaxDelay = cli.MaxDelay
	if err := politeness.Validate(); err != nil {
		return err
	}
	if cli.Concurrency < 1 {
		return inlink.Errorf(inlink.EINVALID, "concurrency must be at least 1")
	}
	if cli.Retries < 0 {
		return inlink.Errorf(inlink.EINVALID, "retries must be non-negative")
	}

	filter, err := inlink.NewURLFilter(cli.Include, cli.Exclude)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	// Wire dependencies
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Filter: filter,
	}

	opts := []inlinkhttp.Option{
		inlinkhttp.WithTimeout(cli.Timeout),
		inlinkhttp.WithPoliteness(politeness),
	}
	var sitemaps inlink.SitemapService = inlinkhttp.NewSitemapService(opts...)
	var fetcher inlink.Fetcher = inlinkhttp.NewFetcher(opts...)
	var extractor inlink.Extractor = goquery.NewExtractor()
	if cli.Verbose {
		sitemaps = inlinkslog.NewLoggingSitemapService(sitemaps, logger)
		fetcher = inlinkslog.NewLoggingFetcher(fetcher, logger)
		extractor = inlinkslog.NewLoggingExtractor(extractor, logger)
	}
	defer fetcher.Close()

	deps.Sitemaps = sitemaps

	if !cli.Preview {
		deps.Scanner = &scan.Scanner{
			Sitemaps:    sitemaps,
			Fetcher:     fetcher,
			Extractor:   extractor,
			Throttle:    scan.NewRandomDelay(politeness),
			Concurrency: cli.Concurrency,
			RetryDelays: scan.BackoffDelays(cli.Retries),
			Filter:      filter,
			Logf: func(format string, args ...any) {
				logger.Warn(fmt.Sprintf(format, args...))
			},
		}
		if cli.RateLimit > 0 {
			deps.Scanner.RateLimiter = scan.NewDomainLimiter(cli.RateLimit)
		}

		exports, closeExports, err := openExports(cli)
		if err != nil {
			return err
		}
		defer closeExports()
		deps.Exports = exports
	}

	cmd := &ScanCmd{
		SitemapURL: cli.SitemapURL,
		Keywords:   keywords,
		Preview:    cli.Preview,
	}

	return cmd.Run(deps)
}

// loadConfig reads the config file, treating a missing file as empty.
func (m *Main) loadConfig() (*yaml.Config, error) {
	if m.ConfigPath == "" {
		return &yaml.Config{}, nil
	}
	cfg, err := yaml.Load(m.ConfigPath)
	if inlink.ErrorCode(err) == inlink.ENOTFOUND {
		return &yaml.Config{}, nil
	}
	return cfg, err
}

// configVars exposes config-file values as flag defaults.
func configVars(p inlink.Politeness, cfg *yaml.Config) kong.Vars {
	vars := kong.Vars{
		"min_delay":   p.MinDelay.String(),
		"max_delay":   p.MaxDelay.String(),
		"timeout":     inlinkhttp.DefaultFetchTimeout.String(),
		"concurrency": "1",
		"retries":     "0",
	}
	if cfg.Timeout != nil {
		vars["timeout"] = cfg.Timeout.String()
	}
	if cfg.Concurrency != nil {
		vars["concurrency"] = strconv.Itoa(*cfg.Concurrency)
	}
	if cfg.Retries != nil {
		vars["retries"] = strconv.Itoa(*cfg.Retries)
	}
	return vars
}

// readKeywords returns the keywords given by flag or file.
func readKeywords(cli *CLI) ([]string, error) {
	var keywords []string
	switch {
	case cli.KeywordsFile != "":
		f, err := os.Open(cli.KeywordsFile)
		if err != nil {
			return nil, inlink.Errorf(inlink.EINVALID, "opening keyword file: %v", err)
		}
		defer f.Close()
		if keywords, err = csv.ReadKeywords(f); err != nil {
			return nil, err
		}
	case cli.Keywords != "":
		keywords = inlink.ParseKeywords(cli.Keywords)
	default:
		return nil, inlink.Errorf(inlink.EINVALID, "keywords required: use --keywords or --keywords-file")
	}
	if err := inlink.ValidateKeywords(keywords); err != nil {
		return nil, err
	}
	return keywords, nil
}

// openExports creates a store for every requested output.
func openExports(cli *CLI) ([]Export, func(), error) {
	var exports []Export
	var db *sqlite.DB
	closeFn := func() {
		if db != nil {
			_ = db.Close()
		}
	}

	if cli.Output != "" {
		exports = append(exports, Export{Name: cli.Output, Store: fs.NewFileStore(cli.Output, csv.EncodeResult)})
	}
	if cli.Report != "" {
		exports = append(exports, Export{Name: cli.Report, Store: fs.NewFileStore(cli.Report, markdown.Encode)})
	}
	if cli.DB != "" {
		db = sqlite.NewDB(cli.DB)
		if err := db.Open(); err != nil {
			return nil, closeFn, fmt.Errorf("failed to open database at %q: %w", cli.DB, err)
		}
		exports = append(exports, Export{Name: cli.DB, Store: sqlite.NewResultStore(db)})
	}
	return exports, closeFn, nil
}

func defaultConfigPath() string {
	if path := os.Getenv("INLINK_CONFIG"); path != "" {
		return path
	}
	return yaml.DefaultPath()
}

// isCanceled reports whether err stems from context cancellation.
func isCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
