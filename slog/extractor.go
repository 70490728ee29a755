package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/inlink"
)

// Ensure LoggingExtractor implements inlink.Extractor.
var _ inlink.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with debug logging.
type LoggingExtractor struct {
	next   inlink.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next inlink.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs what it found.
func (e *LoggingExtractor) Extract(html string) (text *inlink.PageText, err error) {
	defer func(begin time.Time) {
		var paragraphs int
		var heading bool
		if text != nil {
			paragraphs = len(text.Paragraphs)
			heading = text.Heading != ""
		}
		e.logger.Info("extract",
			"heading", heading,
			"paragraphs", paragraphs,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(html)
}
