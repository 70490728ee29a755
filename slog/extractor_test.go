package slog_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/inlink"
	"github.com/fwojciec/inlink/mock"
	inlinkslog "github.com/fwojciec/inlink/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("logs heading presence and paragraph count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		want := &inlink.PageText{
			Heading:    "best shoes guide",
			Paragraphs: []string{"one", "two", "three"},
		}
		inner := &mock.Extractor{
			ExtractFn: func(html string) (*inlink.PageText, error) {
				return want, nil
			},
		}

		extractor := inlinkslog.NewLoggingExtractor(inner, logger)
		text, err := extractor.Extract("<h1>Best Shoes Guide</h1>")

		require.NoError(t, err)
		assert.Same(t, want, text)
		output := buf.String()
		assert.Contains(t, output, "extract")
		assert.Contains(t, output, "heading=true")
		assert.Contains(t, output, "paragraphs=3")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Extractor{
			ExtractFn: func(html string) (*inlink.PageText, error) {
				return nil, errors.New("parse failed")
			},
		}

		extractor := inlinkslog.NewLoggingExtractor(inner, logger)
		_, err := extractor.Extract("<p>")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "heading=false")
		assert.Contains(t, output, "paragraphs=0")
		assert.Contains(t, output, "err=\"parse failed\"")
	})
}
