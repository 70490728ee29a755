package inlink_test

import (
	"testing"

	"github.com/fwojciec/inlink"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindOccurrences(t *testing.T) {
	t.Parallel()

	t.Run("finds heading and paragraph occurrences", func(t *testing.T) {
		t.Parallel()

		text := &inlink.PageText{
			Heading:    "best shoes guide",
			Paragraphs: []string{"We sell shoes online."},
		}

		got := inlink.FindOccurrences("https://ex.com/a", text, []string{"shoes"})

		assert.Equal(t, []inlink.Occurrence{
			{
				URL:       "https://ex.com/a",
				Type:      inlink.OccurrenceHeading,
				Keyword:   "shoes",
				Context:   "best shoes guide",
				Paragraph: "best shoes guide",
			},
			{
				URL:       "https://ex.com/a",
				Type:      inlink.OccurrenceParagraph,
				Keyword:   "shoes",
				Context:   "sell shoes online.",
				Paragraph: "We sell shoes online.",
			},
		}, got)
	})

	t.Run("orders by keyword then unit then token", func(t *testing.T) {
		t.Parallel()

		text := &inlink.PageText{
			Heading: "boots and shoes",
			Paragraphs: []string{
				"shoes first",
				"no match here",
				"boots then shoes and shoes",
			},
		}

		got := inlink.FindOccurrences("https://ex.com/b", text, []string{"shoes", "boots"})

		contexts := make([]string, len(got))
		for i, o := range got {
			contexts[i] = string(o.Type) + ":" + o.Keyword + ":" + o.Context
		}
		assert.Equal(t, []string{
			"H1:shoes:and shoes",
			"Paragraph:shoes:shoes first",
			"Paragraph:shoes:then shoes and",
			"Paragraph:shoes:and shoes",
			"H1:boots:boots and",
			"Paragraph:boots:boots then",
		}, contexts)
	})

	t.Run("substring-only hits produce no occurrences", func(t *testing.T) {
		t.Parallel()

		text := &inlink.PageText{Paragraphs: []string{"category leaders"}}

		assert.Empty(t, inlink.FindOccurrences("https://ex.com/c", text, []string{"cat"}))
	})

	t.Run("empty page produces no occurrences", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, inlink.FindOccurrences("https://ex.com/d", &inlink.PageText{}, []string{"shoes"}))
	})

	t.Run("type reflects the source unit", func(t *testing.T) {
		t.Parallel()

		text := &inlink.PageText{
			Heading:    "shoes",
			Paragraphs: []string{"shoes", "shoes"},
		}

		got := inlink.FindOccurrences("https://ex.com/e", text, []string{"shoes"})

		require.Len(t, got, 3)
		assert.Equal(t, inlink.OccurrenceHeading, got[0].Type)
		assert.Equal(t, inlink.OccurrenceParagraph, got[1].Type)
		assert.Equal(t, inlink.OccurrenceParagraph, got[2].Type)
	})
}

func TestPageText_Units(t *testing.T) {
	t.Parallel()

	text := &inlink.PageText{Heading: "title", Paragraphs: []string{"a", "b"}}

	assert.Equal(t, []string{"title"}, text.Units(inlink.OccurrenceHeading))
	assert.Equal(t, []string{"a", "b"}, text.Units(inlink.OccurrenceParagraph))

	var nilText *inlink.PageText
	assert.Nil(t, nilText.Units(inlink.OccurrenceHeading))
}

func TestCountByKeyword(t *testing.T) {
	t.Parallel()

	occurrences := []inlink.Occurrence{
		{Keyword: "boots"},
		{Keyword: "shoes"},
		{Keyword: "shoes"},
		{Keyword: "socks"},
	}

	got := inlink.CountByKeyword(occurrences)

	assert.Equal(t, []inlink.KeywordCount{
		{Keyword: "shoes", Count: 2},
		{Keyword: "boots", Count: 1},
		{Keyword: "socks", Count: 1},
	}, got)
	assert.Empty(t, inlink.CountByKeyword(nil))
}
