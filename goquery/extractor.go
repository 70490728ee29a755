// Package goquery implements inlink.Extractor on top of the goquery HTML
// parser.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/inlink"
)

// Ensure Extractor implements inlink.Extractor at compile time.
var _ inlink.Extractor = (*Extractor)(nil)

// Extractor pulls the first <h1> and every <p> out of an HTML page.
type Extractor struct{}

// NewExtractor creates a new goquery-backed Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses html and returns its heading and paragraphs. The heading
// is lower-cased; paragraphs keep their original case and document order.
// Text of nested elements is concatenated without separators.
func (e *Extractor) Extract(html string) (*inlink.PageText, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, inlink.Errorf(inlink.EPAGEPARSE, "failed to parse HTML: %v", err)
	}

	text := &inlink.PageText{Paragraphs: []string{}}

	if h1 := doc.Find("h1").First(); h1.Length() > 0 {
		text.Heading = strings.ToLower(h1.Text())
	}

	doc.Find("p").Each(func(_ int, sel *goquery.Selection) {
		text.Paragraphs = append(text.Paragraphs, sel.Text())
	})

	return text, nil
}
