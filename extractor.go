package inlink

// PageText holds the text units of one page that keywords are matched against.
type PageText struct {
	// Heading is the text of the first <h1>, lower-cased.
	// Empty if the page has no <h1>.
	Heading string

	// Paragraphs holds the text of every <p> in document order,
	// original case preserved.
	Paragraphs []string
}

// Units returns the text units scanned by the given occurrence pass.
func (t *PageText) Units(typ OccurrenceType) []string {
	if t == nil {
		return nil
	}
	switch typ {
	case OccurrenceHeading:
		return []string{t.Heading}
	case OccurrenceParagraph:
		return t.Paragraphs
	}
	return nil
}

// Extractor splits an HTML page into its heading and paragraphs.
type Extractor interface {
	// Extract parses HTML on a best-effort basis. Missing elements yield an
	// empty heading or an empty paragraph list, not an error.
	Extract(html string) (*PageText, error)
}
