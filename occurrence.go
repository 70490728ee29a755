package inlink

import "sort"

// OccurrenceType identifies the kind of text unit an occurrence was found in.
type OccurrenceType string

// Occurrence types.
const (
	OccurrenceHeading   OccurrenceType = "H1"
	OccurrenceParagraph OccurrenceType = "Paragraph"
)

// OccurrenceTypes lists the matching passes run against every page, in order.
var OccurrenceTypes = []OccurrenceType{OccurrenceHeading, OccurrenceParagraph}

// Occurrence is one located instance of a keyword at a token position
// within a heading or paragraph of a page.
type Occurrence struct {
	URL       string         `json:"url"`
	Type      OccurrenceType `json:"occurrenceType"`
	Keyword   string         `json:"keyword"`
	Context   string         `json:"context"`
	Paragraph string         `json:"paragraph"`
}

// FindOccurrences matches every keyword against the text of one page.
//
// For each keyword the heading pass runs before the paragraph pass. Within a
// pass, only units that contain the keyword as a substring are tokenized.
// The result is ordered by keyword, then text unit, then token position.
func FindOccurrences(pageURL string, text *PageText, keywords []string) []Occurrence {
	var occurrences []Occurrence
	for _, keyword := range keywords {
		for _, typ := range OccurrenceTypes {
			for _, unit := range text.Units(typ) {
				if !ContainsKeyword(unit, keyword) {
					continue
				}
				for _, m := range MatchKeyword(unit, keyword) {
					occurrences = append(occurrences, Occurrence{
						URL:       pageURL,
						Type:      typ,
						Keyword:   keyword,
						Context:   m.Context,
						Paragraph: m.Text,
					})
				}
			}
		}
	}
	return occurrences
}

// KeywordCount is the number of occurrences recorded for one keyword.
type KeywordCount struct {
	Keyword string
	Count   int
}

// CountByKeyword returns one entry per distinct keyword, highest count
// first. Ties keep the order in which keywords first appear.
func CountByKeyword(occurrences []Occurrence) []KeywordCount {
	index := make(map[string]int)
	var counts []KeywordCount
	for _, o := range occurrences {
		i, ok := index[o.Keyword]
		if !ok {
			i = len(counts)
			index[o.Keyword] = i
			counts = append(counts, KeywordCount{Keyword: o.Keyword})
		}
		counts[i].Count++
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts
}
