package inlink

import "strings"

// ParseKeywords splits a comma-separated keyword list.
// Entries are trimmed and empty entries dropped.
func ParseKeywords(s string) []string {
	return NormalizeKeywords(strings.Split(s, ","))
}

// NormalizeKeywords trims every keyword and drops empty entries.
// Order and duplicates are preserved.
func NormalizeKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}

// ValidateKeywords returns EINVALID if the list is empty or holds an
// entry that is blank after trimming.
func ValidateKeywords(keywords []string) error {
	if len(keywords) == 0 {
		return Errorf(EINVALID, "at least one keyword required")
	}
	for i, k := range keywords {
		if strings.TrimSpace(k) == "" {
			return Errorf(EINVALID, "keyword %d is empty", i+1)
		}
	}
	return nil
}

// ContainsKeyword reports whether keyword appears anywhere in text,
// ignoring case. It is a cheap pre-check; use MatchKeyword to find
// token-level occurrences.
func ContainsKeyword(text, keyword string) bool {
	return strings.Contains(strings.ToLower(text), strings.ToLower(keyword))
}

// Match is one token-level keyword hit inside a text unit.
type Match struct {
	// Context is "<prev> <keyword> <next>". A neighbor is omitted when the
	// hit sits at the start or end of the text.
	Context string

	// Text is the full text unit the hit was found in.
	Text string
}

// MatchKeyword splits text on whitespace and returns one Match for every
// token equal to keyword, ignoring case. Neighbor tokens appear lower-cased
// in the context; the keyword appears as given.
func MatchKeyword(text, keyword string) []Match {
	words := strings.Fields(strings.ToLower(text))
	target := strings.ToLower(keyword)

	var matches []Match
	for i, word := range words {
		if word != target {
			continue
		}
		var before, after string
		if i > 0 {
			before = words[i-1]
		}
		if i < len(words)-1 {
			after = words[i+1]
		}
		matches = append(matches, Match{
			Context: strings.TrimSpace(before + " " + keyword + " " + after),
			Text:    text,
		})
	}
	return matches
}
