// Package csv reads keyword lists and reads and writes occurrence tables
// as CSV.
package csv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/inlink"
)

// KeywordColumn is the header name of the keyword column in a keyword file.
const KeywordColumn = "keyword"

// Header is the header row of an occurrence table.
var Header = []string{"url", "occurrence_type", "context", "keyword", "paragraph"}

// ReadKeywords reads keywords from the column headed "keyword" (matched
// case-insensitively). Other columns are ignored. Values are trimmed and
// blank values dropped.
func ReadKeywords(r io.Reader) ([]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, inlink.Errorf(inlink.EINVALID, "reading keyword file: %v", err)
	}
	if len(rows) == 0 {
		return nil, inlink.Errorf(inlink.EINVALID, "keyword file is empty")
	}

	col := -1
	for i, h := range rows[0] {
		if strings.EqualFold(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")), KeywordColumn) {
			col = i
			break
		}
	}
	if col == -1 {
		return nil, inlink.Errorf(inlink.EINVALID, "keyword file must contain a %q header column", KeywordColumn)
	}

	var keywords []string
	for _, row := range rows[1:] {
		if col < len(row) {
			keywords = append(keywords, row[col])
		}
	}
	return inlink.NormalizeKeywords(keywords), nil
}

// EncodeResult writes the occurrences of result as a CSV table.
func EncodeResult(w io.Writer, result *inlink.Result) error {
	return WriteOccurrences(w, result.Occurrences)
}

// WriteOccurrences writes a header row followed by one row per occurrence.
func WriteOccurrences(w io.Writer, occurrences []inlink.Occurrence) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, o := range occurrences {
		record := []string{o.URL, string(o.Type), o.Context, o.Keyword, o.Paragraph}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing occurrence: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadOccurrences parses a table written by WriteOccurrences.
func ReadOccurrences(r io.Reader) ([]inlink.Occurrence, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Header)

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, inlink.Errorf(inlink.EINVALID, "occurrence table is empty")
	}
	if err != nil {
		return nil, inlink.Errorf(inlink.EINVALID, "reading header: %v", err)
	}
	for i, h := range Header {
		if header[i] != h {
			return nil, inlink.Errorf(inlink.EINVALID, "unexpected column %q, want %q", header[i], h)
		}
	}

	occurrences := []inlink.Occurrence{}
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, inlink.Errorf(inlink.EINVALID, "reading occurrence: %v", err)
		}
		typ := inlink.OccurrenceType(record[1])
		if typ != inlink.OccurrenceHeading && typ != inlink.OccurrenceParagraph {
			return nil, inlink.Errorf(inlink.EINVALID, "unknown occurrence type %q", record[1])
		}
		occurrences = append(occurrences, inlink.Occurrence{
			URL:       record[0],
			Type:      typ,
			Context:   record[2],
			Keyword:   record[3],
			Paragraph: record[4],
		})
	}
	return occurrences, nil
}
