// Package markdown renders a scan result as a Markdown report with Mermaid
// charts of keyword frequency.
package markdown

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fwojciec/inlink"
	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
)

// Notices shown when a scan produced nothing to chart.
const (
	NoticeNoURLs        = "No URLs found in the sitemap."
	NoticeNoOccurrences = "No keyword occurrences found."
)

// Encode writes the report for result to w.
func Encode(w io.Writer, result *inlink.Result) error {
	md := markdown.NewMarkdown(w)
	counts := inlink.CountByKeyword(result.Occurrences)

	writeHeader(md, result)
	writeFrequency(md, result, counts)
	writeOccurrences(md, result)
	writeFailures(md, result)

	return md.Build()
}

func writeHeader(md *markdown.Markdown, result *inlink.Result) {
	md.H1("Keyword Occurrence Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Sitemap", cell(result.SitemapURL)},
			{"Keywords", cell(strings.Join(result.Keywords, ", "))},
			{"Pages Listed", strconv.Itoa(len(result.URLs))},
			{"Pages Failed", strconv.Itoa(len(result.Failures))},
			{"Occurrences", strconv.Itoa(len(result.Occurrences))},
		},
	})
	md.PlainText("")
}

func writeFrequency(md *markdown.Markdown, result *inlink.Result, counts []inlink.KeywordCount) {
	md.H2("Keyword Frequency")
	md.PlainText("")

	switch {
	case len(result.URLs) == 0:
		md.Note(NoticeNoURLs)
		md.PlainText("")
		return
	case len(counts) == 0:
		md.Note(NoticeNoOccurrences)
		md.PlainText("")
		return
	}

	rows := make([][]string, len(counts))
	for i, c := range counts {
		rows[i] = []string{cell(c.Keyword), strconv.Itoa(c.Count)}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Keyword", "Count"},
		Rows:   rows,
	})
	md.PlainText("")

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, BarChart(counts))
	md.PlainText("")

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Keyword Share"),
		piechart.WithShowData(true),
	)
	for _, c := range counts {
		chart.LabelAndIntValue(c.Keyword, uint64(c.Count))
	}
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

func writeOccurrences(md *markdown.Markdown, result *inlink.Result) {
	if len(result.Occurrences) == 0 {
		return
	}

	md.H2("Occurrences")
	md.PlainText("")

	rows := make([][]string, len(result.Occurrences))
	for i, o := range result.Occurrences {
		rows[i] = []string{cell(o.URL), string(o.Type), cell(o.Keyword), cell(o.Context)}
	}
	md.Table(markdown.TableSet{
		Header: []string{"URL", "Type", "Keyword", "Context"},
		Rows:   rows,
	})
	md.PlainText("")
}

func writeFailures(md *markdown.Markdown, result *inlink.Result) {
	if len(result.Failures) == 0 {
		return
	}

	md.H2("Failed Pages")
	md.PlainText("")
	md.Warningf("%d page(s) could not be retrieved and were skipped.", len(result.Failures))
	md.PlainText("")

	items := make([]string, len(result.Failures))
	for i, f := range result.Failures {
		items[i] = fmt.Sprintf("%s: %s", f.URL, inlink.ErrorMessage(f.Err))
	}
	md.BulletList(items...)
	md.PlainText("")
}

// BarChart returns a Mermaid xychart-beta definition with one bar per
// keyword, labelled with its count.
func BarChart(counts []inlink.KeywordCount) string {
	labels := make([]string, len(counts))
	values := make([]string, len(counts))
	top := 0
	for i, c := range counts {
		labels[i] = strconv.Quote(strings.ReplaceAll(c.Keyword, `"`, "'"))
		values[i] = strconv.Itoa(c.Count)
		top = max(top, c.Count)
	}

	var b strings.Builder
	b.WriteString("---\nconfig:\n  xyChart:\n    showDataLabel: true\n---\n")
	b.WriteString("xychart-beta\n")
	b.WriteString("    title \"Keyword Frequency\"\n")
	fmt.Fprintf(&b, "    x-axis [%s]\n", strings.Join(labels, ", "))
	fmt.Fprintf(&b, "    y-axis \"Occurrences\" 0 --> %d\n", top)
	fmt.Fprintf(&b, "    bar [%s]", strings.Join(values, ", "))
	return b.String()
}

// cell escapes text for use inside a table cell.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.Join(strings.Fields(s), " ")
}
