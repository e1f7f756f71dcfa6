// Package report assembles the self-contained HTML report.
package report

import (
	"bytes"
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"strings"
	"unicode/utf8"

	"github.com/okian/headcount/internal/domain/aggregate"
	"github.com/okian/headcount/internal/domain/model"
)

//go:embed templates/report.html.tmpl
var templateFS embed.FS

var page = template.Must(template.ParseFS(templateFS, "templates/report.html.tmpl"))

// listingGap separates the name column from the counts in the listing.
const listingGap = 4

// Meta is the static header and footer text of a report.
type Meta struct {
	Title        string
	Organization string
	Contact      string
	Date         string
}

// Input holds every value substituted into the page, already formatted.
type Input struct {
	Meta

	TotalEmployees int
	Departments    int
	Regions        int
	AvgPerformance string

	Highlight             string
	HighlightCount        int
	HighlightPercent      string
	HighlightPerformance  string
	HighlightExperience   string
	HighlightSatisfaction string

	Listing  string
	ImageURI template.URL
}

// FromSummary formats s and the chart image for the page. Means of an absent
// department are NaN and print as "NaN".
func FromSummary(meta Meta, s aggregate.Summary, chartPNG []byte) Input {
	hl := s.Highlight
	return Input{
		Meta:                  meta,
		TotalEmployees:        s.Total,
		Departments:           s.DistinctDepartments(),
		Regions:               s.DistinctRegions,
		AvgPerformance:        fmt.Sprintf("%.1f", s.MeanPerformance),
		Highlight:             hl.Name,
		HighlightCount:        hl.Count,
		HighlightPercent:      fmt.Sprintf("%.1f", hl.Percent),
		HighlightPerformance:  fmt.Sprintf("%.2f", hl.MeanPerformance),
		HighlightExperience:   fmt.Sprintf("%.1f", hl.MeanExperience),
		HighlightSatisfaction: fmt.Sprintf("%.2f", hl.MeanSatisfaction),
		Listing:               Listing(s),
		ImageURI:              DataURI(chartPNG),
	}
}

// Build renders the page. Output depends only on in.
func Build(in Input) ([]byte, error) {
	var buf bytes.Buffer
	if err := page.Execute(&buf, in); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuild, err)
	}
	return buf.Bytes(), nil
}

// DataURI embeds a PNG as a data URI.
func DataURI(pngBytes []byte) template.URL {
	return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes))
}

// Listing prints department counts in name order under a column heading,
// names left aligned and counts right aligned. Widths count runes, as fmt
// padding does.
func Listing(s aggregate.Summary) string {
	rows := s.ByName()

	nameW := len(model.ColumnDepartment)
	countW := 1
	for _, d := range rows {
		nameW = max(nameW, utf8.RuneCountInString(d.Name))
		countW = max(countW, len(fmt.Sprint(d.Count)))
	}

	var b strings.Builder
	b.WriteString(model.ColumnDepartment)
	for _, d := range rows {
		fmt.Fprintf(&b, "\n%-*s%*d", nameW+listingGap, d.Name, countW, d.Count)
	}
	return b.String()
}
