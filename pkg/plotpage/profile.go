package plotpage

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"

	"github.com/jeffcwolf/metadata-explorer/pkg/profile"
	"github.com/jeffcwolf/metadata-explorer/pkg/record"
)

// DefaultTopValues is the number of facet values charted per field.
const DefaultTopValues = 15

const (
	maxPercent     = 100
	barLabelLength = 24
	percentRound   = 10
)

// ProfilePage lays out a dataset profile: a coverage chart for the whole
// catalog, then a top values chart and a pattern chart per profiled field.
func ProfilePage(name string, p *profile.Profile, theme Theme, topN int) *Page {
	if topN <= 0 {
		topN = DefaultTopValues
	}

	page := NewPage(name, fmt.Sprintf("%s records · %d fields", humanize.Comma(int64(p.TotalRecords)), len(p.Fields))).
		WithTheme(theme)

	page.Stats = []Stat{
		{Label: "Records", Value: humanize.Comma(int64(p.TotalRecords))},
		{Label: "Fields", Value: humanize.Comma(int64(len(p.Fields)))},
		{Label: "Issues", Value: humanize.Comma(int64(len(p.Issues)))},
	}

	cOpts := NewChartOpts(theme)

	page.Add(coverageSection(cOpts, p))

	for _, fp := range p.FieldDetails {
		if len(fp.Facets.ValueFrequency) == 0 {
			continue
		}

		page.Add(facetSection(cOpts, fp, topN), patternSection(cOpts, fp.Patterns))
	}

	return page
}

func coverageSection(cOpts *ChartOpts, p *profile.Profile) Section {
	bars := make([]Bar, 0, len(p.Fields))

	for _, f := range p.Fields {
		coverage := f.Coverage(p.TotalRecords)
		bars = append(bars, Bar{
			Label: f.Name,
			Value: math.Round(coverage*percentRound) / percentRound,
			Color: cOpts.theme.CoverageColor(coverage),
		})
	}

	return Section{
		Title:    "Field coverage",
		Subtitle: "Share of records holding a non-null value for each field",
		Chart:    BuildBarChart(cOpts, "Coverage %", "%", bars, maxPercent),
		Hint: Hint{
			Title: "Reading the chart",
			Items: []string{
				"Green fields are present in more than 90% of records",
				"Yellow fields are present in more than half of the records",
				"Red fields are sparse and may need cleanup",
			},
		},
	}
}

func facetSection(cOpts *ChartOpts, fp profile.FieldProfile, topN int) Section {
	values := fp.Facets.Top(topN)
	bars := make([]Bar, 0, len(values))

	for _, v := range values {
		bars = append(bars, Bar{Label: record.Truncate(v.Value, barLabelLength), Value: float64(v.Count)})
	}

	return Section{
		Title: "Top values: " + fp.Facets.FieldName,
		Subtitle: fmt.Sprintf("%s distinct values · %s nulls · %s",
			humanize.Comma(int64(fp.Facets.UniqueValues)), humanize.Comma(int64(fp.Facets.NullCount)), fp.Cardinality),
		Chart: BuildBarChart(cOpts, "Count", "records", bars, 0),
	}
}

func patternSection(cOpts *ChartOpts, pa profile.PatternAnalysis) Section {
	slices := make([]Slice, 0, len(pa.PatternGroups))
	items := make([]string, 0, len(pa.PatternGroups))

	for _, g := range pa.PatternGroups {
		slices = append(slices, Slice{Name: g.PatternType.Name(), Value: g.Count})
		items = append(items, g.PatternType.Name()+": "+g.PatternType.Description())
	}

	return Section{
		Title:    "Patterns: " + pa.FieldName,
		Subtitle: humanize.Comma(int64(pa.TotalValues)) + " values classified",
		Chart:    BuildPieChart(cOpts, "Patterns", slices),
		Hint:     Hint{Items: items},
	}
}
