package profile

import (
	"sort"
	"strconv"
	"strings"

	"github.com/jeffcwolf/metadata-explorer/pkg/record"
)

const (
	nullFacet       = "(null)"
	emptyArrayFacet = "(empty array)"
	objectFacet     = "(object)"

	// arrayFacetPreview is the number of leading elements shown in an
	// array's facet text.
	arrayFacetPreview = 3
)

// FacetValue is one distinct canonical value of a field.
type FacetValue struct {
	Value      string  `json:"value" yaml:"value"`
	Count      int     `json:"count" yaml:"count"`
	Percentage float64 `json:"percentage" yaml:"percentage"`
}

// FacetAnalysis is the value distribution of a single field.
type FacetAnalysis struct {
	FieldName      string       `json:"field_name" yaml:"field_name"`
	TotalValues    int          `json:"total_values" yaml:"total_values"`
	UniqueValues   int          `json:"unique_values" yaml:"unique_values"`
	NullCount      int          `json:"null_count" yaml:"null_count"`
	ValueFrequency []FacetValue `json:"value_frequency" yaml:"value_frequency"`
}

// Top returns at most n leading entries of the frequency list.
// A non-positive n returns the full list.
func (fa FacetAnalysis) Top(n int) []FacetValue {
	if n <= 0 || n >= len(fa.ValueFrequency) {
		return fa.ValueFrequency
	}

	return fa.ValueFrequency[:n]
}

// CanonicalText maps a value to the text it is counted under in facets.
func CanonicalText(v record.Value) string {
	switch v.Kind() {
	case record.KindNull:
		return nullFacet
	case record.KindObject:
		return objectFacet
	case record.KindArray:
		items := v.Items()
		if len(items) == 0 {
			return emptyArrayFacet
		}

		preview := items[:min(len(items), arrayFacetPreview)]
		parts := make([]string, 0, len(preview))

		for _, item := range preview {
			parts = append(parts, record.SearchText(item))
		}

		text := strings.Join(parts, ", ")
		if len(items) > arrayFacetPreview {
			text += " ... (" + strconv.Itoa(len(items)) + " items)"
		}

		return text
	default:
		return record.Text(v)
	}
}

// AnalyzeField computes the value distribution of field across all object
// records that contain it. Nulls are counted separately; other values are
// counted by their canonical text. Percentages are relative to TotalValues,
// nulls included. The frequency list is sorted by count, highest first.
func AnalyzeField(records []record.Value, field string) FacetAnalysis {
	counts := make(map[string]int)
	analysis := FacetAnalysis{FieldName: field}

	for _, rec := range records {
		value, ok := rec.Get(field)
		if !ok {
			continue
		}

		analysis.TotalValues++

		if value.IsNull() {
			analysis.NullCount++

			continue
		}

		counts[CanonicalText(value)]++
	}

	analysis.UniqueValues = len(counts)
	analysis.ValueFrequency = make([]FacetValue, 0, len(counts))

	for text, count := range counts {
		analysis.ValueFrequency = append(analysis.ValueFrequency, FacetValue{
			Value:      text,
			Count:      count,
			Percentage: Percent(count, analysis.TotalValues),
		})
	}

	sort.SliceStable(analysis.ValueFrequency, func(i, j int) bool {
		return analysis.ValueFrequency[i].Count > analysis.ValueFrequency[j].Count
	})

	return analysis
}
