package profile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeffcwolf/metadata-explorer/pkg/profile"
	"github.com/jeffcwolf/metadata-explorer/pkg/record"
)

func facetMap(fa profile.FacetAnalysis) map[string]int {
	out := make(map[string]int, len(fa.ValueFrequency))
	for _, fv := range fa.ValueFrequency {
		out[fv.Value] = fv.Count
	}

	return out
}

func TestAnalyzeField_NullsCountedSeparately(t *testing.T) {
	t.Parallel()

	records := decode(t, `[{"year": 1995}, {"year": "circa 1990"}, {"year": null}]`)

	fa := profile.AnalyzeField(records, "year")

	assert.Equal(t, "year", fa.FieldName)
	assert.Equal(t, 3, fa.TotalValues)
	assert.Equal(t, 1, fa.NullCount)
	assert.Equal(t, 2, fa.UniqueValues)
	assert.Equal(t, map[string]int{"1995": 1, "circa 1990": 1}, facetMap(fa))

	for _, fv := range fa.ValueFrequency {
		assert.InDelta(t, 100.0/3, fv.Percentage, 1e-9)
	}
}

func TestAnalyzeField_SortedByCountDescending(t *testing.T) {
	t.Parallel()

	records := decode(t, `[{"l":"eng"},{"l":"ger"},{"l":"eng"},{"l":"fre"},{"l":"eng"},{"l":"ger"},{"x":1},"junk"]`)

	fa := profile.AnalyzeField(records, "l")
	require.Len(t, fa.ValueFrequency, 3)
	assert.Equal(t, 6, fa.TotalValues)
	assert.Equal(t, profile.FacetValue{Value: "eng", Count: 3, Percentage: 50}, fa.ValueFrequency[0])
	assert.Equal(t, "ger", fa.ValueFrequency[1].Value)
	assert.Equal(t, "fre", fa.ValueFrequency[2].Value)
}

func TestAnalyzeField_CountsSumToTotal(t *testing.T) {
	t.Parallel()

	records := decode(t, `[{"v":[]},{"v":[1,2]},{"v":{"k":1}},{"v":null},{"v":true},{"v":"a"},{"v":[1,2]}]`)

	fa := profile.AnalyzeField(records, "v")

	sum := 0
	pct := 0.0

	for _, fv := range fa.ValueFrequency {
		sum += fv.Count
		pct += fv.Percentage
	}

	assert.Equal(t, fa.TotalValues, sum+fa.NullCount)
	assert.LessOrEqual(t, pct, 100.0+1e-9)
}

func TestAnalyzeField_MissingField(t *testing.T) {
	t.Parallel()

	fa := profile.AnalyzeField(decode(t, `[{"a":1}]`), "b")
	assert.Zero(t, fa.TotalValues)
	assert.Zero(t, fa.UniqueValues)
	assert.Empty(t, fa.ValueFrequency)
	assert.NotNil(t, fa.ValueFrequency)
}

func TestCanonicalText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value record.Value
		want  string
	}{
		{"string", record.String("London"), "London"},
		{"number", record.Int(42), "42"},
		{"float", record.Number("2.5"), "2.5"},
		{"bool", record.Bool(false), "false"},
		{"null", record.Null(), "(null)"},
		{"empty_array", record.Array(), "(empty array)"},
		{"short_array", record.Array(record.String("a"), record.Int(2)), "a, 2"},
		{"three_items", record.Array(record.String("a"), record.String("b"), record.String("c")), "a, b, c"},
		{
			"long_array",
			record.Array(record.String("a"), record.String("b"), record.String("c"), record.String("d"), record.String("e")),
			"a, b, c ... (5 items)",
		},
		{"nested_array", record.Array(record.Array(record.String("x"), record.String("y"))), "x y"},
		{"object", record.Object(map[string]record.Value{"a": record.Int(1)}), "(object)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, profile.CanonicalText(tt.value))
		})
	}
}

func TestFacetAnalysis_Top(t *testing.T) {
	t.Parallel()

	fa := profile.FacetAnalysis{ValueFrequency: []profile.FacetValue{{Value: "a"}, {Value: "b"}, {Value: "c"}}}

	assert.Len(t, fa.Top(2), 2)
	assert.Len(t, fa.Top(10), 3)
	assert.Len(t, fa.Top(0), 3)
}

func TestClassifyCardinality(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		fa   profile.FacetAnalysis
		want profile.CardinalityClass
	}{
		{"empty", profile.FacetAnalysis{TotalValues: 2, NullCount: 2}, profile.CardinalityEmpty},
		{"unique", profile.FacetAnalysis{TotalValues: 10, UniqueValues: 10}, profile.CardinalityUnique},
		{"near_unique", profile.FacetAnalysis{TotalValues: 100, UniqueValues: 95}, profile.CardinalityNearUnique},
		{"enum_like", profile.FacetAnalysis{TotalValues: 1000, UniqueValues: 12}, profile.CardinalityEnumLike},
		{"low", profile.FacetAnalysis{TotalValues: 1000, UniqueValues: 150}, profile.CardinalityLowCardinality},
		{"high", profile.FacetAnalysis{TotalValues: 1000, UniqueValues: 500}, profile.CardinalityHighCardinality},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, profile.ClassifyCardinality(tt.fa))
		})
	}
}
