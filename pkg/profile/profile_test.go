package profile_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeffcwolf/metadata-explorer/pkg/profile"
)

const catalogDoc = `[
	{"title": "Moby Dick", "year": 1851, "lang": "eng"},
	{"title": "Faust", "year": "circa 1808", "lang": "ger"},
	{"title": "Candide", "year": 1759, "lang": null},
	"broken"
]`

func TestBuild_ProfilesEveryField(t *testing.T) {
	t.Parallel()

	records := decode(t, catalogDoc)

	p, err := profile.Build(context.Background(), records, profile.Options{Workers: 2})
	require.NoError(t, err)

	assert.Equal(t, 4, p.TotalRecords)
	assert.Equal(t, []string{"lang", "title", "year"}, p.FieldNames)
	require.Len(t, p.Issues, 1)
	assert.Equal(t, 3, p.Issues[0].RecordIndex)
	require.Len(t, p.FieldDetails, 3)

	year, ok := p.Field("year")
	require.True(t, ok)
	assert.Equal(t, 3, year.Facets.TotalValues)
	require.NotNil(t, year.Numeric)
	assert.Equal(t, 2, year.Numeric.Count)

	lang, ok := p.Field("lang")
	require.True(t, ok)
	assert.Equal(t, 1, lang.Facets.NullCount)
	assert.Nil(t, lang.Numeric)
	assert.Equal(t, profile.PatternIsoLanguageCode, lang.Patterns.PatternGroups[0].PatternType)

	_, ok = p.Field("missing")
	assert.False(t, ok)
}

func TestBuild_SelectedFields(t *testing.T) {
	t.Parallel()

	records := decode(t, catalogDoc)

	p, err := profile.Build(context.Background(), records, profile.Options{Fields: []string{"year", "title", "year"}})
	require.NoError(t, err)

	require.Len(t, p.FieldDetails, 2)
	assert.Equal(t, "title", p.FieldDetails[0].Facets.FieldName)
	assert.Equal(t, "year", p.FieldDetails[1].Facets.FieldName)
	// The catalog always covers every field.
	assert.Len(t, p.Fields, 3)
}

func TestBuild_QualityCeiling(t *testing.T) {
	t.Parallel()

	records := decode(t, catalogDoc)

	p, err := profile.Build(context.Background(), records, profile.Options{QualityCeiling: 2})
	require.NoError(t, err)
	require.Len(t, p.Issues, 1)
	assert.True(t, p.Issues[0].IsDatasetLevel())
}

func TestBuild_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := profile.Build(ctx, decode(t, catalogDoc), profile.Options{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestBuild_Deterministic(t *testing.T) {
	t.Parallel()

	records := decode(t, catalogDoc)

	first, err := profile.Build(context.Background(), records, profile.Options{})
	require.NoError(t, err)

	second, err := profile.Build(context.Background(), records, profile.Options{})
	require.NoError(t, err)

	assert.Equal(t, first.Fields, second.Fields)
	assert.Equal(t, first.Issues, second.Issues)
	assert.Equal(t, len(first.FieldDetails), len(second.FieldDetails))
}
