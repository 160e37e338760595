package browse_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeffcwolf/metadata-explorer/pkg/browse"
	"github.com/jeffcwolf/metadata-explorer/pkg/record"
)

func sample(t *testing.T) []record.Value {
	t.Helper()

	records, err := record.DecodeArray(strings.NewReader(`[
		{"title": "Moby Dick", "authors": ["Herman Melville"]},
		{"title": "Faust", "year": 1808},
		"loose string about MOBY",
		{"title": null}
	]`))
	require.NoError(t, err)

	return records
}

func TestFilter(t *testing.T) {
	t.Parallel()

	records := sample(t)

	tests := []struct {
		name  string
		query string
		want  []int
	}{
		{"empty_selects_all", "", []int{0, 1, 2, 3}},
		{"case_insensitive", "moby", []int{0, 2}},
		{"nested_array", "melville", []int{0}},
		{"numbers", "1808", []int{1}},
		{"no_match", "zzz", []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, browse.Filter(records, tt.query))
		})
	}
}

func TestPaginate(t *testing.T) {
	t.Parallel()

	indexes := make([]int, 250)
	for i := range indexes {
		indexes[i] = i
	}

	first := browse.Paginate(indexes, 0, 100)
	assert.Equal(t, 3, first.TotalPages)
	assert.Equal(t, 0, first.Start)
	assert.Equal(t, 100, first.End)
	assert.Len(t, first.Indexes, 100)

	last := browse.Paginate(indexes, 2, 100)
	assert.Equal(t, 200, last.Start)
	assert.Equal(t, 250, last.End)
	assert.Len(t, last.Indexes, 50)

	clamped := browse.Paginate(indexes, 99, 100)
	assert.Equal(t, 2, clamped.Number)

	negative := browse.Paginate(indexes, -4, 100)
	assert.Equal(t, 0, negative.Number)
}

func TestPaginate_EmptyHasOnePage(t *testing.T) {
	t.Parallel()

	page := browse.Paginate(nil, 3, 0)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, 0, page.Number)
	assert.Equal(t, browse.DefaultPageSize, page.Size)
	assert.Empty(t, page.Indexes)
}

func TestClampPageSize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, browse.DefaultPageSize, browse.ClampPageSize(0))
	assert.Equal(t, browse.MinPageSize, browse.ClampPageSize(3))
	assert.Equal(t, browse.MaxPageSize, browse.ClampPageSize(5000))
	assert.Equal(t, 250, browse.ClampPageSize(250))
}

func TestRow(t *testing.T) {
	t.Parallel()

	records := sample(t)

	assert.Equal(t, []string{"[1 i...", "Moby...", "null"}, browse.Row(records[0], []string{"authors", "title", "year"}, 4))
	assert.Equal(t, []string{"[1 items]"}, browse.Row(records[0], []string{"authors"}, 50))
	assert.Equal(t, []string{"null"}, browse.Row(records[2], []string{"title"}, 50))
	assert.Equal(t, []string{"a", "b"}, browse.Columns([]string{"a", "b", "c"}, 2))
	assert.Equal(t, []string{"a"}, browse.Columns([]string{"a"}, 5))
}
