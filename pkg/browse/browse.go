// Package browse implements record search and pagination for the record
// browser views.
package browse

import (
	"strings"

	"github.com/jeffcwolf/metadata-explorer/pkg/record"
)

// Page size bounds.
const (
	DefaultPageSize = 100
	MinPageSize     = 10
	MaxPageSize     = 1000

	// DefaultColumns is the number of leading fields shown as columns.
	DefaultColumns = 5
)

// Filter returns the indexes of records whose search text contains query,
// compared case-insensitively. An empty query selects every record.
func Filter(records []record.Value, query string) []int {
	indexes := make([]int, 0, len(records))
	needle := strings.ToLower(query)

	for idx, rec := range records {
		if needle == "" || strings.Contains(strings.ToLower(record.SearchText(rec)), needle) {
			indexes = append(indexes, idx)
		}
	}

	return indexes
}

// ClampPageSize forces size into [MinPageSize, MaxPageSize]. Zero selects
// DefaultPageSize.
func ClampPageSize(size int) int {
	switch {
	case size == 0:
		return DefaultPageSize
	case size < MinPageSize:
		return MinPageSize
	case size > MaxPageSize:
		return MaxPageSize
	default:
		return size
	}
}

// Page is one window over a filtered index list.
type Page struct {
	// Number is the 0-based page number after clamping.
	Number     int   `json:"page" yaml:"page"`
	Size       int   `json:"page_size" yaml:"page_size"`
	TotalPages int   `json:"total_pages" yaml:"total_pages"`
	TotalItems int   `json:"total_items" yaml:"total_items"`
	Start      int   `json:"start" yaml:"start"`
	End        int   `json:"end" yaml:"end"`
	Indexes    []int `json:"indexes" yaml:"indexes"`
}

// Paginate cuts indexes into pages of size and returns the requested page.
// There is always at least one page; out-of-range pages are clamped.
func Paginate(indexes []int, page, size int) Page {
	size = ClampPageSize(size)

	total := len(indexes)
	pages := max(1, (total+size-1)/size)
	page = min(max(page, 0), pages-1)

	start := min(page*size, total)
	end := min(start+size, total)

	return Page{
		Number:     page,
		Size:       size,
		TotalPages: pages,
		TotalItems: total,
		Start:      start,
		End:        end,
		Indexes:    indexes[start:end],
	}
}

// Row renders the given fields of one record as display cells. Missing
// fields and non-object records show as "null".
func Row(rec record.Value, fields []string, maxLen int) []string {
	cells := make([]string, 0, len(fields))

	for _, field := range fields {
		value, _ := rec.Get(field)
		cells = append(cells, record.DisplayText(value, maxLen))
	}

	return cells
}

// Columns returns the first n field names.
func Columns(fieldNames []string, n int) []string {
	if n <= 0 || n >= len(fieldNames) {
		return fieldNames
	}

	return fieldNames[:n]
}
