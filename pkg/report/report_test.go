package report_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jeffcwolf/metadata-explorer/pkg/dataset"
	"github.com/jeffcwolf/metadata-explorer/pkg/profile"
	"github.com/jeffcwolf/metadata-explorer/pkg/record"
	"github.com/jeffcwolf/metadata-explorer/pkg/report"
	"github.com/jeffcwolf/metadata-explorer/pkg/report/terminal"
)

const sample = `[
	{"id": 1, "title": "Alpha", "lang": "eng", "year": 1850},
	{"id": 2, "title": null, "lang": "ger", "year": 1900},
	"not an object",
	{"id": 3, "title": "Gamma", "lang": "eng"}
]`

func decode(t *testing.T, doc string) []record.Value {
	t.Helper()

	records, err := record.DecodeArray(strings.NewReader(doc))
	require.NoError(t, err)

	return records
}

func plainRenderer() *report.Renderer {
	return report.NewRenderer(terminal.Config{Width: 80, NoColor: true})
}

func buildProfile(t *testing.T) (*dataset.Dataset, *profile.Profile) {
	t.Helper()

	records := decode(t, sample)
	ds := &dataset.Dataset{Path: "sample.json", Format: dataset.FormatJSON, Size: 256, Records: records}

	p, err := profile.Build(context.Background(), records, profile.Options{})
	require.NoError(t, err)

	return ds, p
}

func TestValidateFormat(t *testing.T) {
	t.Parallel()

	for _, format := range report.Formats() {
		require.NoError(t, report.ValidateFormat(format))
	}

	require.NoError(t, report.ValidateFormat(" JSON "))
	require.ErrorIs(t, report.ValidateFormat("csv"), report.ErrUnsupportedFormat)
	assert.Equal(t, report.FormatText, report.NormalizeFormat(""))
}

func TestSchemaDoc_Text(t *testing.T) {
	t.Parallel()

	fields, _ := profile.InferSchema(decode(t, sample))
	doc := report.NewSchemaDoc(fields, 4)

	require.Len(t, doc.Fields, 4)
	assert.Equal(t, "id", doc.Fields[0].Name)
	assert.InDelta(t, 75.0, doc.Fields[0].Coverage, 0.001)

	var buf bytes.Buffer
	require.NoError(t, doc.WriteText(&buf, plainRenderer()))

	out := buf.String()
	assert.Contains(t, out, "FIELD NAME")
	assert.Contains(t, out, "3 / 4")
	assert.Contains(t, out, "50.0%")
	assert.NotContains(t, out, "\x1b[")
}

func TestIssuesDoc_Text(t *testing.T) {
	t.Parallel()

	doc := report.NewIssuesDoc(profile.ScanQuality(decode(t, sample)))

	require.Equal(t, 1, doc.Total)
	assert.Equal(t, "#3", doc.Issues[0].Record)

	var buf bytes.Buffer
	require.NoError(t, doc.WriteText(&buf, plainRenderer()))
	assert.Contains(t, buf.String(), "Total Issues Found: 1")
	assert.Contains(t, buf.String(), "Record is not a JSON object")
}

func TestIssuesDoc_Empty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, report.NewIssuesDoc(nil).WriteText(&buf, plainRenderer()))
	assert.Contains(t, buf.String(), "No issues found")
}

func TestFacetDoc_Limit(t *testing.T) {
	t.Parallel()

	records := decode(t, `[{"c":"a"},{"c":"a"},{"c":"b"},{"c":"c"},{"c":null}]`)
	doc := report.NewFacetDoc(profile.AnalyzeFieldFull(records, "c"), 2)

	require.Len(t, doc.Values, 2)
	assert.Equal(t, "a", doc.Values[0].Value)
	assert.Equal(t, 1, doc.Hidden)
	assert.Equal(t, 1, doc.NullCount)
	assert.Nil(t, doc.Numeric)

	var buf bytes.Buffer
	require.NoError(t, doc.WriteText(&buf, plainRenderer()))
	assert.Contains(t, buf.String(), "FACETS: c")
	assert.Contains(t, buf.String(), "... and 1 more values")
	assert.Contains(t, buf.String(), terminal.ProgressFilled)
}

func TestFacetDoc_Numeric(t *testing.T) {
	t.Parallel()

	records := decode(t, `[{"n":1},{"n":2},{"n":3}]`)
	doc := report.NewFacetDoc(profile.AnalyzeFieldFull(records, "n"), 0)

	require.NotNil(t, doc.Numeric)

	var buf bytes.Buffer
	require.NoError(t, doc.WriteText(&buf, plainRenderer()))
	assert.Contains(t, buf.String(), "MEDIAN")
	assert.Len(t, doc.Sheets(), 2)
}

func TestPatternDoc(t *testing.T) {
	t.Parallel()

	records := decode(t, `[{"d":"1850"},{"d":"1900"},{"d":"eng"}]`)
	doc := report.NewPatternDoc(profile.AnalyzeFieldFull(records, "d").Patterns)

	require.Len(t, doc.Groups, 2)
	assert.Equal(t, "four_digit_year", doc.Groups[0].Key)
	assert.Equal(t, profile.PatternFourDigitYear.Name(), doc.Groups[0].Name)

	var buf bytes.Buffer
	require.NoError(t, doc.WriteText(&buf, plainRenderer()))
	assert.Contains(t, buf.String(), `"1850"`)
}

func TestWrite_JSON(t *testing.T) {
	t.Parallel()

	ds, p := buildProfile(t)
	doc := report.NewProfileDoc(ds, p, 10)

	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, report.FormatJSON, doc, plainRenderer()))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Contains(t, decoded, "stats")
	assert.Contains(t, decoded, "schema")
	assert.Contains(t, decoded, "fields")
}

func TestWrite_YAML(t *testing.T) {
	t.Parallel()

	doc := report.NewSchemaDoc([]profile.FieldInfo{{Name: "title", FieldType: "string", SampleCount: 1}}, 2)

	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, "yaml", doc, plainRenderer()))
	assert.Contains(t, buf.String(), "name: title")
	assert.Contains(t, buf.String(), "coverage: 50")
}

func TestWrite_Unsupported(t *testing.T) {
	t.Parallel()

	err := report.Write(&bytes.Buffer{}, "html", report.NewIssuesDoc(nil), plainRenderer())
	require.ErrorIs(t, err, report.ErrUnsupportedFormat)
}

func TestWrite_Workbook(t *testing.T) {
	t.Parallel()

	ds, p := buildProfile(t)

	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, report.FormatXLSX, report.NewProfileDoc(ds, p, 0), plainRenderer()))

	book, err := excelize.OpenReader(&buf)
	require.NoError(t, err)

	defer book.Close()

	assert.Equal(t, []string{"Statistics", "Schema", "Issues", "Facets", "Patterns", "Numeric"}, book.GetSheetList())

	rows, err := book.GetRows("Schema")
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, "Field Name", rows[0][0])
	assert.Equal(t, "id", rows[1][0])
}

func TestWriteWorkbook_DuplicateNames(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, report.WriteWorkbook(&buf, []report.Sheet{{Name: "Data"}, {Name: "data"}}))

	book, err := excelize.OpenReader(&buf)
	require.NoError(t, err)

	defer book.Close()

	assert.Equal(t, []string{"Data", "data (2)"}, book.GetSheetList())
}

func TestSheetName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a-b (c)", report.SheetName("a/b [c]"))
	assert.Equal(t, "Sheet1", report.SheetName(""))
	assert.Len(t, []rune(report.SheetName(strings.Repeat("x", 40))), 31)
}

func TestProfileDoc_Text(t *testing.T) {
	t.Parallel()

	ds, p := buildProfile(t)

	var buf bytes.Buffer
	require.NoError(t, report.NewProfileDoc(ds, p, 5).WriteText(&buf, plainRenderer()))

	out := buf.String()
	assert.Contains(t, out, "DATASET STATISTICS")
	assert.Contains(t, out, "Total Records:")
	assert.Contains(t, out, "FACETS: lang")
	assert.Contains(t, out, "PATTERNS: year")
}

func TestRecordsDoc(t *testing.T) {
	t.Parallel()

	records := decode(t, sample)
	_, names := profile.InferSchema(records)

	doc := report.NewRecordsDoc(records, names, report.BrowseOptions{Query: "ENG", Columns: 2})

	assert.Equal(t, []string{"id", "lang"}, doc.Columns)
	require.Len(t, doc.Rows, 2)
	assert.Equal(t, 0, doc.Rows[0].Index)
	assert.Equal(t, []string{"3", "eng"}, doc.Rows[1].Cells)
	assert.Equal(t, 1, doc.Page.TotalPages)

	var buf bytes.Buffer
	require.NoError(t, doc.WriteText(&buf, plainRenderer()))
	assert.Contains(t, buf.String(), "page 1 of 1")
	assert.Contains(t, buf.String(), `Filter: "ENG"`)
}

func TestDetailDoc(t *testing.T) {
	t.Parallel()

	records := decode(t, `[{"b": [1, 2], "a": "x", "c": null}, 7]`)

	doc := report.NewDetailDoc(records[0], 0)
	assert.Equal(t, "#1", doc.Label)
	assert.Equal(t, []report.DetailRow{
		{Key: "a", Type: "string", Value: "x"},
		{Key: "b", Type: "array of number", Value: "[1,2]"},
		{Key: "c", Type: "null", Value: "null"},
	}, doc.Fields)

	scalar := report.NewDetailDoc(records[1], 1)
	assert.Equal(t, []report.DetailRow{{Type: "number", Value: "7"}}, scalar.Fields)
}

func TestDiffDoc_Text(t *testing.T) {
	t.Parallel()

	before := []profile.FieldInfo{{Name: "a", FieldType: "string"}}
	after := []profile.FieldInfo{{Name: "a", FieldType: "number"}, {Name: "b", FieldType: "bool"}}

	doc := report.NewDiffDoc("old.json", "new.json", before, after)

	var buf bytes.Buffer
	require.NoError(t, doc.WriteText(&buf, plainRenderer()))

	out := buf.String()
	assert.Contains(t, out, "- a: string")
	assert.Contains(t, out, "+ a: number")
	assert.Contains(t, out, "1 added, 0 removed, 1 type changes")

	same := report.NewDiffDoc("x", "y", before, before)
	buf.Reset()
	require.NoError(t, same.WriteText(&buf, plainRenderer()))
	assert.Contains(t, buf.String(), "Schemas are identical")
}
