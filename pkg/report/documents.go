package report

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/jeffcwolf/metadata-explorer/pkg/browse"
	"github.com/jeffcwolf/metadata-explorer/pkg/dataset"
	"github.com/jeffcwolf/metadata-explorer/pkg/profile"
	"github.com/jeffcwolf/metadata-explorer/pkg/record"
	"github.com/jeffcwolf/metadata-explorer/pkg/schemadiff"
)

// StatsDoc summarizes a loaded dataset.
type StatsDoc struct {
	Path           string    `json:"path" yaml:"path"`
	Format         string    `json:"format" yaml:"format"`
	SizeBytes      int64     `json:"size_bytes" yaml:"size_bytes"`
	TotalRecords   int       `json:"total_records" yaml:"total_records"`
	TotalFields    int       `json:"total_fields" yaml:"total_fields"`
	TotalIssues    int       `json:"total_issues" yaml:"total_issues"`
	LoadedAt       time.Time `json:"loaded_at" yaml:"loaded_at"`
	AnalysisMillis int64     `json:"analysis_ms" yaml:"analysis_ms"`
}

// NewStatsDoc describes ds with its catalog size and issue count.
func NewStatsDoc(ds *dataset.Dataset, fields, issues int, elapsed time.Duration) StatsDoc {
	return StatsDoc{
		Path:           ds.Path,
		Format:         string(ds.Format),
		SizeBytes:      ds.Size,
		TotalRecords:   len(ds.Records),
		TotalFields:    fields,
		TotalIssues:    issues,
		LoadedAt:       ds.LoadedAt,
		AnalysisMillis: elapsed.Milliseconds(),
	}
}

// Sheets implements [Document].
func (d StatsDoc) Sheets() []Sheet {
	return []Sheet{{
		Name:   "Statistics",
		Header: []string{"Metric", "Value"},
		Rows: [][]any{
			{"File", d.Path},
			{"Format", d.Format},
			{"Size (bytes)", d.SizeBytes},
			{"Total Records", d.TotalRecords},
			{"Total Fields Detected", d.TotalFields},
			{"Quality Issues", d.TotalIssues},
			{"Analysis Time (ms)", d.AnalysisMillis},
		},
	}}
}

// FieldRow is one schema table entry.
type FieldRow struct {
	Name        string  `json:"name" yaml:"name"`
	FieldType   string  `json:"field_type" yaml:"field_type"`
	SampleCount int     `json:"sample_count" yaml:"sample_count"`
	NullCount   int     `json:"null_count" yaml:"null_count"`
	Coverage    float64 `json:"coverage" yaml:"coverage"`
}

// SchemaDoc is the field catalog view.
type SchemaDoc struct {
	TotalRecords int        `json:"total_records" yaml:"total_records"`
	Fields       []FieldRow `json:"fields" yaml:"fields"`
}

// NewSchemaDoc builds the catalog view for total records.
func NewSchemaDoc(fields []profile.FieldInfo, total int) SchemaDoc {
	rows := make([]FieldRow, 0, len(fields))

	for _, f := range fields {
		rows = append(rows, FieldRow{
			Name:        f.Name,
			FieldType:   f.FieldType,
			SampleCount: f.SampleCount,
			NullCount:   f.NullCount,
			Coverage:    f.Coverage(total),
		})
	}

	return SchemaDoc{TotalRecords: total, Fields: rows}
}

// Sheets implements [Document].
func (d SchemaDoc) Sheets() []Sheet {
	rows := make([][]any, 0, len(d.Fields))
	for _, f := range d.Fields {
		rows = append(rows, []any{f.Name, f.FieldType, f.SampleCount, d.TotalRecords, f.NullCount, f.Coverage})
	}

	return []Sheet{{
		Name:   "Schema",
		Header: []string{"Field Name", "Data Type", "Present In", "Total Records", "Null Count", "Coverage %"},
		Rows:   rows,
	}}
}

// IssueRow is one quality issue.
type IssueRow struct {
	Record      string `json:"record" yaml:"record"`
	RecordIndex int    `json:"record_index" yaml:"record_index"`
	IssueType   string `json:"issue_type" yaml:"issue_type"`
	Description string `json:"description" yaml:"description"`
}

// IssuesDoc is the quality issue view.
type IssuesDoc struct {
	Total  int        `json:"total" yaml:"total"`
	Issues []IssueRow `json:"issues" yaml:"issues"`
}

// NewIssuesDoc builds the issue view in scan order.
func NewIssuesDoc(issues []profile.RecordIssue) IssuesDoc {
	rows := make([]IssueRow, 0, len(issues))

	for _, issue := range issues {
		rows = append(rows, IssueRow{
			Record:      issue.Label(),
			RecordIndex: issue.RecordIndex,
			IssueType:   issue.IssueType,
			Description: issue.Description,
		})
	}

	return IssuesDoc{Total: len(rows), Issues: rows}
}

// Sheets implements [Document].
func (d IssuesDoc) Sheets() []Sheet {
	rows := make([][]any, 0, len(d.Issues))
	for _, issue := range d.Issues {
		rows = append(rows, []any{issue.Record, issue.IssueType, issue.Description})
	}

	return []Sheet{{Name: "Issues", Header: []string{"Record", "Issue Type", "Description"}, Rows: rows}}
}

// FacetDoc is the value distribution of one field, cut to a display limit.
type FacetDoc struct {
	FieldName    string                   `json:"field_name" yaml:"field_name"`
	TotalValues  int                      `json:"total_values" yaml:"total_values"`
	UniqueValues int                      `json:"unique_values" yaml:"unique_values"`
	NullCount    int                      `json:"null_count" yaml:"null_count"`
	Cardinality  profile.CardinalityClass `json:"cardinality" yaml:"cardinality"`
	Values       []profile.FacetValue     `json:"values" yaml:"values"`
	Hidden       int                      `json:"hidden_values" yaml:"hidden_values"`
	Numeric      *profile.NumericSummary  `json:"numeric,omitempty" yaml:"numeric,omitempty"`
}

// NewFacetDoc keeps the limit most frequent values; a non-positive limit
// keeps all of them.
func NewFacetDoc(fp profile.FieldProfile, limit int) FacetDoc {
	values := fp.Facets.Top(limit)

	return FacetDoc{
		FieldName:    fp.Facets.FieldName,
		TotalValues:  fp.Facets.TotalValues,
		UniqueValues: fp.Facets.UniqueValues,
		NullCount:    fp.Facets.NullCount,
		Cardinality:  fp.Cardinality,
		Values:       values,
		Hidden:       len(fp.Facets.ValueFrequency) - len(values),
		Numeric:      fp.Numeric,
	}
}

// Sheets implements [Document].
func (d FacetDoc) Sheets() []Sheet {
	sheets := []Sheet{{
		Name:   "Facets",
		Header: facetHeader,
		Rows:   d.rows(),
	}}

	if d.Numeric != nil {
		sheets = append(sheets, Sheet{Name: "Numeric", Header: numericHeader, Rows: [][]any{numericRow(*d.Numeric)}})
	}

	return sheets
}

var (
	facetHeader   = []string{"Field", "Value", "Count", "Percentage"}
	patternHeader = []string{"Field", "Pattern", "Count", "Percentage", "Examples", "Description"}
	numericHeader = []string{"Field", "Count", "Min", "Max", "Mean", "Median", "Std Dev", "Q25", "Q75"}
)

func (d FacetDoc) rows() [][]any {
	rows := make([][]any, 0, len(d.Values))
	for _, v := range d.Values {
		rows = append(rows, []any{d.FieldName, v.Value, v.Count, v.Percentage})
	}

	return rows
}

func numericRow(n profile.NumericSummary) []any {
	return []any{n.FieldName, n.Count, n.Min, n.Max, n.Mean, n.Median, n.StdDev, n.Q25, n.Q75}
}

// PatternRow is one pattern group.
type PatternRow struct {
	Key         string   `json:"key" yaml:"key"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Count       int      `json:"count" yaml:"count"`
	Percentage  float64  `json:"percentage" yaml:"percentage"`
	Examples    []string `json:"examples" yaml:"examples"`
}

// PatternDoc is the pattern breakdown of one field.
type PatternDoc struct {
	FieldName   string       `json:"field_name" yaml:"field_name"`
	TotalValues int          `json:"total_values" yaml:"total_values"`
	Groups      []PatternRow `json:"groups" yaml:"groups"`
}

// NewPatternDoc flattens pa for output.
func NewPatternDoc(pa profile.PatternAnalysis) PatternDoc {
	groups := make([]PatternRow, 0, len(pa.PatternGroups))

	for _, g := range pa.PatternGroups {
		groups = append(groups, PatternRow{
			Key:         g.PatternType.String(),
			Name:        g.PatternType.Name(),
			Description: g.PatternType.Description(),
			Count:       g.Count,
			Percentage:  g.Percentage,
			Examples:    g.Examples,
		})
	}

	return PatternDoc{FieldName: pa.FieldName, TotalValues: pa.TotalValues, Groups: groups}
}

// Sheets implements [Document].
func (d PatternDoc) Sheets() []Sheet {
	return []Sheet{{Name: "Patterns", Header: patternHeader, Rows: d.rows()}}
}

func (d PatternDoc) rows() [][]any {
	rows := make([][]any, 0, len(d.Groups))
	for _, g := range d.Groups {
		rows = append(rows, []any{d.FieldName, g.Name, g.Count, g.Percentage, strings.Join(g.Examples, " | "), g.Description})
	}

	return rows
}

// FieldDoc pairs the facet and pattern views of one field.
type FieldDoc struct {
	Facets   FacetDoc   `json:"facets" yaml:"facets"`
	Patterns PatternDoc `json:"patterns" yaml:"patterns"`
}

// ProfileDoc is the full dataset report.
type ProfileDoc struct {
	Stats  StatsDoc   `json:"stats" yaml:"stats"`
	Schema SchemaDoc  `json:"schema" yaml:"schema"`
	Issues IssuesDoc  `json:"issues" yaml:"issues"`
	Fields []FieldDoc `json:"fields" yaml:"fields"`
}

// NewProfileDoc assembles the report of ds from its profile p.
func NewProfileDoc(ds *dataset.Dataset, p *profile.Profile, facetLimit int) ProfileDoc {
	fields := make([]FieldDoc, 0, len(p.FieldDetails))
	for _, fp := range p.FieldDetails {
		fields = append(fields, FieldDoc{Facets: NewFacetDoc(fp, facetLimit), Patterns: NewPatternDoc(fp.Patterns)})
	}

	return ProfileDoc{
		Stats:  NewStatsDoc(ds, len(p.Fields), len(p.Issues), p.Elapsed),
		Schema: NewSchemaDoc(p.Fields, p.TotalRecords),
		Issues: NewIssuesDoc(p.Issues),
		Fields: fields,
	}
}

// Sheets implements [Document].
func (d ProfileDoc) Sheets() []Sheet {
	var facets, patterns, numeric [][]any

	for _, f := range d.Fields {
		facets = append(facets, f.Facets.rows()...)
		patterns = append(patterns, f.Patterns.rows()...)

		if f.Facets.Numeric != nil {
			numeric = append(numeric, numericRow(*f.Facets.Numeric))
		}
	}

	sheets := make([]Sheet, 0, 6)
	sheets = append(sheets, d.Stats.Sheets()...)
	sheets = append(sheets, d.Schema.Sheets()...)
	sheets = append(sheets, d.Issues.Sheets()...)
	sheets = append(sheets,
		Sheet{Name: "Facets", Header: facetHeader, Rows: facets},
		Sheet{Name: "Patterns", Header: patternHeader, Rows: patterns},
		Sheet{Name: "Numeric", Header: numericHeader, Rows: numeric},
	)

	return sheets
}

// RecordRow is one browsed record.
type RecordRow struct {
	// Index is the 0-based position in the dataset.
	Index  int          `json:"index" yaml:"index"`
	Cells  []string     `json:"cells" yaml:"cells"`
	Record record.Value `json:"record" yaml:"record"`
}

// RecordsDoc is one page of the record browser.
type RecordsDoc struct {
	Query   string      `json:"query" yaml:"query"`
	Page    browse.Page `json:"page" yaml:"page"`
	Columns []string    `json:"columns" yaml:"columns"`
	Rows    []RecordRow `json:"rows" yaml:"rows"`
}

// BrowseOptions select a page of records.
type BrowseOptions struct {
	Query     string
	Page      int
	PageSize  int
	Columns   int
	CellWidth int
}

// NewRecordsDoc filters records by the query and cuts out one page.
func NewRecordsDoc(records []record.Value, fieldNames []string, opts BrowseOptions) RecordsDoc {
	cellWidth := opts.CellWidth
	if cellWidth == 0 {
		cellWidth = record.DefaultDisplayWidth
	}

	columns := browse.Columns(fieldNames, opts.Columns)
	page := browse.Paginate(browse.Filter(records, opts.Query), opts.Page, opts.PageSize)

	rows := make([]RecordRow, 0, len(page.Indexes))
	for _, idx := range page.Indexes {
		rows = append(rows, RecordRow{
			Index:  idx,
			Cells:  browse.Row(records[idx], columns, cellWidth),
			Record: records[idx],
		})
	}

	return RecordsDoc{Query: opts.Query, Page: page, Columns: columns, Rows: rows}
}

// Sheets implements [Document].
func (d RecordsDoc) Sheets() []Sheet {
	header := append([]string{"#"}, d.Columns...)

	rows := make([][]any, 0, len(d.Rows))
	for _, r := range d.Rows {
		row := make([]any, 0, len(r.Cells)+1)
		row = append(row, r.Index+1)

		for _, cell := range r.Cells {
			row = append(row, cell)
		}

		rows = append(rows, row)
	}

	return []Sheet{{Name: "Records", Header: header, Rows: rows}}
}

// DetailRow is one member of a record.
type DetailRow struct {
	Key   string `json:"key" yaml:"key"`
	Type  string `json:"type" yaml:"type"`
	Value string `json:"value" yaml:"value"`
}

// DetailDoc shows every member of one record.
type DetailDoc struct {
	Index  int          `json:"index" yaml:"index"`
	Label  string       `json:"label" yaml:"label"`
	Fields []DetailRow  `json:"fields" yaml:"fields"`
	Record record.Value `json:"record" yaml:"record"`
}

// NewDetailDoc describes the record at 0-based index. Non-object records
// show as a single row with an empty key.
func NewDetailDoc(rec record.Value, index int) DetailDoc {
	doc := DetailDoc{Index: index, Label: profile.RecordIssue{RecordIndex: index}.Label(), Record: rec}

	if !rec.IsObject() {
		doc.Fields = []DetailRow{{Type: record.TypeLabel(rec), Value: detailText(rec)}}

		return doc
	}

	doc.Fields = make([]DetailRow, 0, rec.Len())
	for _, key := range rec.Keys() {
		value, _ := rec.Get(key)
		doc.Fields = append(doc.Fields, DetailRow{Key: key, Type: record.TypeLabel(value), Value: detailText(value)})
	}

	return doc
}

// Sheets implements [Document].
func (d DetailDoc) Sheets() []Sheet {
	rows := make([][]any, 0, len(d.Fields))
	for _, f := range d.Fields {
		rows = append(rows, []any{f.Key, f.Type, f.Value})
	}

	return []Sheet{{Name: "Record " + d.Label, Header: []string{"Key", "Type", "Value"}, Rows: rows}}
}

func detailText(v record.Value) string {
	switch v.Kind() {
	case record.KindArray, record.KindObject:
		encoded, err := json.Marshal(v)
		if err != nil {
			return record.DisplayText(v, 0)
		}

		return string(encoded)
	case record.KindNull, record.KindBool, record.KindNumber, record.KindString:
	}

	return record.DisplayText(v, 0)
}

// DiffDoc compares the catalogs of two datasets.
type DiffDoc struct {
	OldPath           string `json:"old_path" yaml:"old_path"`
	NewPath           string `json:"new_path" yaml:"new_path"`
	schemadiff.Result `yaml:",inline"`
	Unified           string `json:"unified" yaml:"unified"`
}

// NewDiffDoc compares oldFields with newFields.
func NewDiffDoc(oldPath, newPath string, oldFields, newFields []profile.FieldInfo) DiffDoc {
	return DiffDoc{
		OldPath: oldPath,
		NewPath: newPath,
		Result:  schemadiff.Compare(oldFields, newFields),
		Unified: schemadiff.Unified(oldFields, newFields),
	}
}

// Sheets implements [Document].
func (d DiffDoc) Sheets() []Sheet {
	rows := make([][]any, 0, len(d.Added)+len(d.Removed)+len(d.TypeChanged))

	for _, f := range d.Added {
		rows = append(rows, []any{"added", f.Name, "", f.FieldType})
	}

	for _, f := range d.Removed {
		rows = append(rows, []any{"removed", f.Name, f.FieldType, ""})
	}

	for _, c := range d.TypeChanged {
		rows = append(rows, []any{"type_changed", c.Field, c.OldType, c.NewType})
	}

	return []Sheet{{Name: "Schema Diff", Header: []string{"Change", "Field", "Old Type", "New Type"}, Rows: rows}}
}
