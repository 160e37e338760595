package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/jeffcwolf/metadata-explorer/pkg/profile"
	"github.com/jeffcwolf/metadata-explorer/pkg/record"
	"github.com/jeffcwolf/metadata-explorer/pkg/report/terminal"
)

const (
	defaultBarWidth   = 30
	defaultLabelWidth = 30
	statsLabelWidth   = 23
	floatDigits       = 2
)

// Renderer holds text rendering settings.
type Renderer struct {
	Term       terminal.Config
	BarWidth   int
	LabelWidth int
}

// NewRenderer creates a Renderer for term.
func NewRenderer(term terminal.Config) *Renderer {
	return &Renderer{Term: term, BarWidth: defaultBarWidth, LabelWidth: defaultLabelWidth}
}

func (r *Renderer) header(w io.Writer, title, right string) {
	fmt.Fprintln(w, r.Term.Colorize(terminal.DrawHeader(title, right, r.Term.Width), color.Bold))
}

func (r *Renderer) coverage(percent float64) string {
	return r.Term.Colorize(fmt.Sprintf("%.1f%%", percent), terminal.CoverageColor(percent))
}

func (r *Renderer) dim(s string) string {
	return r.Term.Colorize(s, color.Faint)
}

func newTable(w io.Writer) table.Writer {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Options.SeparateColumns = false
	tbl.Style().Options.DrawBorder = false

	return tbl
}

func formatFloat(f float64) string {
	return humanize.CommafWithDigits(f, floatDigits)
}

// WriteText implements [Document].
func (d StatsDoc) WriteText(w io.Writer, r *Renderer) error {
	r.header(w, "DATASET STATISTICS", d.Format)

	lines := [][2]string{
		{"File", d.Path},
		{"Size", humanize.Bytes(uint64(max(d.SizeBytes, 0)))},
		{"Total Records", humanize.Comma(int64(d.TotalRecords))},
		{"Total Fields Detected", humanize.Comma(int64(d.TotalFields))},
		{"Quality Issues", humanize.Comma(int64(d.TotalIssues))},
		{"Analysis Time", (time.Duration(d.AnalysisMillis) * time.Millisecond).String()},
	}

	if !d.LoadedAt.IsZero() {
		lines = append(lines, [2]string{"Loaded", humanize.Time(d.LoadedAt)})
	}

	for _, line := range lines {
		fmt.Fprintf(w, "%s %s\n", terminal.PadRight(line[0]+":", statsLabelWidth), line[1])
	}

	return nil
}

// WriteText implements [Document].
func (d SchemaDoc) WriteText(w io.Writer, r *Renderer) error {
	r.header(w, "SCHEMA", fmt.Sprintf("%d fields · %s records", len(d.Fields), humanize.Comma(int64(d.TotalRecords))))

	if len(d.Fields) == 0 {
		fmt.Fprintln(w, r.dim("No fields detected"))

		return nil
	}

	tbl := newTable(w)
	tbl.AppendHeader(table.Row{"Field Name", "Data Type", "Present In", "Null Count", "Coverage %"})

	for _, f := range d.Fields {
		tbl.AppendRow(table.Row{
			f.Name,
			f.FieldType,
			fmt.Sprintf("%d / %d", f.SampleCount, d.TotalRecords),
			f.NullCount,
			r.coverage(f.Coverage),
		})
	}

	tbl.Render()

	return nil
}

// WriteText implements [Document].
func (d IssuesDoc) WriteText(w io.Writer, r *Renderer) error {
	r.header(w, "DATA QUALITY ISSUES", "")
	fmt.Fprintf(w, "Total Issues Found: %d\n", d.Total)

	if d.Total == 0 {
		fmt.Fprintln(w, r.Term.Colorize("No issues found", color.FgGreen))

		return nil
	}

	tbl := newTable(w)
	tbl.AppendHeader(table.Row{"Record", "Issue Type", "Description"})

	for _, issue := range d.Issues {
		kind := r.Term.Colorize(issue.IssueType, color.FgRed)
		if issue.RecordIndex == profile.DatasetLevel {
			kind = r.Term.Colorize(issue.IssueType, color.FgYellow)
		}

		tbl.AppendRow(table.Row{issue.Record, kind, issue.Description})
	}

	tbl.Render()

	return nil
}

// WriteText implements [Document].
func (d FacetDoc) WriteText(w io.Writer, r *Renderer) error {
	r.header(w, "FACETS: "+d.FieldName, string(d.Cardinality))
	fmt.Fprintf(w, "Total values: %s · Unique: %s · Nulls: %s\n",
		humanize.Comma(int64(d.TotalValues)), humanize.Comma(int64(d.UniqueValues)), humanize.Comma(int64(d.NullCount)))
	fmt.Fprintln(w, terminal.DrawSeparator(r.Term.Width))

	if len(d.Values) == 0 {
		fmt.Fprintln(w, r.dim("No values"))
	}

	for _, v := range d.Values {
		fmt.Fprintln(w, terminal.DrawPercentBar(v.Value, v.Percentage, v.Count, r.LabelWidth, r.BarWidth))
	}

	if d.Hidden > 0 {
		fmt.Fprintln(w, r.dim(fmt.Sprintf("... and %s more values", humanize.Comma(int64(d.Hidden)))))
	}

	if d.Numeric != nil {
		fmt.Fprintln(w)
		writeNumeric(w, *d.Numeric)
	}

	return nil
}

func writeNumeric(w io.Writer, n profile.NumericSummary) {
	tbl := newTable(w)
	tbl.SetTitle("Numeric summary")
	tbl.AppendHeader(table.Row{"Count", "Min", "Q25", "Median", "Mean", "Q75", "Max", "Std Dev"})
	tbl.AppendRow(table.Row{
		n.Count,
		formatFloat(n.Min), formatFloat(n.Q25), formatFloat(n.Median), formatFloat(n.Mean),
		formatFloat(n.Q75), formatFloat(n.Max), formatFloat(n.StdDev),
	})
	tbl.Render()
}

// WriteText implements [Document].
func (d PatternDoc) WriteText(w io.Writer, r *Renderer) error {
	r.header(w, "PATTERNS: "+d.FieldName, humanize.Comma(int64(d.TotalValues))+" values")

	if len(d.Groups) == 0 {
		fmt.Fprintln(w, r.dim("No values to classify"))

		return nil
	}

	tbl := newTable(w)
	tbl.AppendHeader(table.Row{"Pattern", "Count", "%", "Examples", "Description"})

	for _, g := range d.Groups {
		examples := make([]string, 0, len(g.Examples))
		for _, ex := range g.Examples {
			examples = append(examples, strconv.Quote(record.Truncate(ex, r.LabelWidth)))
		}

		tbl.AppendRow(table.Row{
			g.Name,
			g.Count,
			fmt.Sprintf("%.1f", g.Percentage),
			strings.Join(examples, ", "),
			r.dim(g.Description),
		})
	}

	tbl.Render()

	return nil
}

// WriteText implements [Document].
func (d ProfileDoc) WriteText(w io.Writer, r *Renderer) error {
	sections := []Document{d.Stats, d.Schema, d.Issues}

	for _, f := range d.Fields {
		sections = append(sections, f.Facets, f.Patterns)
	}

	for idx, section := range sections {
		if idx > 0 {
			fmt.Fprintln(w)
		}

		if err := section.WriteText(w, r); err != nil {
			return err
		}
	}

	return nil
}

// WriteText implements [Document].
func (d RecordsDoc) WriteText(w io.Writer, r *Renderer) error {
	right := fmt.Sprintf("page %d of %d · %s matching", d.Page.Number+1, d.Page.TotalPages, humanize.Comma(int64(d.Page.TotalItems)))
	r.header(w, "RECORDS", right)

	if d.Query != "" {
		fmt.Fprintf(w, "Filter: %q\n", d.Query)
	}

	if len(d.Rows) == 0 {
		fmt.Fprintln(w, r.dim("No matching records"))

		return nil
	}

	tbl := newTable(w)

	header := make(table.Row, 0, len(d.Columns)+1)
	header = append(header, "#")

	for _, c := range d.Columns {
		header = append(header, c)
	}

	tbl.AppendHeader(header)

	for _, row := range d.Rows {
		cells := make(table.Row, 0, len(row.Cells)+1)
		cells = append(cells, row.Index+1)

		for _, c := range row.Cells {
			cells = append(cells, c)
		}

		tbl.AppendRow(cells)
	}

	tbl.Render()

	return nil
}

// WriteText implements [Document].
func (d DetailDoc) WriteText(w io.Writer, r *Renderer) error {
	r.header(w, "RECORD "+d.Label, strconv.Itoa(len(d.Fields))+" fields")

	tbl := newTable(w)
	tbl.AppendHeader(table.Row{"Key", "Type", "Value"})

	for _, f := range d.Fields {
		tbl.AppendRow(table.Row{f.Key, r.dim(f.Type), f.Value})
	}

	tbl.Render()

	return nil
}

// WriteText implements [Document].
func (d DiffDoc) WriteText(w io.Writer, r *Renderer) error {
	r.header(w, "SCHEMA DIFF", "")
	fmt.Fprintf(w, "--- %s\n+++ %s\n", d.OldPath, d.NewPath)

	if d.Empty() {
		fmt.Fprintln(w, r.Term.Colorize("Schemas are identical", color.FgGreen))

		return nil
	}

	for _, line := range strings.Split(strings.TrimSuffix(d.Unified, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "+ "):
			line = r.Term.Colorize(line, color.FgGreen)
		case strings.HasPrefix(line, "- "):
			line = r.Term.Colorize(line, color.FgRed)
		}

		fmt.Fprintln(w, line)
	}

	fmt.Fprintf(w, "%d added, %d removed, %d type changes\n", len(d.Added), len(d.Removed), len(d.TypeChanged))

	return nil
}
