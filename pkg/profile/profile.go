package profile

import (
	"context"
	"fmt"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jeffcwolf/metadata-explorer/pkg/record"
)

// DefaultWorkers bounds the number of fields profiled concurrently.
const DefaultWorkers = 4

// Options configure [Build].
type Options struct {
	// Fields restricts per-field analysis. Empty selects every field.
	// Names missing from the catalog are still analyzed and yield empty
	// results.
	Fields []string
	// QualityCeiling overrides DefaultQualityCeiling when positive.
	QualityCeiling int
	// Workers bounds concurrency. Non-positive selects DefaultWorkers.
	Workers int
}

// FieldProfile bundles the per-field analyses.
type FieldProfile struct {
	Facets      FacetAnalysis    `json:"facets" yaml:"facets"`
	Patterns    PatternAnalysis  `json:"patterns" yaml:"patterns"`
	Cardinality CardinalityClass `json:"cardinality" yaml:"cardinality"`
	Numeric     *NumericSummary  `json:"numeric,omitempty" yaml:"numeric,omitempty"`
}

// Profile is the complete analysis of one dataset.
type Profile struct {
	TotalRecords int            `json:"total_records" yaml:"total_records"`
	Fields       []FieldInfo    `json:"fields" yaml:"fields"`
	FieldNames   []string       `json:"field_names" yaml:"field_names"`
	Issues       []RecordIssue  `json:"issues" yaml:"issues"`
	FieldDetails []FieldProfile `json:"field_details" yaml:"field_details"`
	Elapsed      time.Duration  `json:"-" yaml:"-"`
}

// AnalyzeFieldFull runs the facet, pattern, cardinality and numeric
// analyses for one field.
func AnalyzeFieldFull(records []record.Value, field string) FieldProfile {
	facets := AnalyzeField(records, field)
	fp := FieldProfile{
		Facets:      facets,
		Patterns:    ClassifyField(facets),
		Cardinality: ClassifyCardinality(facets),
	}

	if summary, ok := SummarizeNumbers(records, field); ok {
		fp.Numeric = &summary
	}

	return fp
}

// Build profiles the whole dataset. Per-field analyses run in parallel;
// cancellation is observed between fields, never inside a scan.
func Build(ctx context.Context, records []record.Value, opts Options) (*Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("profile dataset: %w", err)
	}

	start := time.Now()

	fields, names := InferSchema(records)
	issues := ScanQualityLimit(records, opts.QualityCeiling)

	selected := names
	if len(opts.Fields) > 0 {
		selected = slices.Clone(opts.Fields)
		slices.Sort(selected)
		selected = slices.Compact(selected)
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	details := make([]FieldProfile, len(selected))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for idx, field := range selected {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return fmt.Errorf("profile field %q: %w", field, err)
			}

			details[idx] = AnalyzeFieldFull(records, field)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Profile{
		TotalRecords: len(records),
		Fields:       fields,
		FieldNames:   names,
		Issues:       issues,
		FieldDetails: details,
		Elapsed:      time.Since(start),
	}, nil
}

// Field returns the profile of the named field.
func (p *Profile) Field(name string) (FieldProfile, bool) {
	for _, fp := range p.FieldDetails {
		if fp.Facets.FieldName == name {
			return fp, true
		}
	}

	return FieldProfile{}, false
}
