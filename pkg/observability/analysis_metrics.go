package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricRecordsTotal     = "explorer.analysis.records.total"
	metricFieldsTotal      = "explorer.analysis.fields.total"
	metricIssuesTotal      = "explorer.analysis.issues.total"
	metricAnalysisDuration = "explorer.analysis.duration.seconds"
	metricLoadsTotal       = "explorer.dataset.loads.total"

	attrFormat  = "format"
	attrOutcome = "outcome"
)

// AnalysisMetrics holds OTel instruments for dataset analysis.
type AnalysisMetrics struct {
	recordsTotal metric.Int64Counter
	fieldsTotal  metric.Int64Counter
	issuesTotal  metric.Int64Counter
	duration     metric.Float64Histogram
	loadsTotal   metric.Int64Counter
}

// AnalysisStats summarizes one analysis run, decoupled from profiler types.
type AnalysisStats struct {
	Records  int
	Fields   int
	Issues   int
	Duration time.Duration
}

// NewAnalysisMetrics creates analysis metric instruments from the given meter.
func NewAnalysisMetrics(mt metric.Meter) (*AnalysisMetrics, error) {
	records, err := mt.Int64Counter(metricRecordsTotal,
		metric.WithDescription("Total records analyzed"),
		metric.WithUnit("{record}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricRecordsTotal, err)
	}

	fields, err := mt.Int64Counter(metricFieldsTotal,
		metric.WithDescription("Total fields cataloged"),
		metric.WithUnit("{field}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricFieldsTotal, err)
	}

	issues, err := mt.Int64Counter(metricIssuesTotal,
		metric.WithDescription("Total quality issues found"),
		metric.WithUnit("{issue}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricIssuesTotal, err)
	}

	duration, err := mt.Float64Histogram(metricAnalysisDuration,
		metric.WithDescription("Dataset analysis duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBucketBoundaries...),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricAnalysisDuration, err)
	}

	loads, err := mt.Int64Counter(metricLoadsTotal,
		metric.WithDescription("Dataset load attempts by format and outcome"),
		metric.WithUnit("{load}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricLoadsTotal, err)
	}

	return &AnalysisMetrics{
		recordsTotal: records,
		fieldsTotal:  fields,
		issuesTotal:  issues,
		duration:     duration,
		loadsTotal:   loads,
	}, nil
}

// RecordAnalysis records the totals of one analysis run.
func (am *AnalysisMetrics) RecordAnalysis(ctx context.Context, stats AnalysisStats) {
	am.recordsTotal.Add(ctx, int64(stats.Records))
	am.fieldsTotal.Add(ctx, int64(stats.Fields))
	am.issuesTotal.Add(ctx, int64(stats.Issues))
	am.duration.Record(ctx, stats.Duration.Seconds())
}

// RecordLoad counts a dataset load attempt.
func (am *AnalysisMetrics) RecordLoad(ctx context.Context, format string, err error) {
	outcome := StatusOK
	if err != nil {
		outcome = StatusError
	}

	am.loadsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrFormat, format),
		attribute.String(attrOutcome, outcome),
	))
}
