package profile

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"github.com/jeffcwolf/metadata-explorer/pkg/record"
)

const (
	lowerQuartile = 25
	upperQuartile = 75
)

// NumericSummary describes the number-typed values of a field.
type NumericSummary struct {
	FieldName string  `json:"field_name" yaml:"field_name"`
	Count     int     `json:"count" yaml:"count"`
	Min       float64 `json:"min" yaml:"min"`
	Max       float64 `json:"max" yaml:"max"`
	Mean      float64 `json:"mean" yaml:"mean"`
	Median    float64 `json:"median" yaml:"median"`
	StdDev    float64 `json:"std_dev" yaml:"std_dev"`
	Q25       float64 `json:"q25" yaml:"q25"`
	Q75       float64 `json:"q75" yaml:"q75"`
}

// NumericValues collects the number-typed values of field. Strings that
// look numeric are not converted.
func NumericValues(records []record.Value, field string) []float64 {
	values := make([]float64, 0)

	for _, rec := range records {
		value, ok := rec.Get(field)
		if !ok {
			continue
		}

		f, ok := value.Float64()
		if ok {
			values = append(values, f)
		}
	}

	return values
}

// SummarizeNumbers computes summary statistics over the numeric values of
// field. It reports false when the field holds no numbers.
func SummarizeNumbers(records []record.Value, field string) (NumericSummary, bool) {
	values := NumericValues(records, field)
	if len(values) == 0 {
		return NumericSummary{FieldName: field}, false
	}

	summary, err := summarize(values)
	if err != nil {
		return NumericSummary{FieldName: field}, false
	}

	summary.FieldName = field

	return summary, true
}

func summarize(data []float64) (NumericSummary, error) {
	var (
		summary NumericSummary
		err     error
	)

	summary.Count = len(data)

	if summary.Min, err = stats.Min(data); err != nil {
		return summary, fmt.Errorf("min: %w", err)
	}

	if summary.Max, err = stats.Max(data); err != nil {
		return summary, fmt.Errorf("max: %w", err)
	}

	if summary.Mean, err = stats.Mean(data); err != nil {
		return summary, fmt.Errorf("mean: %w", err)
	}

	if summary.Median, err = stats.Median(data); err != nil {
		return summary, fmt.Errorf("median: %w", err)
	}

	if summary.StdDev, err = stats.StandardDeviation(data); err != nil {
		return summary, fmt.Errorf("standard deviation: %w", err)
	}

	// Nearest rank is defined for every non-empty sample.
	summary.Q25 = quartile(data, lowerQuartile, summary.Min)
	summary.Q75 = quartile(data, upperQuartile, summary.Max)

	return summary, nil
}

// quartile returns the nearest-rank percentile of data, or fallback when it
// is undefined.
func quartile(data []float64, percent, fallback float64) float64 {
	value, err := stats.PercentileNearestRank(data, percent)
	if err != nil {
		return fallback
	}

	return value
}
