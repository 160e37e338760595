package profile

import (
	"fmt"
	"strconv"

	"github.com/jeffcwolf/metadata-explorer/pkg/record"
)

// DefaultQualityCeiling is the number of leading records the quality scan
// inspects by default.
const DefaultQualityCeiling = 10000

// DatasetLevel is the record index of issues that concern the dataset as a
// whole rather than a single record.
const DatasetLevel = -1

// Issue types.
const (
	IssueInvalidStructure = "Invalid Structure"
	IssueAnalysisLimited  = "Analysis Limited"
)

const descNotObject = "Record is not a JSON object"

// RecordIssue is a structural problem found by the quality scan.
type RecordIssue struct {
	// RecordIndex is the 0-based record position, or DatasetLevel.
	RecordIndex int    `json:"record_index" yaml:"record_index"`
	IssueType   string `json:"issue_type" yaml:"issue_type"`
	Description string `json:"description" yaml:"description"`
}

// IsDatasetLevel reports whether the issue concerns the whole dataset.
func (ri RecordIssue) IsDatasetLevel() bool {
	return ri.RecordIndex == DatasetLevel
}

// Label is the user-facing record reference: "SYSTEM" for dataset-level
// issues, "#<n>" with a 1-based position otherwise.
func (ri RecordIssue) Label() string {
	if ri.IsDatasetLevel() {
		return "SYSTEM"
	}

	return "#" + strconv.Itoa(ri.RecordIndex+1)
}

// ScanQuality inspects the first DefaultQualityCeiling records.
func ScanQuality(records []record.Value) []RecordIssue {
	return ScanQualityLimit(records, DefaultQualityCeiling)
}

// ScanQualityLimit inspects the first ceiling records and reports every one
// that is not an object. When the dataset is larger than the ceiling a
// single "Analysis Limited" issue is appended after all per-record issues.
// A non-positive ceiling selects DefaultQualityCeiling.
func ScanQualityLimit(records []record.Value, ceiling int) []RecordIssue {
	if ceiling <= 0 {
		ceiling = DefaultQualityCeiling
	}

	limit := min(len(records), ceiling)
	issues := make([]RecordIssue, 0)

	for idx, rec := range records[:limit] {
		if rec.IsObject() {
			continue
		}

		issues = append(issues, RecordIssue{
			RecordIndex: idx,
			IssueType:   IssueInvalidStructure,
			Description: descNotObject,
		})
	}

	if len(records) > ceiling {
		issues = append(issues, RecordIssue{
			RecordIndex: DatasetLevel,
			IssueType:   IssueAnalysisLimited,
			Description: fmt.Sprintf("Dataset too large - only analyzed first %d of %d records", ceiling, len(records)),
		})
	}

	return issues
}
