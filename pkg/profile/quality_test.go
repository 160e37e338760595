package profile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeffcwolf/metadata-explorer/pkg/profile"
	"github.com/jeffcwolf/metadata-explorer/pkg/record"
)

func objects(n int) []record.Value {
	out := make([]record.Value, n)
	for i := range out {
		out[i] = record.Object(map[string]record.Value{"i": record.Int(int64(i))})
	}

	return out
}

func TestScanQuality_FlagsNonObjects(t *testing.T) {
	t.Parallel()

	records := decode(t, `[{"a":1}, "str", 5, {"b":2}, null, []]`)

	issues := profile.ScanQuality(records)
	require.Len(t, issues, 4)

	indexes := make([]int, 0, len(issues))
	for _, issue := range issues {
		indexes = append(indexes, issue.RecordIndex)
		assert.Equal(t, profile.IssueInvalidStructure, issue.IssueType)
		assert.Equal(t, "Record is not a JSON object", issue.Description)
	}

	assert.Equal(t, []int{1, 2, 4, 5}, indexes)
}

func TestScanQuality_CleanAndEmpty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, profile.ScanQuality(nil))
	assert.Empty(t, profile.ScanQuality(objects(10)))
}

func TestScanQuality_AtCeilingHasNoLimitIssue(t *testing.T) {
	t.Parallel()

	issues := profile.ScanQuality(objects(profile.DefaultQualityCeiling))
	assert.Empty(t, issues)
}

func TestScanQuality_OverCeiling(t *testing.T) {
	t.Parallel()

	records := objects(profile.DefaultQualityCeiling + 1)
	// Past the ceiling, so never inspected.
	records[profile.DefaultQualityCeiling] = record.String("late")

	issues := profile.ScanQuality(records)
	require.Len(t, issues, 1)

	limited := issues[0]
	assert.True(t, limited.IsDatasetLevel())
	assert.Equal(t, profile.IssueAnalysisLimited, limited.IssueType)
	assert.Equal(t, "Dataset too large - only analyzed first 10000 of 10001 records", limited.Description)
	assert.Equal(t, "SYSTEM", limited.Label())
}

func TestScanQualityLimit_CustomCeilingOrdersDatasetIssueLast(t *testing.T) {
	t.Parallel()

	records := decode(t, `["a", {"x":1}, "b", "c"]`)

	issues := profile.ScanQualityLimit(records, 2)
	require.Len(t, issues, 2)
	assert.Equal(t, 0, issues[0].RecordIndex)
	assert.Equal(t, "#1", issues[0].Label())
	assert.True(t, issues[1].IsDatasetLevel())
	assert.Equal(t, "Dataset too large - only analyzed first 2 of 4 records", issues[1].Description)
}

func TestScanQualityLimit_NonPositiveUsesDefault(t *testing.T) {
	t.Parallel()

	issues := profile.ScanQualityLimit(decode(t, `["a"]`), 0)
	require.Len(t, issues, 1)
	assert.Equal(t, 0, issues[0].RecordIndex)
}
