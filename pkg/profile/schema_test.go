package profile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeffcwolf/metadata-explorer/pkg/profile"
	"github.com/jeffcwolf/metadata-explorer/pkg/record"
)

func TestInferSchema_FirstNonNullTypeWins(t *testing.T) {
	t.Parallel()

	records := decode(t, `[{"a":1,"b":null},{"a":"x","b":"y"},"junk"]`)

	fields, names := profile.InferSchema(records)

	assert.Equal(t, []string{"a", "b"}, names)
	assert.Equal(t, []profile.FieldInfo{
		{Name: "a", FieldType: "number", SampleCount: 2, NullCount: 0},
		{Name: "b", FieldType: "string", SampleCount: 1, NullCount: 1},
	}, fields)
}

func TestInferSchema_AllNullField(t *testing.T) {
	t.Parallel()

	records := decode(t, `[{"z":null},{"z":null}]`)

	fields, _ := profile.InferSchema(records)
	require.Len(t, fields, 1)
	assert.Equal(t, "null", fields[0].FieldType)
	assert.Equal(t, 0, fields[0].SampleCount)
	assert.Equal(t, 2, fields[0].NullCount)
}

func TestInferSchema_Empty(t *testing.T) {
	t.Parallel()

	fields, names := profile.InferSchema(nil)
	assert.NotNil(t, fields)
	assert.NotNil(t, names)
	assert.Empty(t, fields)
	assert.Empty(t, names)
}

func TestInferSchema_ArrayTypesAndSorting(t *testing.T) {
	t.Parallel()

	records := decode(t, `[{"tags":[],"Zeta":1,"alpha":[["x"]]},{"tags":["a"]}]`)

	fields, names := profile.InferSchema(records)
	assert.Equal(t, []string{"Zeta", "alpha", "tags"}, names)
	assert.Equal(t, "array of array of string", fields[1].FieldType)
	// The first non-null value was an empty array.
	assert.Equal(t, "array (empty)", fields[2].FieldType)
}

func TestInferSchema_CountsNeverExceedRecords(t *testing.T) {
	t.Parallel()

	records := []record.Value{
		record.Object(map[string]record.Value{"a": record.Null()}),
		record.Object(map[string]record.Value{"a": record.Int(1), "b": record.Bool(true)}),
		record.String("not an object"),
		record.Object(nil),
	}

	fields, _ := profile.InferSchema(records)
	for _, f := range fields {
		assert.LessOrEqual(t, f.SampleCount+f.NullCount, len(records), f.Name)
	}
}

func TestFieldInfo_Coverage(t *testing.T) {
	t.Parallel()

	info := profile.FieldInfo{SampleCount: 3}
	assert.InDelta(t, 75.0, info.Coverage(4), 1e-9)
	assert.Zero(t, info.Coverage(0))
}

func TestInferSchema_Idempotent(t *testing.T) {
	t.Parallel()

	records := decode(t, `[
		{"title":"Moby Dick","year":1851,"tags":["sea"],"meta":{"k":1}},
		{"title":null,"year":"1851","extra":true},
		{"tags":[],"meta":null,"year":null},
		"junk",
		42
	]`)

	fields, names := profile.InferSchema(records)
	againFields, againNames := profile.InferSchema(records)

	assert.Equal(t, fields, againFields)
	assert.Equal(t, names, againNames)
	assert.Equal(t, []string{"extra", "meta", "tags", "title", "year"}, names)
}
