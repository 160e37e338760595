package record_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeffcwolf/metadata-explorer/pkg/record"
)

func mustDecode(t *testing.T, doc string) []record.Value {
	t.Helper()

	records, err := record.DecodeArray(strings.NewReader(doc))
	require.NoError(t, err)

	return records
}

func TestDecodeArray_PreservesOrderAndKinds(t *testing.T) {
	t.Parallel()

	records := mustDecode(t, `[{"a":1}, "x", 2.5, true, null, [1,2]]`)
	require.Len(t, records, 6)

	kinds := make([]record.Kind, 0, len(records))
	for _, rec := range records {
		kinds = append(kinds, rec.Kind())
	}

	assert.Equal(t, []record.Kind{
		record.KindObject, record.KindString, record.KindNumber,
		record.KindBool, record.KindNull, record.KindArray,
	}, kinds)

	a, ok := records[0].Get("a")
	require.True(t, ok)
	assert.Equal(t, "1", a.Str())
}

func TestDecodeArray_RejectsNonArray(t *testing.T) {
	t.Parallel()

	_, err := record.DecodeArray(strings.NewReader(`{"a": 1}`))
	require.ErrorIs(t, err, record.ErrNotArray)
	assert.Contains(t, err.Error(), "object")
}

func TestDecodeArray_MalformedJSON(t *testing.T) {
	t.Parallel()

	_, err := record.DecodeArray(strings.NewReader(`[{"a": }]`))
	require.Error(t, err)
	assert.NotErrorIs(t, err, record.ErrNotArray)
}

func TestDecodeArray_RejectsTrailingData(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{"garbage", `[{"a":1}] garbage`},
		{"second_array", `[{"a":1}] [2]`},
		{"stray_brace", `[{"a":1}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := record.DecodeArray(strings.NewReader(tt.input))
			require.ErrorIs(t, err, record.ErrTrailingData)
		})
	}

	records := mustDecode(t, "[{\"a\":1}]\n\t ")
	assert.Len(t, records, 1)
}

func TestDecodeArray_Empty(t *testing.T) {
	t.Parallel()

	records := mustDecode(t, `[]`)
	assert.Empty(t, records)
}

func TestValue_JSONRoundTripKeepsNumberLiteral(t *testing.T) {
	t.Parallel()

	var v record.Value

	require.NoError(t, json.Unmarshal([]byte(`{"big": 12345678901234567890, "f": 1.50}`), &v))

	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"big": 12345678901234567890, "f": 1.50}`, string(out))
	assert.Contains(t, string(out), "12345678901234567890")
}

func TestValue_Accessors(t *testing.T) {
	t.Parallel()

	obj := record.Object(map[string]record.Value{
		"b": record.Int(2),
		"a": record.String("x"),
	})

	assert.Equal(t, []string{"a", "b"}, obj.Keys())
	assert.Equal(t, 2, obj.Len())
	assert.True(t, obj.IsObject())

	_, ok := record.String("s").Get("a")
	assert.False(t, ok)

	f, ok := record.Number("2.5").Float64()
	require.True(t, ok)
	assert.InDelta(t, 2.5, f, 1e-9)

	_, ok = record.String("2.5").Float64()
	assert.False(t, ok)

	assert.True(t, record.Null().IsNull())
	assert.True(t, record.Value{}.IsNull())
	assert.Equal(t, 0, record.Array().Len())
	assert.NotNil(t, record.Array().Items())
}

func TestValue_Equal(t *testing.T) {
	t.Parallel()

	left := record.Object(map[string]record.Value{
		"n":    record.Number("1.0"),
		"list": record.Array(record.String("a"), record.Null()),
	})
	right := record.Object(map[string]record.Value{
		"n":    record.Float(1),
		"list": record.Array(record.String("a"), record.Null()),
	})

	assert.True(t, left.Equal(right))
	assert.False(t, left.Equal(record.Object(nil)))
	assert.False(t, record.Int(1).Equal(record.String("1")))
}

func TestFloat_NonFiniteBecomesNull(t *testing.T) {
	t.Parallel()

	assert.True(t, record.Float(posInf()).IsNull())
}

func posInf() float64 {
	zero := 0.0

	return 1 / zero
}
