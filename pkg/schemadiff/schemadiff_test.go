package schemadiff_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeffcwolf/metadata-explorer/pkg/profile"
	"github.com/jeffcwolf/metadata-explorer/pkg/schemadiff"
)

func catalog(pairs ...string) []profile.FieldInfo {
	out := make([]profile.FieldInfo, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, profile.FieldInfo{Name: pairs[i], FieldType: pairs[i+1], SampleCount: 1})
	}

	return out
}

func TestCompare(t *testing.T) {
	t.Parallel()

	before := catalog("id", "number", "title", "string", "year", "number")
	after := catalog("id", "number", "lang", "string", "year", "string")

	result := schemadiff.Compare(before, after)

	require.Len(t, result.Added, 1)
	assert.Equal(t, "lang", result.Added[0].Name)
	require.Len(t, result.Removed, 1)
	assert.Equal(t, "title", result.Removed[0].Name)
	assert.Equal(t, []schemadiff.TypeChange{{Field: "year", OldType: "number", NewType: "string"}}, result.TypeChanged)
	assert.False(t, result.Empty())
}

func TestCompare_Identical(t *testing.T) {
	t.Parallel()

	fields := catalog("a", "string", "b", "bool")
	result := schemadiff.Compare(fields, fields)

	assert.True(t, result.Empty())
	assert.NotNil(t, result.Added)
}

func TestUnified(t *testing.T) {
	t.Parallel()

	before := catalog("b", "string", "a", "number")
	after := catalog("a", "number", "c", "bool")

	out := schemadiff.Unified(before, after)

	assert.Equal(t, "  a: number\n- b: string\n+ c: bool\n", out)
}

func TestUnified_Empty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, schemadiff.Unified(nil, nil))
}
