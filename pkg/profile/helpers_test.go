package profile_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jeffcwolf/metadata-explorer/pkg/record"
)

func decode(t *testing.T, doc string) []record.Value {
	t.Helper()

	records, err := record.DecodeArray(strings.NewReader(doc))
	require.NoError(t, err)

	return records
}
