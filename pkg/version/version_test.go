package version_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jeffcwolf/metadata-explorer/pkg/version"
)

func TestString(t *testing.T) {
	version.InitBinaryVersion()

	out := version.String()

	assert.True(t, strings.HasPrefix(out, "metadata-explorer "))
	assert.Contains(t, out, "commit: ")
	assert.NotEmpty(t, version.Version)
}
