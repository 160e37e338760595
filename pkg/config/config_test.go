package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeffcwolf/metadata-explorer/pkg/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "metadata-explorer.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadConfig_EmptyFileUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadConfig(writeConfig(t, ""))
	require.NoError(t, err)

	assert.Equal(t, config.DefaultQualityCeiling, cfg.Analysis.QualityCeiling)
	assert.Equal(t, config.DefaultFacetLimit, cfg.Analysis.FacetLimit)
	assert.Equal(t, config.DefaultPageSize, cfg.Analysis.PageSize)
	assert.Equal(t, config.DefaultWorkers, cfg.Analysis.Workers)
	assert.Equal(t, config.DefaultDisplayWidth, cfg.Analysis.DisplayWidth)
	assert.Equal(t, config.DefaultPort, cfg.Server.Port)
	assert.Equal(t, 500*time.Millisecond, cfg.Server.WatchDebounce)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "light", cfg.Render.Theme)
	assert.Equal(t, slog.LevelInfo, cfg.Logging.SlogLevel())
	assert.False(t, cfg.Logging.JSON())
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr())
	assert.Empty(t, cfg.Server.CORSOrigins)

	limit, err := cfg.Analysis.MaxFileBytes()
	require.NoError(t, err)
	assert.EqualValues(t, 2_000_000_000, limit)
}

func TestLoadConfig_FileOverrides(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `analysis:
  quality_ceiling: 500
  page_size: 250
  max_file_size: "64MiB"
logging:
  level: debug
  format: json
server:
  port: 9999
  watch: true
  cors_origins:
    - http://localhost:3000
render:
  theme: dark
`)

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 500, cfg.Analysis.QualityCeiling)
	assert.Equal(t, 250, cfg.Analysis.PageSize)
	assert.Equal(t, slog.LevelDebug, cfg.Logging.SlogLevel())
	assert.True(t, cfg.Logging.JSON())
	assert.Equal(t, 9999, cfg.Server.Port)
	assert.True(t, cfg.Server.Watch)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "dark", cfg.Render.Theme)

	limit, err := cfg.Analysis.MaxFileBytes()
	require.NoError(t, err)
	assert.EqualValues(t, 64<<20, limit)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("METADATA_EXPLORER_ANALYSIS_FACET_LIMIT", "7")

	cfg, err := config.LoadConfig(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Analysis.FacetLimit)
}

func TestLoadConfig_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"port", "server:\n  port: 70000\n", config.ErrInvalidPort},
		{"ceiling", "analysis:\n  quality_ceiling: 0\n", config.ErrInvalidCeiling},
		{"facet_limit", "analysis:\n  facet_limit: -1\n", config.ErrInvalidFacetLimit},
		{"page_size", "analysis:\n  page_size: 5\n", config.ErrInvalidPageSize},
		{"workers", "analysis:\n  workers: 0\n", config.ErrInvalidWorkers},
		{"file_size", "analysis:\n  max_file_size: lots\n", config.ErrInvalidFileSize},
		{"log_level", "logging:\n  level: loud\n", config.ErrInvalidLogLevel},
		{"log_format", "logging:\n  format: xml\n", config.ErrInvalidLogFormat},
		{"theme", "render:\n  theme: neon\n", config.ErrInvalidTheme},
		{"sample_ratio", "telemetry:\n  sample_ratio: 2\n", config.ErrInvalidSampleRatio},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := config.LoadConfig(writeConfig(t, tt.content))
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoadConfig_BadYAML(t *testing.T) {
	t.Parallel()

	_, err := config.LoadConfig(writeConfig(t, "analysis: [unclosed"))
	require.Error(t, err)
}

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	assert.Equal(t, config.DefaultPageSize, cfg.Analysis.PageSize)
	assert.Equal(t, config.DefaultHost, cfg.Server.Host)
}
