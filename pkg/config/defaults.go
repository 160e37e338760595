package config

// Analysis defaults.
const (
	DefaultQualityCeiling = 10000
	DefaultFacetLimit     = 25
	DefaultPageSize       = 100
	DefaultWorkers        = 4
	DefaultDisplayWidth   = 50
	DefaultMaxFileSize    = "2GB"
)

// Logging defaults.
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// Server defaults.
const (
	DefaultHost          = "127.0.0.1"
	DefaultPort          = 8080
	DefaultReadTimeout   = "30s"
	DefaultWriteTimeout  = "60s"
	DefaultIdleTimeout   = "120s"
	DefaultWatchDebounce = "500ms"
)

// Render defaults.
const (
	DefaultTheme = "light"
)

// Telemetry defaults.
const (
	DefaultSampleRatio = 1.0
)
