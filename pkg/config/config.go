// Package config provides configuration loading and validation for
// metadata-explorer.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g.
// METADATA_EXPLORER_ANALYSIS_PAGE_SIZE.
const EnvPrefix = "METADATA_EXPLORER"

const (
	maxPort     = 65535
	minPageSize = 10
	maxPageSize = 1000
)

// Sentinel validation errors.
var (
	ErrInvalidPort        = errors.New("invalid server port")
	ErrInvalidCeiling     = errors.New("quality ceiling must be positive")
	ErrInvalidFacetLimit  = errors.New("facet limit must not be negative")
	ErrInvalidPageSize    = errors.New("page size out of range")
	ErrInvalidWorkers     = errors.New("workers must be positive")
	ErrInvalidLogLevel    = errors.New("unknown log level")
	ErrInvalidLogFormat   = errors.New("unknown log format")
	ErrInvalidTheme       = errors.New("unknown render theme")
	ErrInvalidSampleRatio = errors.New("sample ratio must be within [0, 1]")
	ErrInvalidFileSize    = errors.New("invalid max file size")
)

// Config holds all configuration for metadata-explorer.
type Config struct {
	Analysis  AnalysisConfig  `mapstructure:"analysis"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Server    ServerConfig    `mapstructure:"server"`
	Render    RenderConfig    `mapstructure:"render"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// AnalysisConfig tunes the profiler and the record browser.
type AnalysisConfig struct {
	QualityCeiling int    `mapstructure:"quality_ceiling"`
	FacetLimit     int    `mapstructure:"facet_limit"`
	PageSize       int    `mapstructure:"page_size"`
	Workers        int    `mapstructure:"workers"`
	DisplayWidth   int    `mapstructure:"display_width"`
	MaxFileSize    string `mapstructure:"max_file_size"`
}

// MaxFileBytes parses MaxFileSize. Zero means unlimited.
func (a AnalysisConfig) MaxFileBytes() (int64, error) {
	if a.MaxFileSize == "" || a.MaxFileSize == "0" {
		return 0, nil
	}

	n, err := humanize.ParseBytes(a.MaxFileSize)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrInvalidFileSize, a.MaxFileSize, err)
	}

	return int64(n), nil
}

// LoggingConfig holds logging-specific configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SlogLevel converts Level.
func (l LoggingConfig) SlogLevel() slog.Level {
	var level slog.Level

	err := level.UnmarshalText([]byte(l.Level))
	if err != nil {
		return slog.LevelInfo
	}

	return level
}

// JSON reports whether logs are JSON formatted.
func (l LoggingConfig) JSON() bool {
	return strings.EqualFold(l.Format, "json")
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host          string        `mapstructure:"host"`
	Port          int           `mapstructure:"port"`
	ReadTimeout   time.Duration `mapstructure:"read_timeout"`
	WriteTimeout  time.Duration `mapstructure:"write_timeout"`
	IdleTimeout   time.Duration `mapstructure:"idle_timeout"`
	Watch         bool          `mapstructure:"watch"`
	WatchDebounce time.Duration `mapstructure:"watch_debounce"`
	// CORSOrigins lists browser origins allowed to call the API. Empty
	// disables CORS headers.
	CORSOrigins []string `mapstructure:"cors_origins"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// RenderConfig holds HTML report configuration.
type RenderConfig struct {
	Theme string `mapstructure:"theme"`
}

// TelemetryConfig holds OpenTelemetry export settings.
type TelemetryConfig struct {
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	OTLPHeaders  string  `mapstructure:"otlp_headers"`
	OTLPInsecure bool    `mapstructure:"otlp_insecure"`
	SampleRatio  float64 `mapstructure:"sample_ratio"`
	Environment  string  `mapstructure:"environment"`
}

// LoadConfig loads configuration from file and environment variables.
// An empty configPath searches the working directory, ./config and the
// user configuration directory for metadata-explorer.yaml.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	setDefaults(viperCfg)

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName("metadata-explorer")
		viperCfg.SetConfigType("yaml")
		viperCfg.AddConfigPath(".")
		viperCfg.AddConfigPath("./config")
		viperCfg.AddConfigPath("$HOME/.config/metadata-explorer")
	}

	viperCfg.SetEnvPrefix(EnvPrefix)
	viperCfg.AutomaticEnv()
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFoundErr) {
			return nil, fmt.Errorf("failed to read config file: %w", readErr)
		}
	}

	var config Config

	unmarshalErr := viperCfg.Unmarshal(&config)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", unmarshalErr)
	}

	validateErr := validateConfig(&config)
	if validateErr != nil {
		return nil, fmt.Errorf("invalid configuration: %w", validateErr)
	}

	return &config, nil
}

// Default returns the configuration used when no file or environment
// override is present.
func Default() *Config {
	viperCfg := viper.New()
	setDefaults(viperCfg)

	var config Config

	// Defaults always decode.
	_ = viperCfg.Unmarshal(&config)

	return &config
}

func setDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("analysis.quality_ceiling", DefaultQualityCeiling)
	viperCfg.SetDefault("analysis.facet_limit", DefaultFacetLimit)
	viperCfg.SetDefault("analysis.page_size", DefaultPageSize)
	viperCfg.SetDefault("analysis.workers", DefaultWorkers)
	viperCfg.SetDefault("analysis.display_width", DefaultDisplayWidth)
	viperCfg.SetDefault("analysis.max_file_size", DefaultMaxFileSize)

	viperCfg.SetDefault("logging.level", DefaultLogLevel)
	viperCfg.SetDefault("logging.format", DefaultLogFormat)

	viperCfg.SetDefault("server.host", DefaultHost)
	viperCfg.SetDefault("server.port", DefaultPort)
	viperCfg.SetDefault("server.read_timeout", DefaultReadTimeout)
	viperCfg.SetDefault("server.write_timeout", DefaultWriteTimeout)
	viperCfg.SetDefault("server.idle_timeout", DefaultIdleTimeout)
	viperCfg.SetDefault("server.watch", false)
	viperCfg.SetDefault("server.watch_debounce", DefaultWatchDebounce)
	viperCfg.SetDefault("server.cors_origins", []string{})

	viperCfg.SetDefault("render.theme", DefaultTheme)

	viperCfg.SetDefault("telemetry.otlp_endpoint", "")
	viperCfg.SetDefault("telemetry.otlp_headers", "")
	viperCfg.SetDefault("telemetry.otlp_insecure", false)
	viperCfg.SetDefault("telemetry.sample_ratio", DefaultSampleRatio)
	viperCfg.SetDefault("telemetry.environment", "")
}

func validateConfig(config *Config) error {
	if config.Server.Port <= 0 || config.Server.Port > maxPort {
		return fmt.Errorf("%w: %d", ErrInvalidPort, config.Server.Port)
	}

	if config.Analysis.QualityCeiling <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidCeiling, config.Analysis.QualityCeiling)
	}

	if config.Analysis.FacetLimit < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidFacetLimit, config.Analysis.FacetLimit)
	}

	if config.Analysis.PageSize < minPageSize || config.Analysis.PageSize > maxPageSize {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidPageSize, config.Analysis.PageSize, minPageSize, maxPageSize)
	}

	if config.Analysis.Workers <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWorkers, config.Analysis.Workers)
	}

	if _, err := config.Analysis.MaxFileBytes(); err != nil {
		return err
	}

	switch strings.ToLower(config.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, config.Logging.Level)
	}

	switch strings.ToLower(config.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, config.Logging.Format)
	}

	switch config.Render.Theme {
	case "light", "dark":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidTheme, config.Render.Theme)
	}

	if config.Telemetry.SampleRatio < 0 || config.Telemetry.SampleRatio > 1 {
		return fmt.Errorf("%w: %v", ErrInvalidSampleRatio, config.Telemetry.SampleRatio)
	}

	return nil
}
