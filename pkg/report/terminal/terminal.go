// Package terminal provides terminal rendering utilities for CLI reports.
package terminal

import (
	"os"
	"strconv"

	"github.com/fatih/color"
)

// Width bounds.
const (
	DefaultWidth = 80
	MinWidth     = 60
	MaxWidth     = 160
)

// Config holds terminal rendering configuration.
type Config struct {
	Width   int
	NoColor bool
}

// NewConfig creates a Config from COLUMNS and NO_COLOR.
func NewConfig() Config {
	return Config{
		Width:   DetectWidth(),
		NoColor: os.Getenv("NO_COLOR") != "" || color.NoColor,
	}
}

// DetectWidth returns the width from COLUMNS clamped to [MinWidth,
// MaxWidth], or DefaultWidth when unset or invalid.
func DetectWidth() int {
	width, err := strconv.Atoi(os.Getenv("COLUMNS"))
	if err != nil || width <= 0 {
		return DefaultWidth
	}

	return min(max(width, MinWidth), MaxWidth)
}

// Coverage thresholds in percent.
const (
	CoverageGood = 90.0
	CoverageFair = 50.0
)

// Colorize applies attrs to text unless colors are disabled.
func (c Config) Colorize(text string, attrs ...color.Attribute) string {
	if c.NoColor || len(attrs) == 0 {
		return text
	}

	painter := color.New(attrs...)
	painter.EnableColor()

	return painter.Sprint(text)
}

// CoverageColor picks green above CoverageGood, yellow above CoverageFair
// and red otherwise.
func CoverageColor(percent float64) color.Attribute {
	switch {
	case percent > CoverageGood:
		return color.FgGreen
	case percent > CoverageFair:
		return color.FgYellow
	default:
		return color.FgRed
	}
}
