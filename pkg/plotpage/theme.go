package plotpage

import (
	"errors"
	"fmt"
	"html/template"
	"strings"
)

// Theme represents a color theme for visualizations.
type Theme string

const (
	// ThemeLight is the light color theme.
	ThemeLight Theme = "light"
	// ThemeDark is the dark color theme.
	ThemeDark Theme = "dark"
)

// ErrUnknownTheme is returned by ParseTheme for names other than light or dark.
var ErrUnknownTheme = errors.New("unknown theme")

// ParseTheme resolves a theme name, case-insensitively.
func ParseTheme(name string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(name))) {
	case ThemeLight:
		return ThemeLight, nil
	case ThemeDark:
		return ThemeDark, nil
	default:
		return ThemeLight, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
}

// ThemeConfig holds the theme-specific styling values.
type ThemeConfig struct {
	Background    string
	Surface       string
	Border        string
	TextPrimary   string
	TextSecondary string
	TextMuted     string
	Accent        string

	Good    string
	Warning string
	Bad     string

	ChartBackground string
	ChartGrid       string
	ChartAxis       string
	ChartText       string
	ChartTextMuted  string

	// Palette is the series color cycle.
	Palette []string
}

// GetThemeConfig returns the configuration for a given theme.
func GetThemeConfig(theme Theme) ThemeConfig {
	if theme == ThemeDark {
		return darkTheme
	}

	return lightTheme
}

// CoverageColor picks the semantic color for a coverage percentage.
func (tc ThemeConfig) CoverageColor(percent float64) string {
	switch {
	case percent > goodCoverage:
		return tc.Good
	case percent > fairCoverage:
		return tc.Warning
	default:
		return tc.Bad
	}
}

const (
	goodCoverage = 90.0
	fairCoverage = 50.0
)

// cssVariables renders the theme as CSS custom properties.
func (tc ThemeConfig) cssVariables() template.CSS {
	vars := [][2]string{
		{"--bg", tc.Background},
		{"--surface", tc.Surface},
		{"--border", tc.Border},
		{"--text", tc.TextPrimary},
		{"--text-secondary", tc.TextSecondary},
		{"--text-muted", tc.TextMuted},
		{"--accent", tc.Accent},
	}

	var sb strings.Builder

	sb.WriteString(":root{")

	for _, v := range vars {
		sb.WriteString(v[0])
		sb.WriteByte(':')
		sb.WriteString(v[1])
		sb.WriteByte(';')
	}

	sb.WriteString("}")

	return template.CSS(sb.String()) //nolint:gosec // values are package constants.
}

var lightTheme = ThemeConfig{
	Background:    "#fafaf9", // stone-50.
	Surface:       "#ffffff",
	Border:        "#e7e5e4", // stone-200.
	TextPrimary:   "#1c1917", // stone-900.
	TextSecondary: "#44403c", // stone-700.
	TextMuted:     "#78716c", // stone-500.
	Accent:        "#a16207", // amber-700.

	Good:    "#16a34a", // green-600.
	Warning: "#ca8a04", // yellow-600.
	Bad:     "#dc2626", // red-600.

	ChartBackground: "transparent",
	ChartGrid:       "#e7e5e4",
	ChartAxis:       "#a8a29e",
	ChartText:       "#44403c",
	ChartTextMuted:  "#78716c",

	Palette: []string{
		"#a16207", "#0369a1", "#4d7c0f", "#7c3aed", "#be185d",
		"#0891b2", "#c2410c", "#4338ca", "#15803d", "#b91c1c",
	},
}

var darkTheme = ThemeConfig{
	Background:    "#0c0a09", // stone-950.
	Surface:       "#1c1917", // stone-900.
	Border:        "#44403c", // stone-700.
	TextPrimary:   "#fafaf9",
	TextSecondary: "#d6d3d1",
	TextMuted:     "#a8a29e",
	Accent:        "#d97706", // amber-600.

	Good:    "#22c55e", // green-500.
	Warning: "#eab308", // yellow-500.
	Bad:     "#ef4444", // red-500.

	ChartBackground: "transparent",
	ChartGrid:       "#44403c",
	ChartAxis:       "#57534e",
	ChartText:       "#d6d3d1",
	ChartTextMuted:  "#a8a29e",

	Palette: []string{
		"#fbbf24", "#38bdf8", "#a3e635", "#a78bfa", "#f472b6",
		"#22d3ee", "#fb923c", "#818cf8", "#4ade80", "#f87171",
	},
}
