// Package plotpage renders dataset profiles as standalone HTML pages with
// interactive charts.
package plotpage

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"
)

// EChartsAssetsURL is where pages load the charting library from.
const EChartsAssetsURL = "https://go-echarts.github.io/go-echarts-assets/assets/echarts.min.js"

const styleTagLen = len("</style>")

// Renderable is the interface for chart components.
type Renderable interface {
	Render(w io.Writer) error
}

// Hint contains interpretive guidance for a chart section.
type Hint struct {
	Title string
	Items []string
}

// Section is one chart with its heading.
type Section struct {
	Title    string
	Subtitle string
	Hint     Hint
	Chart    Renderable
}

// Stat is a headline number shown above the charts.
type Stat struct {
	Label string
	Value string
}

// Page is a complete visualization page.
type Page struct {
	Title       string
	Description string
	ProjectName string
	Theme       Theme
	Stats       []Stat
	Sections    []Section
}

// NewPage creates a page in the light theme.
func NewPage(title, description string) *Page {
	return &Page{
		Title:       title,
		Description: description,
		ProjectName: "Metadata Explorer",
		Theme:       ThemeLight,
	}
}

// WithTheme sets the theme for the page.
func (p *Page) WithTheme(theme Theme) *Page {
	p.Theme = theme

	return p
}

// Add appends sections to the page.
func (p *Page) Add(sections ...Section) {
	p.Sections = append(p.Sections, sections...)
}

// Render writes the page as HTML.
func (p *Page) Render(w io.Writer) error {
	var content bytes.Buffer

	for _, section := range p.Sections {
		html, err := renderSection(section)
		if err != nil {
			return fmt.Errorf("render section %q: %w", section.Title, err)
		}

		content.WriteString(string(html))
	}

	darkClass := ""
	if p.Theme == ThemeDark {
		darkClass = "dark"
	}

	html, err := renderTemplate("page.html", pageData{
		Title:       p.Title,
		Description: p.Description,
		ProjectName: p.ProjectName,
		DarkClass:   darkClass,
		ThemeCSS:    GetThemeConfig(p.Theme).cssVariables(),
		AssetsURL:   EChartsAssetsURL,
		Stats:       p.Stats,
		Content:     template.HTML(content.String()), //nolint:gosec // rendered sections.
	})
	if err != nil {
		return fmt.Errorf("render page: %w", err)
	}

	_, err = io.WriteString(w, string(html))
	if err != nil {
		return fmt.Errorf("writing page: %w", err)
	}

	return nil
}

func renderSection(section Section) (template.HTML, error) {
	chartHTML, err := renderChart(section.Chart)
	if err != nil {
		return "", err
	}

	var hint *Hint
	if len(section.Hint.Items) > 0 {
		hint = &section.Hint
	}

	return renderTemplate("section.html", sectionData{
		Title:    section.Title,
		Subtitle: section.Subtitle,
		Chart:    template.HTML(chartHTML), //nolint:gosec // chart markup from go-echarts.
		Hint:     hint,
	})
}

func renderChart(chart Renderable) (string, error) {
	if chart == nil {
		return "", nil
	}

	var buf bytes.Buffer

	if err := chart.Render(&buf); err != nil {
		return "", fmt.Errorf("rendering chart: %w", err)
	}

	return extractChartContent(buf.String()), nil
}

// extractChartContent cuts the chart div and script out of a full go-echarts
// page. Fragments are returned unchanged.
func extractChartContent(html string) string {
	trimmed := strings.TrimSpace(html)
	if !strings.HasPrefix(trimmed, "<!DOCTYPE") && !strings.HasPrefix(trimmed, "<html") {
		return html
	}

	start := strings.Index(html, `<div class="container">`)
	if start == -1 {
		return html
	}

	end := strings.Index(html, `</body>`)
	if end == -1 {
		return html
	}

	content := html[start:end]
	content = strings.ReplaceAll(content, `class="container"`, `class="echart-box"`)

	return removeStyleTags(content)
}

func removeStyleTags(content string) string {
	for {
		i := strings.Index(content, `<style>`)
		if i == -1 {
			return content
		}

		j := strings.Index(content[i:], `</style>`)
		if j == -1 {
			return content
		}

		content = content[:i] + content[i+j+styleTagLen:]
	}
}
