// Package report renders analysis results as terminal text, JSON, YAML or
// XLSX workbooks.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatXLSX = "xlsx"
)

const yamlIndent = 2

// ErrUnsupportedFormat is returned for unknown output formats.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// Document is a renderable result.
type Document interface {
	// WriteText renders the document for a terminal.
	WriteText(w io.Writer, r *Renderer) error
	// Sheets lays the document out as workbook tables.
	Sheets() []Sheet
}

// Formats lists the supported output formats.
func Formats() []string {
	return []string{FormatText, FormatJSON, FormatYAML, FormatXLSX}
}

// NormalizeFormat lowercases and trims a format name; empty selects text.
func NormalizeFormat(format string) string {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		return FormatText
	}

	return format
}

// ValidateFormat checks that format is supported.
func ValidateFormat(format string) error {
	switch NormalizeFormat(format) {
	case FormatText, FormatJSON, FormatYAML, FormatXLSX:
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// Write renders doc to w in the given format.
func Write(w io.Writer, format string, doc Document, r *Renderer) error {
	switch NormalizeFormat(format) {
	case FormatText:
		return doc.WriteText(w, r)
	case FormatJSON:
		return WriteJSON(w, doc)
	case FormatYAML:
		return WriteYAML(w, doc)
	case FormatXLSX:
		return WriteWorkbook(w, doc.Sheets())
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// WriteJSON encodes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}

	return nil
}

// WriteYAML encodes v as YAML.
func WriteYAML(w io.Writer, v any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(yamlIndent)

	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}

	return nil
}
