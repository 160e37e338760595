package mcp

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Tool name constants.
const (
	ToolNameSchema   = "explorer_schema"
	ToolNameIssues   = "explorer_issues"
	ToolNameFacets   = "explorer_facets"
	ToolNamePatterns = "explorer_patterns"
	ToolNameRecords  = "explorer_records"
)

// DefaultFacetLimit caps returned facet values when no limit is given.
const DefaultFacetLimit = 25

// Sentinel errors for tool input validation.
var (
	// ErrEmptyPath indicates the path parameter is empty.
	ErrEmptyPath = errors.New("path parameter is required and must not be empty")
	// ErrPathNotAbsolute indicates the path is not absolute.
	ErrPathNotAbsolute = errors.New("path must be an absolute path")
	// ErrEmptyField indicates the field parameter is empty.
	ErrEmptyField = errors.New("field parameter is required and must not be empty")
	// ErrUnknownField indicates the field does not occur in the dataset.
	ErrUnknownField = errors.New("field not found in dataset")
	// ErrNegativeLimit indicates a negative limit or page.
	ErrNegativeLimit = errors.New("limit and page must not be negative")
)

// Input types (auto-generate JSON schemas via struct tags).

// DatasetInput is the input schema for the explorer_schema and
// explorer_issues tools.
type DatasetInput struct {
	Path string `json:"path" jsonschema:"absolute path to a JSON (or .json.lz4, .csv, .xlsx) record file"`
}

// FieldInput is the input schema for the explorer_facets and
// explorer_patterns tools.
type FieldInput struct {
	Path  string `json:"path"            jsonschema:"absolute path to a JSON (or .json.lz4, .csv, .xlsx) record file"`
	Field string `json:"field"           jsonschema:"top-level field name"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of facet values to return (default: 25, 0 for default)"`
}

// RecordsInput is the input schema for the explorer_records tool.
type RecordsInput struct {
	Path     string `json:"path"                jsonschema:"absolute path to a JSON (or .json.lz4, .csv, .xlsx) record file"`
	Query    string `json:"query,omitempty"     jsonschema:"case-insensitive substring to search for (empty matches all)"`
	Page     int    `json:"page,omitempty"      jsonschema:"0-based page number"`
	PageSize int    `json:"page_size,omitempty" jsonschema:"records per page (10 to 1000, default 100)"`
}

// Output type (used as structured output for generic AddTool).

// ToolOutput is a generic wrapper for tool results.
type ToolOutput struct {
	Data any `json:"data"`
}

// Result helpers.

// errorResult builds a CallToolResult with isError set.
func errorResult(err error) (*mcpsdk.CallToolResult, ToolOutput, error) {
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: err.Error()},
		},
		IsError: true,
	}, ToolOutput{}, nil
}

// jsonResult builds a CallToolResult with JSON-encoded content.
func jsonResult(value any) (*mcpsdk.CallToolResult, ToolOutput, error) {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return errorResult(fmt.Errorf("encode result: %w", err))
	}

	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: string(data)},
		},
	}, ToolOutput{Data: value}, nil
}

// validatePath checks the shared path parameter.
func validatePath(path string) error {
	if path == "" {
		return ErrEmptyPath
	}

	if !filepath.IsAbs(path) {
		return fmt.Errorf("%w: %s", ErrPathNotAbsolute, path)
	}

	return nil
}

// validateFieldInput checks the facet and pattern tool input.
func validateFieldInput(input FieldInput) error {
	if err := validatePath(input.Path); err != nil {
		return err
	}

	if input.Field == "" {
		return ErrEmptyField
	}

	if input.Limit < 0 {
		return ErrNegativeLimit
	}

	return nil
}
