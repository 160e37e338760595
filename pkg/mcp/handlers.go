package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jeffcwolf/metadata-explorer/pkg/dataset"
	"github.com/jeffcwolf/metadata-explorer/pkg/report"
)

// snapshot loads path unless it is the active dataset.
func (s *Server) snapshot(ctx context.Context, path string) (*dataset.Snapshot, error) {
	snap, err := s.session.Ensure(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	return snap, nil
}

// fieldSnapshot validates input and resolves the snapshot holding its field.
func (s *Server) fieldSnapshot(ctx context.Context, input FieldInput) (*dataset.Snapshot, error) {
	if err := validateFieldInput(input); err != nil {
		return nil, err
	}

	snap, err := s.snapshot(ctx, input.Path)
	if err != nil {
		return nil, err
	}

	if !snap.HasField(input.Field) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, input.Field)
	}

	return snap, nil
}

// handleSchema processes explorer_schema tool calls.
func (s *Server) handleSchema(
	ctx context.Context,
	_ *mcpsdk.CallToolRequest,
	input DatasetInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	if err := validatePath(input.Path); err != nil {
		return errorResult(err)
	}

	snap, err := s.snapshot(ctx, input.Path)
	if err != nil {
		return errorResult(err)
	}

	return jsonResult(report.NewSchemaDoc(snap.Fields, len(snap.Dataset.Records)))
}

// handleIssues processes explorer_issues tool calls.
func (s *Server) handleIssues(
	ctx context.Context,
	_ *mcpsdk.CallToolRequest,
	input DatasetInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	if err := validatePath(input.Path); err != nil {
		return errorResult(err)
	}

	snap, err := s.snapshot(ctx, input.Path)
	if err != nil {
		return errorResult(err)
	}

	return jsonResult(report.NewIssuesDoc(snap.Issues))
}

// handleFacets processes explorer_facets tool calls.
func (s *Server) handleFacets(
	ctx context.Context,
	_ *mcpsdk.CallToolRequest,
	input FieldInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	snap, err := s.fieldSnapshot(ctx, input)
	if err != nil {
		return errorResult(err)
	}

	limit := input.Limit
	if limit == 0 {
		limit = s.facetLimit
	}

	return jsonResult(report.NewFacetDoc(snap.Field(input.Field), limit))
}

// handlePatterns processes explorer_patterns tool calls.
func (s *Server) handlePatterns(
	ctx context.Context,
	_ *mcpsdk.CallToolRequest,
	input FieldInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	snap, err := s.fieldSnapshot(ctx, input)
	if err != nil {
		return errorResult(err)
	}

	return jsonResult(report.NewPatternDoc(snap.Field(input.Field).Patterns))
}

// handleRecords processes explorer_records tool calls.
func (s *Server) handleRecords(
	ctx context.Context,
	_ *mcpsdk.CallToolRequest,
	input RecordsInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	if err := validatePath(input.Path); err != nil {
		return errorResult(err)
	}

	if input.Page < 0 || input.PageSize < 0 {
		return errorResult(ErrNegativeLimit)
	}

	snap, err := s.snapshot(ctx, input.Path)
	if err != nil {
		return errorResult(err)
	}

	return jsonResult(report.NewRecordsDoc(snap.Dataset.Records, snap.FieldNames, report.BrowseOptions{
		Query:    input.Query,
		Page:     input.Page,
		PageSize: input.PageSize,
	}))
}
