package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jeffcwolf/metadata-explorer/pkg/mcp"
	"github.com/jeffcwolf/metadata-explorer/pkg/observability"
)

func newMCPCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for AI agent integration",
		Long: `Start a Model Context Protocol (MCP) server on stdio transport.

The MCP server exposes dataset profiling as tools that AI agents can
discover and invoke:
  - explorer_schema: field catalog with coverage
  - explorer_issues: record quality issues
  - explorer_facets: value distribution of one field
  - explorer_patterns: value format patterns of one field
  - explorer_records: search and page through records`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Stdout carries the protocol; logs are JSON on stderr.
			opts.logJSON = true

			a, err := opts.setup(cmd, observability.ModeMCP)
			if err != nil {
				return err
			}

			providers, err := observability.Init(opts.observabilityConfig(a.cfg, observability.ModeMCP), nil)
			if err != nil {
				return fmt.Errorf("init observability: %w", err)
			}

			defer func() {
				shutdownErr := providers.Shutdown(context.Background())
				if shutdownErr != nil {
					a.logger.Warn("observability shutdown failed", "error", shutdownErr)
				}
			}()

			red, err := observability.NewREDMetrics(providers.Meter)
			if err != nil {
				return err
			}

			session, err := a.newSession()
			if err != nil {
				return err
			}

			srv := mcp.NewServer(mcp.ServerDeps{
				Logger:     a.logger,
				Metrics:    red,
				Tracer:     providers.Tracer,
				Session:    session,
				FacetLimit: a.cfg.Analysis.FacetLimit,
			})

			return srv.Run(cmd.Context())
		},
	}
}
