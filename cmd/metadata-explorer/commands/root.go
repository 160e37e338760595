// Package commands implements CLI command handlers for metadata-explorer.
package commands

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jeffcwolf/metadata-explorer/pkg/config"
	"github.com/jeffcwolf/metadata-explorer/pkg/observability"
	"github.com/jeffcwolf/metadata-explorer/pkg/prefs"
	"github.com/jeffcwolf/metadata-explorer/pkg/report"
	"github.com/jeffcwolf/metadata-explorer/pkg/report/terminal"
	"github.com/jeffcwolf/metadata-explorer/pkg/version"
)

// globalOptions are the persistent root flags.
type globalOptions struct {
	configPath string
	verbose    bool
	noColor    bool
	logJSON    bool

	// prefs overrides the preferences store; nil uses the default location.
	prefs *prefs.Store
}

// app is the per-invocation environment shared by subcommands.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	renderer *report.Renderer
	prefs    *prefs.Store
}

// NewRootCommand builds the metadata-explorer command tree.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&globalOptions{})
}

func newRootCommand(opts *globalOptions) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "metadata-explorer",
		Short: "Profile semi-structured JSON metadata records",
		Long: `metadata-explorer profiles collections of JSON metadata records.

Commands:
  schema    Field catalog with coverage
  issues    Record quality issues
  facets    Value distribution of one field
  patterns  Value format patterns of one field
  profile   Full dataset report
  browse    Search and page through records
  diff      Compare the schemas of two datasets
  render    Write an interactive HTML report
  serve     Serve the analyses over HTTP
  mcp       Start an MCP server on stdio`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "path to configuration file")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	flags.BoolVar(&opts.logJSON, "log-json", false, "emit JSON logs")

	rootCmd.AddCommand(
		newSchemaCommand(opts),
		newIssuesCommand(opts),
		newFacetsCommand(opts),
		newPatternsCommand(opts),
		newProfileCommand(opts),
		newBrowseCommand(opts),
		newDiffCommand(opts),
		newRenderCommand(opts),
		newServeCommand(opts),
		newMCPCommand(opts),
		newVersionCommand(),
	)

	return rootCmd
}

// setup loads configuration and builds the logger and text renderer.
func (o *globalOptions) setup(cmd *cobra.Command, mode observability.AppMode) (*app, error) {
	cfg, err := config.LoadConfig(o.configPath)
	if err != nil {
		return nil, err
	}

	obsCfg := o.observabilityConfig(cfg, mode)

	term := terminal.NewConfig()
	if o.noColor {
		term.NoColor = true
	}

	store := o.prefs
	if store == nil {
		store, err = prefs.DefaultStore()
		if err != nil {
			return nil, err
		}
	}

	return &app{
		cfg:      cfg,
		logger:   observability.NewLogger(cmd.ErrOrStderr(), obsCfg),
		renderer: report.NewRenderer(term),
		prefs:    store,
	}, nil
}

// observabilityConfig merges the telemetry and logging sections with the
// root flags.
func (o *globalOptions) observabilityConfig(cfg *config.Config, mode observability.AppMode) observability.Config {
	obsCfg := observability.DefaultConfig()
	obsCfg.ServiceVersion = version.Version
	obsCfg.Mode = mode
	obsCfg.Environment = cfg.Telemetry.Environment
	obsCfg.OTLPEndpoint = cfg.Telemetry.OTLPEndpoint
	obsCfg.OTLPHeaders = observability.ParseOTLPHeaders(cfg.Telemetry.OTLPHeaders)
	obsCfg.OTLPInsecure = cfg.Telemetry.OTLPInsecure
	obsCfg.SampleRatio = cfg.Telemetry.SampleRatio
	obsCfg.LogLevel = cfg.Logging.SlogLevel()
	obsCfg.LogJSON = o.logJSON || cfg.Logging.JSON()

	if o.verbose {
		obsCfg.LogLevel = slog.LevelDebug
	}

	return obsCfg
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			writeLine(cmd.OutOrStdout(), version.String())
		},
	}
}

func writeLine(w io.Writer, line string) {
	_, _ = io.WriteString(w, line+"\n")
}
