package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jeffcwolf/metadata-explorer/pkg/dataset"
	"github.com/jeffcwolf/metadata-explorer/pkg/observability"
	"github.com/jeffcwolf/metadata-explorer/pkg/plotpage"
	"github.com/jeffcwolf/metadata-explorer/pkg/server"
)

type serveOptions struct {
	host  string
	port  int
	watch bool
}

func newServeCommand(opts *globalOptions) *cobra.Command {
	var so serveOptions

	cmd := &cobra.Command{
		Use:   "serve [file]",
		Short: "Serve the analyses over HTTP",
		Long: `Serve the analyses over HTTP.

The file is loaded at startup when given, or the last opened file otherwise.
Without either the server starts empty and waits for POST /api/dataset/load.
--watch reloads the file whenever it changes on disk.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.setup(cmd, observability.ModeServe)
			if err != nil {
				return err
			}

			applyServeFlags(cmd, a, so)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runServe(ctx, opts, a, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&so.host, "host", "", "listen host; defaults to server.host")
	flags.IntVar(&so.port, "port", 0, "listen port; defaults to server.port")
	flags.BoolVar(&so.watch, "watch", false, "reload the file when it changes")

	return cmd
}

func applyServeFlags(cmd *cobra.Command, a *app, so serveOptions) {
	if cmd.Flags().Changed("host") {
		a.cfg.Server.Host = so.host
	}

	if cmd.Flags().Changed("port") {
		a.cfg.Server.Port = so.port
	}

	if cmd.Flags().Changed("watch") {
		a.cfg.Server.Watch = so.watch
	}
}

func runServe(ctx context.Context, opts *globalOptions, a *app, args []string) error {
	theme, err := plotpage.ParseTheme(a.cfg.Render.Theme)
	if err != nil {
		return err
	}

	prom, err := observability.NewPrometheus()
	if err != nil {
		return err
	}

	providers, err := observability.Init(opts.observabilityConfig(a.cfg, observability.ModeServe), prom.Reader)
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

	analysis, err := observability.NewAnalysisMetrics(providers.Meter)
	if err != nil {
		return err
	}

	session, err := a.instrumentedSession(ctx, analysis)
	if err != nil {
		return err
	}

	path, err := a.resolveDataPath(args)
	switch {
	case errors.Is(err, ErrNoDataFile):
		a.logger.InfoContext(ctx, "starting without a dataset")
	case err != nil:
		return err
	default:
		if _, loadErr := a.load(ctx, session, path); loadErr != nil {
			return loadErr
		}
	}

	router := server.NewRouter(server.Deps{
		Session:        session,
		Logger:         a.logger,
		Tracer:         providers.Tracer,
		RED:            red,
		Metrics:        prom.Handler,
		FacetLimit:     a.cfg.Analysis.FacetLimit,
		Workers:        a.cfg.Analysis.Workers,
		QualityCeiling: a.cfg.Analysis.QualityCeiling,
		Theme:          theme,
		CORSOrigins:    a.cfg.Server.CORSOrigins,
	})

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return server.New(a.cfg.Server, router, a.logger).Run(gctx)
	})

	if a.cfg.Server.Watch && path != "" && path != dataset.StdinPath {
		g.Go(func() error {
			return session.Watch(gctx, path, a.cfg.Server.WatchDebounce)
		})
	}

	return g.Wait()
}

// instrumentedSession records load outcomes and analysis sizes.
func (a *app) instrumentedSession(ctx context.Context, metrics *observability.AnalysisMetrics) (*dataset.Session, error) {
	maxBytes, err := a.cfg.Analysis.MaxFileBytes()
	if err != nil {
		return nil, err
	}

	loader := func(loadCtx context.Context, path string) (*dataset.Dataset, error) {
		ds, loadErr := dataset.LoadLimited(loadCtx, path, maxBytes)

		format, _ := dataset.DetectFormat(path)
		metrics.RecordLoad(loadCtx, string(format), loadErr)

		return ds, loadErr
	}

	return a.newSession(
		dataset.WithLoader(loader),
		dataset.OnLoaded(func(snap *dataset.Snapshot) {
			metrics.RecordAnalysis(ctx, observability.AnalysisStats{
				Records:  len(snap.Dataset.Records),
				Fields:   len(snap.FieldNames),
				Issues:   len(snap.Issues),
				Duration: snap.Elapsed,
			})
		}),
	)
}
