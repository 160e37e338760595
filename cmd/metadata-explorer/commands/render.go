package commands

import (
	"errors"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jeffcwolf/metadata-explorer/pkg/observability"
	"github.com/jeffcwolf/metadata-explorer/pkg/plotpage"
	"github.com/jeffcwolf/metadata-explorer/pkg/profile"
)

// ErrNoOutputFile is returned when the --output flag is not set.
var ErrNoOutputFile = errors.New("output file is required (use --output)")

func newRenderCommand(opts *globalOptions) *cobra.Command {
	var (
		output string
		theme  string
		topN   int
	)

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Write an interactive HTML report",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				return ErrNoOutputFile
			}

			a, err := opts.setup(cmd, observability.ModeCLI)
			if err != nil {
				return err
			}

			if theme == "" {
				theme = a.cfg.Render.Theme
			}

			parsed, err := plotpage.ParseTheme(theme)
			if err != nil {
				return err
			}

			snap, err := a.loadArgs(cmd.Context(), args)
			if err != nil {
				return err
			}

			prof, err := profile.Build(cmd.Context(), snap.Dataset.Records, profile.Options{
				QualityCeiling: a.cfg.Analysis.QualityCeiling,
				Workers:        a.cfg.Analysis.Workers,
			})
			if err != nil {
				return err
			}

			page := plotpage.ProfilePage(filepath.Base(snap.Dataset.Path), prof, parsed, topN)

			err = writeFile(output, func(w io.Writer) error { return page.Render(w) })
			if err != nil {
				return err
			}

			a.logger.Info("report written", "path", output, "sections", len(page.Sections))

			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output HTML file")
	cmd.Flags().StringVar(&theme, "theme", "", "light or dark; defaults to render.theme")
	cmd.Flags().IntVar(&topN, "top", plotpage.DefaultTopValues, "facet values charted per field")

	return cmd
}
