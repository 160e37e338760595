package commands

import (
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jeffcwolf/metadata-explorer/pkg/dataset"
	"github.com/jeffcwolf/metadata-explorer/pkg/observability"
	"github.com/jeffcwolf/metadata-explorer/pkg/report"
)

func newDiffCommand(opts *globalOptions) *cobra.Command {
	var out outputOptions

	cmd := &cobra.Command{
		Use:   "diff <old> <new>",
		Short: "Compare the schemas of two datasets",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.setup(cmd, observability.ModeCLI)
			if err != nil {
				return err
			}

			snaps := make([]*dataset.Snapshot, len(args))

			g, gctx := errgroup.WithContext(cmd.Context())

			for idx, path := range args {
				g.Go(func() error {
					session, sessErr := a.newSession()
					if sessErr != nil {
						return sessErr
					}

					snap, loadErr := session.Load(gctx, path)
					if loadErr != nil {
						return loadErr
					}

					snaps[idx] = snap

					return nil
				})
			}

			if err := g.Wait(); err != nil {
				return err
			}

			return out.write(cmd, a, report.NewDiffDoc(args[0], args[1], snaps[0].Fields, snaps[1].Fields))
		},
	}

	out.register(cmd)

	return cmd
}
