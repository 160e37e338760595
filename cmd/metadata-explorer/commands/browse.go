package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jeffcwolf/metadata-explorer/pkg/browse"
	"github.com/jeffcwolf/metadata-explorer/pkg/observability"
	"github.com/jeffcwolf/metadata-explorer/pkg/report"
)

// ErrRecordOutOfRange is returned for --record numbers outside the dataset.
var ErrRecordOutOfRange = errors.New("record number out of range")

type browseOptions struct {
	query   string
	page    int
	size    int
	columns int
	record  int
}

func newBrowseCommand(opts *globalOptions) *cobra.Command {
	var (
		out outputOptions
		bo  browseOptions
	)

	cmd := &cobra.Command{
		Use:   "browse [file]",
		Short: "Search and page through records",
		Long: `Search and page through records.

The query matches case-insensitively anywhere in a record's text. Pages and
record numbers start at 1. --record shows every field of one record.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.setup(cmd, observability.ModeCLI)
			if err != nil {
				return err
			}

			snap, err := a.loadArgs(cmd.Context(), args)
			if err != nil {
				return err
			}

			records := snap.Dataset.Records

			if bo.record > 0 {
				if bo.record > len(records) {
					return fmt.Errorf("%w: %d of %d", ErrRecordOutOfRange, bo.record, len(records))
				}

				return out.write(cmd, a, report.NewDetailDoc(records[bo.record-1], bo.record-1))
			}

			size := bo.size
			if !cmd.Flags().Changed("size") {
				size = a.cfg.Analysis.PageSize
			}

			return out.write(cmd, a, report.NewRecordsDoc(records, snap.FieldNames, report.BrowseOptions{
				Query:     bo.query,
				Page:      bo.page - 1,
				PageSize:  size,
				Columns:   bo.columns,
				CellWidth: a.cfg.Analysis.DisplayWidth,
			}))
		},
	}

	out.register(cmd)

	flags := cmd.Flags()
	flags.StringVarP(&bo.query, "query", "q", "", "case-insensitive search text")
	flags.IntVarP(&bo.page, "page", "p", 1, "page number")
	flags.IntVar(&bo.size, "size", browse.DefaultPageSize, "records per page")
	flags.IntVar(&bo.columns, "columns", browse.DefaultColumns, "number of leading fields shown")
	flags.IntVarP(&bo.record, "record", "r", 0, "show one record in full")

	return cmd
}
