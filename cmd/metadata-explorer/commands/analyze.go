package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jeffcwolf/metadata-explorer/pkg/observability"
	"github.com/jeffcwolf/metadata-explorer/pkg/profile"
	"github.com/jeffcwolf/metadata-explorer/pkg/report"
)

// ErrUnknownField is returned when the requested field is not in the catalog.
var ErrUnknownField = errors.New("field not found in dataset")

func newSchemaCommand(opts *globalOptions) *cobra.Command {
	var out outputOptions

	cmd := &cobra.Command{
		Use:   "schema [file]",
		Short: "Show the field catalog with coverage",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.setup(cmd, observability.ModeCLI)
			if err != nil {
				return err
			}

			snap, err := a.loadArgs(cmd.Context(), args)
			if err != nil {
				return err
			}

			return out.write(cmd, a, report.NewSchemaDoc(snap.Fields, len(snap.Dataset.Records)))
		},
	}

	out.register(cmd)

	return cmd
}

func newIssuesCommand(opts *globalOptions) *cobra.Command {
	var out outputOptions

	cmd := &cobra.Command{
		Use:   "issues [file]",
		Short: "List record quality issues",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.setup(cmd, observability.ModeCLI)
			if err != nil {
				return err
			}

			snap, err := a.loadArgs(cmd.Context(), args)
			if err != nil {
				return err
			}

			return out.write(cmd, a, report.NewIssuesDoc(snap.Issues))
		},
	}

	out.register(cmd)

	return cmd
}

func newFacetsCommand(opts *globalOptions) *cobra.Command {
	var (
		out   outputOptions
		limit int
	)

	cmd := &cobra.Command{
		Use:   "facets <field> [file]",
		Short: "Show the value distribution of a field",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.setup(cmd, observability.ModeCLI)
			if err != nil {
				return err
			}

			fp, err := a.fieldProfile(cmd, args)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("limit") {
				limit = a.cfg.Analysis.FacetLimit
			}

			return out.write(cmd, a, report.NewFacetDoc(fp, limit))
		},
	}

	out.register(cmd)
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "number of values shown; 0 shows all")

	return cmd
}

func newPatternsCommand(opts *globalOptions) *cobra.Command {
	var out outputOptions

	cmd := &cobra.Command{
		Use:   "patterns <field> [file]",
		Short: "Classify the value formats of a field",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.setup(cmd, observability.ModeCLI)
			if err != nil {
				return err
			}

			fp, err := a.fieldProfile(cmd, args)
			if err != nil {
				return err
			}

			return out.write(cmd, a, report.NewPatternDoc(fp.Patterns))
		},
	}

	out.register(cmd)

	return cmd
}

// fieldProfile loads the file in args[1:] and analyzes the field in args[0].
func (a *app) fieldProfile(cmd *cobra.Command, args []string) (profile.FieldProfile, error) {
	snap, err := a.loadArgs(cmd.Context(), args[1:])
	if err != nil {
		return profile.FieldProfile{}, err
	}

	if !snap.HasField(args[0]) {
		return profile.FieldProfile{}, fmt.Errorf("%w: %s", ErrUnknownField, args[0])
	}

	return snap.Field(args[0]), nil
}

func newProfileCommand(opts *globalOptions) *cobra.Command {
	var (
		out    outputOptions
		fields []string
	)

	cmd := &cobra.Command{
		Use:   "profile [file]",
		Short: "Write the full dataset report",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.setup(cmd, observability.ModeCLI)
			if err != nil {
				return err
			}

			snap, err := a.loadArgs(cmd.Context(), args)
			if err != nil {
				return err
			}

			prof, err := profile.Build(cmd.Context(), snap.Dataset.Records, profile.Options{
				Fields:         fields,
				QualityCeiling: a.cfg.Analysis.QualityCeiling,
				Workers:        a.cfg.Analysis.Workers,
			})
			if err != nil {
				return err
			}

			return out.write(cmd, a, report.NewProfileDoc(snap.Dataset, prof, a.cfg.Analysis.FacetLimit))
		},
	}

	out.register(cmd)
	cmd.Flags().StringSliceVar(&fields, "fields", nil, "restrict per-field analysis to these fields")

	return cmd
}
