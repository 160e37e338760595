package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jeffcwolf/metadata-explorer/pkg/dataset"
	"github.com/jeffcwolf/metadata-explorer/pkg/report"
)

const outputFilePerm = 0o644

var (
	// ErrNoDataFile is returned when no file argument is given and no file
	// was opened before.
	ErrNoDataFile = errors.New("no data file given and no previously opened file")
	// ErrOutputRequired is returned when a binary format would go to stdout.
	ErrOutputRequired = errors.New("xlsx output requires --output")
)

// resolveDataPath returns the explicit path, or the last opened file.
func (a *app) resolveDataPath(args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}

	last := a.prefs.LastFile()
	if last == "" {
		return "", ErrNoDataFile
	}

	a.logger.Debug("using last opened file", "path", last)

	return last, nil
}

// newSession creates a session configured from the analysis section.
func (a *app) newSession(opts ...dataset.SessionOption) (*dataset.Session, error) {
	maxBytes, err := a.cfg.Analysis.MaxFileBytes()
	if err != nil {
		return nil, err
	}

	base := []dataset.SessionOption{
		dataset.WithQualityCeiling(a.cfg.Analysis.QualityCeiling),
		dataset.WithMaxFileSize(maxBytes),
		dataset.WithLogger(a.logger),
	}

	return dataset.NewSession(append(base, opts...)...), nil
}

// load reads path into session and remembers it as the last opened file.
func (a *app) load(ctx context.Context, session *dataset.Session, path string) (*dataset.Snapshot, error) {
	snap, err := session.Load(ctx, path)
	if err != nil {
		return nil, err
	}

	a.remember(path)

	return snap, nil
}

// loadArgs resolves the data file from args and loads it into a fresh session.
func (a *app) loadArgs(ctx context.Context, args []string) (*dataset.Snapshot, error) {
	path, err := a.resolveDataPath(args)
	if err != nil {
		return nil, err
	}

	session, err := a.newSession()
	if err != nil {
		return nil, err
	}

	return a.load(ctx, session, path)
}

func (a *app) remember(path string) {
	if path == dataset.StdinPath {
		return
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	saveErr := a.prefs.SaveLastFile(abs)
	if saveErr != nil {
		a.logger.Warn("failed to save preferences", "error", saveErr)
	}
}

// outputOptions are the --format and --output flags.
type outputOptions struct {
	format string
	output string
}

func (o *outputOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.format, "format", "f", report.FormatText, "output format: text, json, yaml or xlsx")
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "write to file instead of stdout")
}

// write renders doc to stdout or the --output file.
func (o *outputOptions) write(cmd *cobra.Command, a *app, doc report.Document) error {
	format := report.NormalizeFormat(o.format)

	err := report.ValidateFormat(format)
	if err != nil {
		return err
	}

	if o.output == "" {
		if format == report.FormatXLSX {
			return ErrOutputRequired
		}

		return report.Write(cmd.OutOrStdout(), format, doc, a.renderer)
	}

	return writeFile(o.output, func(w io.Writer) error {
		return report.Write(w, format, doc, a.renderer)
	})
}

// writeFile creates path and hands it to fn, reporting close errors.
func writeFile(path string, fn func(io.Writer) error) (err error) {
	file, err := os.OpenFile(filepath.Clean(path), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, outputFilePerm)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	defer func() {
		closeErr := file.Close()
		if err == nil && closeErr != nil {
			err = fmt.Errorf("close %s: %w", path, closeErr)
		}
	}()

	return fn(file)
}
