// Package dataset loads record collections from disk and keeps the active
// dataset and its analysis for the interactive surfaces.
package dataset

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/pierrec/lz4/v4"
	"github.com/xuri/excelize/v2"

	"github.com/jeffcwolf/metadata-explorer/pkg/record"
)

// StdinPath selects standard input as the record source.
const StdinPath = "-"

// Format identifies how a source file is encoded.
type Format string

// Supported formats.
const (
	FormatJSON    Format = "json"
	FormatJSONLZ4 Format = "json.lz4"
	FormatXLSX    Format = "xlsx"
	FormatCSV     Format = "csv"
)

// Sentinel errors.
var (
	// ErrNotFound is returned when the source file does not exist.
	ErrNotFound = errors.New("file not found")
	// ErrMalformed is returned when the file cannot be decoded into records.
	ErrMalformed = errors.New("malformed dataset")
	// ErrUnsupported is returned for unknown file extensions.
	ErrUnsupported = errors.New("unsupported file format")
	// ErrTooLarge is returned when the source exceeds the size limit.
	ErrTooLarge = errors.New("file too large")
)

// Dataset is an immutable loaded record collection.
type Dataset struct {
	ID       string
	Path     string
	Format   Format
	Size     int64
	LoadedAt time.Time
	Records  []record.Value
}

// DetectFormat picks the format from the file name.
func DetectFormat(path string) (Format, error) {
	lower := strings.ToLower(path)

	switch {
	case path == StdinPath, strings.HasSuffix(lower, ".json"):
		return FormatJSON, nil
	case strings.HasSuffix(lower, ".json.lz4"), strings.HasSuffix(lower, ".lz4"):
		return FormatJSONLZ4, nil
	case strings.HasSuffix(lower, ".xlsx"):
		return FormatXLSX, nil
	case strings.HasSuffix(lower, ".csv"):
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupported, filepath.Ext(path))
	}
}

// Load reads a record collection from path, or from standard input when
// path is StdinPath.
func Load(ctx context.Context, path string) (*Dataset, error) {
	return LoadLimited(ctx, path, 0)
}

// LoadLimited is Load with an upper bound on the raw source size in bytes.
// A non-positive maxBytes disables the check.
func LoadLimited(ctx context.Context, path string, maxBytes int64) (*Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	data, err := readSource(path, maxBytes)
	if err != nil {
		return nil, err
	}

	records, err := Decode(format, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &Dataset{
		ID:       uuid.NewString(),
		Path:     path,
		Format:   format,
		Size:     int64(len(data)),
		LoadedAt: time.Now(),
		Records:  records,
	}, nil
}

func readSource(path string, maxBytes int64) ([]byte, error) {
	var src io.Reader = os.Stdin

	if path != StdinPath {
		f, err := os.Open(path)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
		}

		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()

		src = f
	}

	if maxBytes > 0 {
		src = io.LimitReader(src, maxBytes+1)
	}

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("%w: %s exceeds %s", ErrTooLarge, path, humanize.Bytes(uint64(maxBytes)))
	}

	return data, nil
}

// Decode turns raw file contents into records.
func Decode(format Format, data []byte) ([]record.Value, error) {
	switch format {
	case FormatJSON:
		return decodeJSON(bytes.NewReader(data))
	case FormatJSONLZ4:
		return decodeJSON(lz4.NewReader(bytes.NewReader(data)))
	case FormatXLSX:
		return decodeWorkbook(data)
	case FormatCSV:
		return decodeCSV(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, format)
	}
}

func decodeJSON(r io.Reader) ([]record.Value, error) {
	records, err := record.DecodeArray(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	return records, nil
}

func decodeWorkbook(data []byte) ([]record.Value, error) {
	book, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: open workbook: %w", ErrMalformed, err)
	}
	defer book.Close()

	sheets := book.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrMalformed)
	}

	rows, err := book.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: read sheet %s: %w", ErrMalformed, sheets[0], err)
	}

	return rowsToRecords(rows), nil
}

func decodeCSV(data []byte) ([]record.Value, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	return rowsToRecords(rows), nil
}

// rowsToRecords treats the first row as the header. Empty cells and
// columns with an empty header are omitted.
func rowsToRecords(rows [][]string) []record.Value {
	if len(rows) == 0 {
		return []record.Value{}
	}

	header := rows[0]
	records := make([]record.Value, 0, len(rows)-1)

	for _, row := range rows[1:] {
		members := make(map[string]record.Value, len(header))

		for col, cell := range row {
			if col >= len(header) || header[col] == "" || cell == "" {
				continue
			}

			members[header[col]] = cellValue(cell)
		}

		records = append(records, record.Object(members))
	}

	return records
}

func cellValue(cell string) record.Value {
	if _, err := strconv.ParseFloat(cell, 64); err == nil && isPlainNumber(cell) {
		return record.Number(cell)
	}

	if b, err := strconv.ParseBool(cell); err == nil && (cell == "true" || cell == "false") {
		return record.Bool(b)
	}

	return record.String(cell)
}

// isPlainNumber rejects forms strconv accepts but JSON does not, including
// leading zeros such as "0012".
func isPlainNumber(s string) bool {
	digits := strings.TrimPrefix(s, "-")
	if len(digits) > 1 && digits[0] == '0' && digits[1] >= '0' && digits[1] <= '9' {
		return false
	}

	for i, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.', r == 'e', r == 'E':
		case (r == '-' || r == '+') && (i == 0 || s[i-1] == 'e' || s[i-1] == 'E'):
		default:
			return false
		}
	}

	return !strings.HasPrefix(s, "+") && !strings.HasPrefix(s, ".") && !strings.HasSuffix(s, ".")
}
