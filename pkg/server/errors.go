package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/jeffcwolf/metadata-explorer/pkg/dataset"
)

// Sentinel errors for request validation.
var (
	// ErrBadRequest marks malformed request parameters or bodies.
	ErrBadRequest = errors.New("bad request")
	// ErrUnknownField marks a field name that is not in the catalog.
	ErrUnknownField = errors.New("field not found in dataset")
	// ErrRecordNotFound marks a record index outside the dataset.
	ErrRecordNotFound = errors.New("record not found")
	// ErrNotNumeric marks a field without number values.
	ErrNotNumeric = errors.New("field has no numeric values")
)

// Error codes carried in error bodies.
const (
	CodeBadRequest     = "bad_request"
	CodeNotFound       = "not_found"
	CodeInvalidDataset = "invalid_dataset"
	CodeTooLarge       = "too_large"
	CodeNoDataset      = "no_dataset"
	CodeInternal       = "internal"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// classify maps an error onto an HTTP status and error code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, CodeBadRequest
	case errors.Is(err, dataset.ErrNotFound),
		errors.Is(err, ErrUnknownField),
		errors.Is(err, ErrRecordNotFound),
		errors.Is(err, ErrNotNumeric):
		return http.StatusNotFound, CodeNotFound
	case errors.Is(err, dataset.ErrMalformed), errors.Is(err, dataset.ErrUnsupported):
		return http.StatusUnprocessableEntity, CodeInvalidDataset
	case errors.Is(err, dataset.ErrTooLarge):
		return http.StatusRequestEntityTooLarge, CodeTooLarge
	case errors.Is(err, dataset.ErrNoDataset):
		return http.StatusConflict, CodeNoDataset
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

func (h *handler) writeError(ctx context.Context, rw http.ResponseWriter, err error) {
	status, code := classify(err)

	level := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}

	h.logger.Log(ctx, level, "request failed", "status", status, "code", code, "error", err)

	writeJSON(ctx, rw, status, ErrorBody{Error: err.Error(), Code: code})
}

// writeJSON encodes the given value as JSON and writes it to the response writer.
func writeJSON(ctx context.Context, rw http.ResponseWriter, status int, value any) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)

	encodeErr := json.NewEncoder(rw).Encode(value)
	if encodeErr != nil {
		slog.Default().ErrorContext(ctx, "failed to encode JSON response", "error", encodeErr)
	}
}
