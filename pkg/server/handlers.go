package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/jeffcwolf/metadata-explorer/pkg/dataset"
	"github.com/jeffcwolf/metadata-explorer/pkg/plotpage"
	"github.com/jeffcwolf/metadata-explorer/pkg/profile"
	"github.com/jeffcwolf/metadata-explorer/pkg/report"
)

// maxLoadBody caps the body of a load request.
const maxLoadBody = 1 << 16

type handler struct {
	session        *dataset.Session
	logger         *slog.Logger
	facetLimit     int
	workers        int
	qualityCeiling int
	theme          plotpage.Theme
}

// DatasetInfo is the response of GET /api/dataset.
type DatasetInfo struct {
	ID string `json:"id"`
	report.StatsDoc
}

// LoadRequest is the body of POST /api/dataset/load.
type LoadRequest struct {
	Path string `json:"path"`
}

func newDatasetInfo(snap *dataset.Snapshot) DatasetInfo {
	return DatasetInfo{
		ID:       snap.Dataset.ID,
		StatsDoc: report.NewStatsDoc(snap.Dataset, len(snap.Fields), len(snap.Issues), snap.Elapsed),
	}
}

func (h *handler) datasetInfo(rw http.ResponseWriter, r *http.Request) {
	snap, err := h.session.Current()
	if err != nil {
		h.writeError(r.Context(), rw, err)

		return
	}

	writeJSON(r.Context(), rw, http.StatusOK, newDatasetInfo(snap))
}

func (h *handler) load(rw http.ResponseWriter, r *http.Request) {
	var req LoadRequest

	decodeErr := json.NewDecoder(http.MaxBytesReader(rw, r.Body, maxLoadBody)).Decode(&req)
	if decodeErr != nil {
		h.writeError(r.Context(), rw, fmt.Errorf("%w: decode body: %w", ErrBadRequest, decodeErr))

		return
	}

	if req.Path == "" {
		h.writeError(r.Context(), rw, fmt.Errorf("%w: path is required", ErrBadRequest))

		return
	}

	snap, err := h.session.Load(r.Context(), filepath.Clean(req.Path))
	if err != nil {
		h.writeError(r.Context(), rw, err)

		return
	}

	writeJSON(r.Context(), rw, http.StatusOK, newDatasetInfo(snap))
}

func (h *handler) schema(rw http.ResponseWriter, r *http.Request) {
	snap, err := h.session.Current()
	if err != nil {
		h.writeError(r.Context(), rw, err)

		return
	}

	writeJSON(r.Context(), rw, http.StatusOK, report.NewSchemaDoc(snap.Fields, len(snap.Dataset.Records)))
}

func (h *handler) issues(rw http.ResponseWriter, r *http.Request) {
	snap, err := h.session.Current()
	if err != nil {
		h.writeError(r.Context(), rw, err)

		return
	}

	writeJSON(r.Context(), rw, http.StatusOK, report.NewIssuesDoc(snap.Issues))
}

// fieldProfile resolves the {field} URL parameter against the active snapshot.
func (h *handler) fieldProfile(r *http.Request) (profile.FieldProfile, error) {
	snap, err := h.session.Current()
	if err != nil {
		return profile.FieldProfile{}, err
	}

	field := chi.URLParam(r, "field")
	if !snap.HasField(field) {
		return profile.FieldProfile{}, fmt.Errorf("%w: %s", ErrUnknownField, field)
	}

	return snap.Field(field), nil
}

func (h *handler) facets(rw http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", h.facetLimit)
	if err != nil {
		h.writeError(r.Context(), rw, err)

		return
	}

	fp, err := h.fieldProfile(r)
	if err != nil {
		h.writeError(r.Context(), rw, err)

		return
	}

	writeJSON(r.Context(), rw, http.StatusOK, report.NewFacetDoc(fp, limit))
}

func (h *handler) patterns(rw http.ResponseWriter, r *http.Request) {
	fp, err := h.fieldProfile(r)
	if err != nil {
		h.writeError(r.Context(), rw, err)

		return
	}

	writeJSON(r.Context(), rw, http.StatusOK, report.NewPatternDoc(fp.Patterns))
}

func (h *handler) numeric(rw http.ResponseWriter, r *http.Request) {
	fp, err := h.fieldProfile(r)
	if err != nil {
		h.writeError(r.Context(), rw, err)

		return
	}

	if fp.Numeric == nil {
		h.writeError(r.Context(), rw, fmt.Errorf("%w: %s", ErrNotNumeric, fp.Facets.FieldName))

		return
	}

	writeJSON(r.Context(), rw, http.StatusOK, fp.Numeric)
}

func (h *handler) records(rw http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page", 0)
	if err != nil {
		h.writeError(r.Context(), rw, err)

		return
	}

	size, err := queryInt(r, "size", 0)
	if err != nil {
		h.writeError(r.Context(), rw, err)

		return
	}

	snap, err := h.session.Current()
	if err != nil {
		h.writeError(r.Context(), rw, err)

		return
	}

	doc := report.NewRecordsDoc(snap.Dataset.Records, snap.FieldNames, report.BrowseOptions{
		Query:    r.URL.Query().Get("q"),
		Page:     page,
		PageSize: size,
	})

	writeJSON(r.Context(), rw, http.StatusOK, doc)
}

func (h *handler) recordDetail(rw http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		h.writeError(r.Context(), rw, fmt.Errorf("%w: record index: %w", ErrBadRequest, err))

		return
	}

	snap, err := h.session.Current()
	if err != nil {
		h.writeError(r.Context(), rw, err)

		return
	}

	if index < 0 || index >= len(snap.Dataset.Records) {
		h.writeError(r.Context(), rw, fmt.Errorf("%w: %d", ErrRecordNotFound, index))

		return
	}

	writeJSON(r.Context(), rw, http.StatusOK, report.NewDetailDoc(snap.Dataset.Records[index], index))
}

func (h *handler) htmlReport(rw http.ResponseWriter, r *http.Request) {
	theme := h.theme

	if raw := r.URL.Query().Get("theme"); raw != "" {
		parsed, err := plotpage.ParseTheme(raw)
		if err != nil {
			h.writeError(r.Context(), rw, fmt.Errorf("%w: %w", ErrBadRequest, err))

			return
		}

		theme = parsed
	}

	snap, err := h.session.Current()
	if err != nil {
		h.writeError(r.Context(), rw, err)

		return
	}

	prof, err := profile.Build(r.Context(), snap.Dataset.Records, profile.Options{
		QualityCeiling: h.qualityCeiling,
		Workers:        h.workers,
	})
	if err != nil {
		h.writeError(r.Context(), rw, err)

		return
	}

	page := plotpage.ProfilePage(filepath.Base(snap.Dataset.Path), prof, theme, plotpage.DefaultTopValues)

	rw.Header().Set("Content-Type", "text/html; charset=utf-8")

	renderErr := page.Render(rw)
	if renderErr != nil {
		h.logger.ErrorContext(r.Context(), "failed to render report", "error", renderErr)
	}
}

// queryInt parses a non-negative integer query parameter.
func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s must be a non-negative integer", ErrBadRequest, name)
	}

	return n, nil
}
