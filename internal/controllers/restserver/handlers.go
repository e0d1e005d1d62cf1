package restserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"strconv"
	"time"

	"github.com/chrissnell/saltwedge/internal/constants"
	"github.com/chrissnell/saltwedge/pkg/config"
	"github.com/chrissnell/saltwedge/pkg/intrusion"
	"github.com/chrissnell/saltwedge/pkg/profile"
	"github.com/chrissnell/saltwedge/pkg/report"
	"github.com/chrissnell/saltwedge/pkg/responseformat"
)

// Multipart field names of the comparison upload
const (
	fieldWithPumping    = "condition1"
	fieldWithoutPumping = "condition2"
	fieldWidth          = "width"
	fieldPorosity       = "porosity"
	fieldCutoff         = "cutoff"
)

// Handlers contains all HTTP handlers for the REST server
type Handlers struct {
	controller *Controller
	formatter  *responseformat.Formatter
}

// NewHandlers creates a new handlers instance
func NewHandlers(ctrl *Controller) *Handlers {
	return &Handlers{
		controller: ctrl,
		formatter:  responseformat.NewFormatter(),
	}
}

// GetStatus reports that the service is up
func (h *Handlers) GetStatus(w http.ResponseWriter, req *http.Request) {
	h.formatter.WriteResponse(w, req, map[string]interface{}{
		"status":    "ok",
		"version":   constants.Version,
		"timestamp": time.Now().Unix(),
		"read_only": h.controller.configProvider.IsReadOnly(),
	})
}

// GetParameters returns the model parameters applied when a request supplies none
func (h *Handlers) GetParameters(w http.ResponseWriter, req *http.Request) {
	params, err := h.controller.configProvider.GetParameters()
	if err != nil {
		h.formatter.WriteError(w, req, http.StatusInternalServerError, "Failed to load parameters", "internal", err)
		return
	}
	h.formatter.WriteResponse(w, req, params)
}

// UpdateParameters replaces the stored model parameters
func (h *Handlers) UpdateParameters(w http.ResponseWriter, req *http.Request) {
	if h.controller.configProvider.IsReadOnly() {
		h.formatter.WriteError(w, req, http.StatusForbidden, "Configuration is read-only", "read_only", nil)
		return
	}

	var params intrusion.Parameters
	dec := json.NewDecoder(io.LimitReader(req.Body, 1<<16))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&params); err != nil {
		h.formatter.WriteError(w, req, http.StatusBadRequest, "Invalid JSON payload", "bad_request", err)
		return
	}

	if err := h.controller.configProvider.UpdateParameters(params); err != nil {
		status, kind := classify(err)
		h.formatter.WriteError(w, req, status, "Failed to update parameters", kind, err)
		return
	}

	h.controller.logger.Infow("parameters updated",
		"aquifer_width", params.AquiferWidth,
		"porosity", params.Porosity,
		"extraction_cutoff_elevation", params.ExtractionCutoffElevation)

	h.formatter.WriteResponse(w, req, params)
}

// Compare analyzes the two uploaded profiles and returns the full comparison report.
// Both files must be valid and both analyses must succeed; otherwise a single error
// describes the first problem found.
func (h *Handlers) Compare(w http.ResponseWriter, req *http.Request) {
	maxBytes := h.controller.restConfig.MaxUploadBytes
	req.Body = http.MaxBytesReader(w, req.Body, maxBytes)

	if err := req.ParseMultipartForm(maxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.formatter.WriteError(w, req, http.StatusRequestEntityTooLarge, "Upload too large", "too_large", err)
			return
		}
		h.formatter.WriteError(w, req, http.StatusBadRequest, "Expected a multipart upload", "bad_request", err)
		return
	}
	defer req.MultipartForm.RemoveAll()

	params, err := h.requestParameters(req)
	if err != nil {
		status, kind := classify(err)
		h.formatter.WriteError(w, req, status, "Invalid parameters", kind, err)
		return
	}

	var sources []profile.Source
	for _, field := range []string{fieldWithPumping, fieldWithoutPumping} {
		src, err := readUpload(req, field)
		if err != nil {
			h.formatter.WriteError(w, req, http.StatusBadRequest, "Both condition files are required", "bad_request", err)
			return
		}
		sources = append(sources, src)
	}

	profiles, err := profile.ParseAll(sources...)
	if err != nil {
		h.fail(w, req, err)
		return
	}

	cmp, err := intrusion.CompareConditions(profiles[0], profiles[1], params)
	if err != nil {
		h.fail(w, req, err)
		return
	}

	doc := report.Build(profiles[0], profiles[1], cmp)

	h.controller.logger.Infow("comparison complete",
		"id", doc.ID,
		"with_pumping", doc.Sources.WithPumping,
		"without_pumping", doc.Sources.WithoutPumping,
		"intrusion_with_pumping", cmp.WithPumping.IntrusionPercent,
		"intrusion_without_pumping", cmp.WithoutPumping.IntrusionPercent)

	h.formatter.WriteResponse(w, req, doc)
}

// ServeIndex serves the upload page
func (h *Handlers) ServeIndex(w http.ResponseWriter, req *http.Request) {
	page, err := fs.ReadFile(h.controller.FS, "index.html")
	if err != nil {
		http.Error(w, "index page not found", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

func (h *Handlers) fail(w http.ResponseWriter, req *http.Request, err error) {
	status, kind := classify(err)
	h.controller.logger.Warnw("comparison rejected", "kind", kind, "error", err)
	h.formatter.WriteError(w, req, status, "Comparison failed", kind, err)
}

// requestParameters starts from the configured parameters and applies any overrides
// sent with the upload
func (h *Handlers) requestParameters(req *http.Request) (intrusion.Parameters, error) {
	params, err := h.controller.configProvider.GetParameters()
	if err != nil {
		return params, err
	}

	overrides := []struct {
		field string
		dst   *float64
	}{
		{fieldWidth, &params.AquiferWidth},
		{fieldPorosity, &params.Porosity},
		{fieldCutoff, &params.ExtractionCutoffElevation},
	}
	for _, o := range overrides {
		v := req.FormValue(o.field)
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return params, fmt.Errorf("%w: %s must be a number, got %q", intrusion.ErrInvalidParameters, o.field, v)
		}
		*o.dst = f
	}

	return params, params.Validate()
}

func readUpload(req *http.Request, field string) (profile.Source, error) {
	file, header, err := req.FormFile(field)
	if err != nil {
		return profile.Source{}, fmt.Errorf("%s: %w", field, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return profile.Source{}, fmt.Errorf("%s: %w", field, err)
	}
	return profile.Source{Name: header.Filename, Data: data}, nil
}

// classify maps an error to the HTTP status and machine-readable kind reported to
// clients
func classify(err error) (int, string) {
	var (
		schemaErr  *profile.SchemaError
		parseErr   *profile.ParseError
		noWedgeErr *intrusion.InsufficientDataError
		noWellErr  *intrusion.NoExtractionPointError
	)

	switch {
	case errors.As(err, &schemaErr):
		return http.StatusUnprocessableEntity, "schema"
	case errors.As(err, &parseErr):
		return http.StatusUnprocessableEntity, "parse"
	case errors.As(err, &noWedgeErr):
		return http.StatusUnprocessableEntity, "insufficient_data"
	case errors.As(err, &noWellErr):
		return http.StatusUnprocessableEntity, "no_extraction_point"
	case errors.Is(err, intrusion.ErrZeroTotalVolume):
		return http.StatusUnprocessableEntity, "zero_total_volume"
	case errors.Is(err, intrusion.ErrInvalidParameters):
		return http.StatusBadRequest, "invalid_parameters"
	case errors.Is(err, config.ErrReadOnly):
		return http.StatusForbidden, "read_only"
	}
	return http.StatusInternalServerError, "internal"
}
