package report

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/sourcedsport/gpsmetrics/internal/gps"
	"github.com/sourcedsport/gpsmetrics/internal/gps/benchmarks"
	"github.com/sourcedsport/gpsmetrics/internal/instrumentation"
	"github.com/sourcedsport/gpsmetrics/pkg"
)

// Handler serves workload reports over HTTP. It holds immutable
// configuration only - every request recomputes from its own input.
type Handler struct {
	cfg      benchmarks.Config
	synonyms gps.SynonymTable
	instr    *instrumentation.Instrumentation
}

func NewHandler(cfg benchmarks.Config, instr *instrumentation.Instrumentation) *Handler {
	return &Handler{
		cfg:      cfg,
		synonyms: gps.DefaultSynonyms(),
		instr:    instr,
	}
}

type ReportResponse struct {
	Report      *Report  `json:"report"`
	Warnings    []string `json:"warnings,omitempty"`
	SkippedRows int      `json:"skippedRows"`
}

type schemaErrorResponse struct {
	Error         string   `json:"error"`
	MissingFields []string `json:"missingFields"`
}

// HandleReport ingests a CSV export and responds with the full report.
func (h *Handler) HandleReport(w http.ResponseWriter, r *http.Request) {
	normalized, ok := h.ingest(w, r)
	if !ok {
		return
	}

	rep := Assemble(normalized.Sessions, h.cfg)
	h.instr.CounterReportsAssembled.Inc()

	pkg.WriteJSON(w, ReportResponse{
		Report:      rep,
		Warnings:    normalized.Warnings,
		SkippedRows: normalized.SkippedRows,
	}, http.StatusOK)
}

// HandleExport ingests a CSV export and responds with the normalized
// table plus derived percentage/zone columns, as CSV.
func (h *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	normalized, ok := h.ingest(w, r)
	if !ok {
		return
	}

	rows := exportTable(normalized.Sessions, h.cfg)

	w.Header().Add("Content-Type", pkg.ContentType.CSV)
	w.Header().Add("Content-Disposition", `attachment; filename="gps_data_export.csv"`)
	if err := WriteCSV(w, rows, h.cfg); err != nil {
		log.Errorf("failed to write csv export: %s", err)
	}
}

func (h *Handler) ingest(w http.ResponseWriter, r *http.Request) (*gps.NormalizeResult, bool) {
	body, err := requestCSV(r)
	if err != nil {
		http.Error(w, fmt.Sprintf("error, no csv input: %s", err), http.StatusBadRequest)
		return nil, false
	}

	table, err := gps.ReadCSV(body)
	if err != nil {
		http.Error(w, fmt.Sprintf("error, malformed csv: %s", err), http.StatusBadRequest)
		return nil, false
	}

	normalized, err := gps.Normalize(table, h.synonyms)
	if err != nil {
		var schemaErr *gps.SchemaError
		if errors.As(err, &schemaErr) {
			pkg.WriteJSON(w, schemaErrorResponse{
				Error:         schemaErr.Error(),
				MissingFields: schemaErr.MissingFields,
			}, http.StatusBadRequest)
			return nil, false
		}
		log.Errorf("failed to normalize upload: %s", err)
		http.Error(w, "error, failed to normalize input", http.StatusInternalServerError)
		return nil, false
	}

	h.instr.CounterRowsNormalized.Add(float64(len(normalized.Sessions)))
	h.instr.CounterRowsSkipped.Add(float64(normalized.SkippedRows))

	log.Debugf("normalized %d sessions, %d rows skipped", len(normalized.Sessions), normalized.SkippedRows)

	return normalized, true
}

// requestCSV returns the uploaded CSV: the "file" part for multipart
// uploads, the raw body otherwise.
func requestCSV(r *http.Request) (io.Reader, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		file, _, err := r.FormFile("file")
		if err != nil {
			return nil, fmt.Errorf("read multipart file: %w", err)
		}
		return file, nil
	}
	if r.Body == nil {
		return nil, errors.New("empty request body")
	}
	return r.Body, nil
}
