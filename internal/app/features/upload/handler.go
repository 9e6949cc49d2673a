// internal/app/features/upload/handler.go
package upload

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/omstools/importassist/internal/app/store/datasets"
	"github.com/omstools/importassist/internal/app/system/csvio"
	"github.com/omstools/importassist/internal/app/system/httpjson"
	"github.com/omstools/importassist/internal/app/system/limits"
	"github.com/omstools/importassist/internal/app/system/scrub"
	"github.com/omstools/importassist/internal/app/system/timeouts"
	"github.com/omstools/importassist/internal/app/system/wizardsession"
	"github.com/omstools/importassist/internal/domain/oms"
)

// Handler serves CSV upload, the line listing, and the blank template.
type Handler struct {
	Datasets *datasets.Store
	Log      *zap.Logger
}

// NewHandler constructs an upload Handler.
func NewHandler(ds *datasets.Store, logger *zap.Logger) *Handler {
	return &Handler{Datasets: ds, Log: logger}
}

// Upload handles POST /upload: multipart form with a "file" part holding
// the CSV. A valid upload replaces the session's dataset and restarts the
// wizard at the select-data step.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	sess, ok := wizardsession.FromRequest(r)
	if !ok {
		httpjson.Error(w, http.StatusInternalServerError, "session unavailable")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, csvio.MaxUploadSize)
	if err := r.ParseMultipartForm(limits.MaxMultipartMemory); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Could not read the uploaded file. Please try again.")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "No file provided. Attach a CSV as the \"file\" field.")
		return
	}
	defer file.Close()

	rows, err := csvio.Read(file)
	if err != nil {
		var missing *csvio.MissingColumnsError
		switch {
		case errors.As(err, &missing):
			httpjson.Error(w, http.StatusBadRequest, missing.Error())
		case errors.Is(err, csvio.ErrTooManyRows):
			httpjson.Error(w, http.StatusBadRequest, "The CSV has too many rows.")
		default:
			h.Log.Warn("csv parse failed", zap.String("file", header.Filename), zap.Error(err))
			httpjson.Error(w, http.StatusBadRequest, "The file could not be parsed as CSV.")
		}
		return
	}

	scrub.Rows(rows)

	var lines, targets []oms.Row
	for _, row := range rows {
		switch {
		case oms.IsLine(row.EntityType()):
			lines = append(lines, row)
		case oms.IsLineTarget(row.EntityType()):
			targets = append(targets, row)
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Batch)
	defer cancel()
	if err := h.Datasets.Put(ctx, sess.ID(), header.Filename, lines, targets); err != nil {
		h.Log.Error("storing dataset failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not store the uploaded data.")
		return
	}

	sess.LoadDataset(lines)

	h.Log.Info("csv uploaded",
		zap.String("session", sess.ID()),
		zap.String("file", header.Filename),
		zap.Int("lines", len(lines)),
		zap.Int("line_targets", len(targets)))

	httpjson.Write(w, http.StatusOK, map[string]any{
		"message":     "File uploaded and parsed successfully",
		"lines":       len(lines),
		"lineTargets": len(targets),
	})
}

// Lines handles GET /lines: the stored Line rows for the session, each
// tagged with originalId so the client keeps a stable key across edits.
func (h *Handler) Lines(w http.ResponseWriter, r *http.Request) {
	sess, ok := wizardsession.FromRequest(r)
	if !ok {
		httpjson.Error(w, http.StatusInternalServerError, "session unavailable")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium)
	defer cancel()
	ds, err := h.Datasets.Get(ctx, sess.ID())
	if err != nil {
		h.Log.Error("loading dataset failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not load the uploaded data.")
		return
	}
	if ds == nil {
		// Nothing uploaded yet is not an error for the listing; the
		// client polls this before the first upload.
		httpjson.Write(w, http.StatusOK, map[string]any{"data": []oms.Row{}})
		return
	}

	out := make([]oms.Row, 0, len(ds.Lines))
	for _, row := range ds.Lines {
		out = append(out, row.Clone().Tag())
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"data": out})
}

// Template handles GET /download_template: a header-only CSV of the
// canonical columns.
func (h *Handler) Template(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="import_template.csv"`)
	if err := csvio.WriteTemplate(w); err != nil {
		h.Log.Error("writing template failed", zap.Error(err))
	}
}
