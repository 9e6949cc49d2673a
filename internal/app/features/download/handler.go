// internal/app/features/download/handler.go
package download

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/omstools/importassist/internal/app/store/reviews"
	"github.com/omstools/importassist/internal/app/system/csvio"
	"github.com/omstools/importassist/internal/app/system/httpjson"
	"github.com/omstools/importassist/internal/app/system/timeouts"
	"github.com/omstools/importassist/internal/app/system/wizardsession"
	"github.com/omstools/importassist/internal/domain/oms"
)

// Handler serves the finished, import-ready CSV built from the session's
// review snapshot.
type Handler struct {
	Reviews *reviews.Store
	Log     *zap.Logger
}

// NewHandler constructs a download Handler.
func NewHandler(rs *reviews.Store, logger *zap.Logger) *Handler {
	return &Handler{Reviews: rs, Log: logger}
}

// ReadyCSV handles GET /download_ready_csv. Rows get a fresh negative
// import-id assignment on the way out so repeated downloads of the same
// snapshot yield the same file, and the originalId tag never reaches the
// CSV because the writer only emits canonical columns.
func (h *Handler) ReadyCSV(w http.ResponseWriter, r *http.Request) {
	sess, ok := wizardsession.FromRequest(r)
	if !ok {
		httpjson.Error(w, http.StatusInternalServerError, "session unavailable")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium)
	defer cancel()
	snap, err := h.Reviews.Get(ctx, sess.ID())
	if err != nil {
		h.Log.Error("loading review snapshot failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Could not load the processed data.")
		return
	}
	if snap == nil {
		httpjson.Error(w, http.StatusNotFound, "No processed data available")
		return
	}

	rows := oms.CloneRows(snap.Rows)
	oms.AssignImportIDs(rows)

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="oms_import_ready.csv"`)
	if err := csvio.Write(w, rows); err != nil {
		h.Log.Error("writing ready csv failed", zap.Error(err))
	}
}
