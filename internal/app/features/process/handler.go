// internal/app/features/process/handler.go
package process

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/omstools/importassist/internal/app/system/httpjson"
	"github.com/omstools/importassist/internal/app/system/timeouts"
	"github.com/omstools/importassist/internal/app/system/wizardsession"
	"github.com/omstools/importassist/internal/domain/oms"
	"github.com/omstools/importassist/internal/domain/wizard"
)

// Handler exposes the processing endpoints of the original service. The
// bodies mirror its contract: clone and edit take a bare row array, copy
// takes an envelope carrying the target identifiers.
type Handler struct {
	Svc *Service
	Log *zap.Logger
}

// NewHandler constructs a process Handler.
func NewHandler(svc *Service, logger *zap.Logger) *Handler {
	return &Handler{Svc: svc, Log: logger}
}

// copyRequest is the POST /process_copy body.
type copyRequest struct {
	Lines               []oms.Row `json:"lines"`
	TargetMediaPlanID   string    `json:"targetMediaPlanId"`
	TargetOpportunityID string    `json:"targetOpportunityId"`
}

// successResponse is the shape all three processing endpoints return.
type successResponse struct {
	Success     bool      `json:"success"`
	ReviewData  []oms.Row `json:"review_data"`
	DownloadURL string    `json:"download_url"`
}

// Clone handles POST /process_clone.
func (h *Handler) Clone(w http.ResponseWriter, r *http.Request) {
	h.serveLines(w, r, wizard.ActionClone)
}

// Edit handles POST /process_edit.
func (h *Handler) Edit(w http.ResponseWriter, r *http.Request) {
	h.serveLines(w, r, wizard.ActionEdit)
}

func (h *Handler) serveLines(w http.ResponseWriter, r *http.Request, action wizard.Action) {
	var lines []oms.Row
	if err := httpjson.Decode(w, r, &lines); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Request body must be a JSON array of rows.")
		return
	}
	h.run(w, r, wizard.Payload{Action: action, Lines: lines})
}

// Copy handles POST /process_copy.
func (h *Handler) Copy(w http.ResponseWriter, r *http.Request) {
	var req copyRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Request body must be a JSON object with lines and targetMediaPlanId.")
		return
	}
	h.run(w, r, wizard.Payload{
		Action:              wizard.ActionCopy,
		Lines:               req.Lines,
		TargetMediaPlanID:   req.TargetMediaPlanID,
		TargetOpportunityID: req.TargetOpportunityID,
	})
}

func (h *Handler) run(w http.ResponseWriter, r *http.Request, p wizard.Payload) {
	sess, ok := wizardsession.FromRequest(r)
	if !ok {
		httpjson.Error(w, http.StatusInternalServerError, "session unavailable")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium)
	defer cancel()
	review, err := h.Svc.Process(ctx, sess.ID(), p)
	switch {
	case errors.Is(err, ErrNoDataset):
		httpjson.Error(w, http.StatusBadRequest, "No file uploaded. Please upload a CSV file first.")
		return
	case errors.Is(err, wizard.ErrMissingCopyTarget):
		httpjson.Error(w, http.StatusBadRequest, "targetMediaPlanId is required for copy.")
		return
	case err != nil:
		h.Log.Error("processing failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Processing failed.")
		return
	}

	httpjson.Write(w, http.StatusOK, successResponse{
		Success:     true,
		ReviewData:  review,
		DownloadURL: "/download_ready_csv",
	})
}
