// internal/app/features/wizardapi/handler.go
package wizardapi

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/omstools/importassist/internal/app/features/process"
	"github.com/omstools/importassist/internal/app/system/httpjson"
	"github.com/omstools/importassist/internal/app/system/timeouts"
	"github.com/omstools/importassist/internal/app/system/wizardsession"
	"github.com/omstools/importassist/internal/domain/wizard"
)

// Handler drives the session's wizard aggregate over JSON. Every endpoint
// resolves the caller's session from the cookie middleware, applies one
// operation, and returns the resulting state snapshot (or a richer body
// where the step needs one).
type Handler struct {
	Svc *process.Service
	Log *zap.Logger
}

// NewHandler constructs a wizard API Handler.
func NewHandler(svc *process.Service, logger *zap.Logger) *Handler {
	return &Handler{Svc: svc, Log: logger}
}

func session(w http.ResponseWriter, r *http.Request) (*wizard.Session, bool) {
	sess, ok := wizardsession.FromRequest(r)
	if !ok {
		httpjson.Error(w, http.StatusInternalServerError, "session unavailable")
	}
	return sess, ok
}

// writeStepError maps the domain's navigation and validation errors onto
// the API's status codes. Validation problems come back in aggregate.
func writeStepError(w http.ResponseWriter, err error) {
	var verrs wizard.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		httpjson.Write(w, http.StatusUnprocessableEntity, map[string]any{"errors": verrs})
	case errors.Is(err, wizard.ErrSubmitInFlight):
		httpjson.Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, wizard.ErrBadTransition),
		errors.Is(err, wizard.ErrNotEditing),
		errors.Is(err, wizard.ErrAwaitingCopyGate):
		httpjson.Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, wizard.ErrUnknownRow),
		errors.Is(err, wizard.ErrNotReady):
		httpjson.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, wizard.ErrReadOnlyField):
		httpjson.Error(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, wizard.ErrEmptySelection),
		errors.Is(err, wizard.ErrMissingCopyTarget),
		errors.Is(err, wizard.ErrNoAction):
		httpjson.Error(w, http.StatusBadRequest, err.Error())
	default:
		httpjson.Error(w, http.StatusInternalServerError, err.Error())
	}
}

// State handles GET /wizard.
func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	sess, ok := session(w, r)
	if !ok {
		return
	}
	httpjson.Write(w, http.StatusOK, sess.Snapshot())
}

// View handles POST /wizard/view.
func (h *Handler) View(w http.ResponseWriter, r *http.Request) {
	sess, ok := session(w, r)
	if !ok {
		return
	}
	var req viewRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "malformed view request")
		return
	}
	page := sess.SetView(
		wizard.Filters{Query: req.Query, IDs: req.IDs, From: req.From, To: req.To},
		wizard.Sort{Field: req.SortBy, Descending: req.SortDesc},
		req.Page, req.PageSize)
	httpjson.Write(w, http.StatusOK, viewResponse{
		Rows:        page.Rows,
		PageIDs:     page.PageIDs,
		Total:       page.Total,
		Page:        page.Page,
		PageSize:    page.PageSize,
		SelectedIDs: sess.SelectedIDs(),
	})
}

// Select handles POST /wizard/select.
func (h *Handler) Select(w http.ResponseWriter, r *http.Request) {
	h.applyIDs(w, r, func(s *wizard.Session, ids []string) { s.Select(ids...) })
}

// Deselect handles POST /wizard/deselect.
func (h *Handler) Deselect(w http.ResponseWriter, r *http.Request) {
	h.applyIDs(w, r, func(s *wizard.Session, ids []string) { s.Deselect(ids...) })
}

func (h *Handler) applyIDs(w http.ResponseWriter, r *http.Request, op func(*wizard.Session, []string)) {
	sess, ok := session(w, r)
	if !ok {
		return
	}
	var req idsRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "malformed id list")
		return
	}
	op(sess, req.IDs)
	httpjson.Write(w, http.StatusOK, sess.Snapshot())
}

// SelectAll handles POST /wizard/select_all: current page ids only.
func (h *Handler) SelectAll(w http.ResponseWriter, r *http.Request) {
	sess, ok := session(w, r)
	if !ok {
		return
	}
	sess.SelectAllVisible()
	httpjson.Write(w, http.StatusOK, sess.Snapshot())
}

// DeselectAll handles POST /wizard/deselect_all: current page ids only.
func (h *Handler) DeselectAll(w http.ResponseWriter, r *http.Request) {
	sess, ok := session(w, r)
	if !ok {
		return
	}
	sess.DeselectAllVisible()
	httpjson.Write(w, http.StatusOK, sess.Snapshot())
}

// ResetRequest handles POST /wizard/selection_reset.
func (h *Handler) ResetRequest(w http.ResponseWriter, r *http.Request) {
	sess, ok := session(w, r)
	if !ok {
		return
	}
	sess.RequestSelectionReset()
	httpjson.Write(w, http.StatusOK, sess.Snapshot())
}

// ResetConfirm handles POST /wizard/selection_reset/confirm.
func (h *Handler) ResetConfirm(w http.ResponseWriter, r *http.Request) {
	sess, ok := session(w, r)
	if !ok {
		return
	}
	if !sess.ConfirmSelectionReset() {
		httpjson.Error(w, http.StatusConflict, "no selection reset pending")
		return
	}
	httpjson.Write(w, http.StatusOK, sess.Snapshot())
}

// ResetCancel handles POST /wizard/selection_reset/cancel.
func (h *Handler) ResetCancel(w http.ResponseWriter, r *http.Request) {
	sess, ok := session(w, r)
	if !ok {
		return
	}
	sess.CancelSelectionReset()
	httpjson.Write(w, http.StatusOK, sess.Snapshot())
}

// ChooseAction handles POST /wizard/action. A copy choice without a
// target leaves the wizard waiting at the action step; repeating the call
// with targetMediaPlanId completes the gate.
func (h *Handler) ChooseAction(w http.ResponseWriter, r *http.Request) {
	sess, ok := session(w, r)
	if !ok {
		return
	}
	var req actionRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "malformed action request")
		return
	}
	action, err := wizard.ParseAction(req.Action)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	err = sess.ChooseAction(action)
	if errors.Is(err, wizard.ErrAwaitingCopyGate) && req.TargetMediaPlanID != "" {
		err = sess.SetCopyTarget(wizard.CopyTarget{
			MediaPlanID:   req.TargetMediaPlanID,
			MediaPlanName: req.TargetMediaPlanName,
			OpportunityID: req.TargetOpportunityID,
		})
	}
	if err != nil && !errors.Is(err, wizard.ErrAwaitingCopyGate) {
		writeStepError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, sess.Snapshot())
}

// Edit handles POST /wizard/edit.
func (h *Handler) Edit(w http.ResponseWriter, r *http.Request) {
	sess, ok := session(w, r)
	if !ok {
		return
	}
	var req editRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "malformed edit request")
		return
	}
	if err := sess.SetField(req.ID, req.Field, req.Value); err != nil {
		writeStepError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, editResponse{Value: sess.DisplayValue(req.ID, req.Field)})
}

// Next handles POST /wizard/next.
func (h *Handler) Next(w http.ResponseWriter, r *http.Request) {
	sess, ok := session(w, r)
	if !ok {
		return
	}
	if err := sess.Next(); err != nil {
		writeStepError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, sess.Snapshot())
}

// Back handles POST /wizard/back.
func (h *Handler) Back(w http.ResponseWriter, r *http.Request) {
	sess, ok := session(w, r)
	if !ok {
		return
	}
	if err := sess.Back(); err != nil {
		writeStepError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, sess.Snapshot())
}

// Home handles POST /wizard/home: full reset, including the stored
// dataset and review snapshot.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	sess, ok := session(w, r)
	if !ok {
		return
	}
	sess.Home()

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()
	if err := h.Svc.Datasets.Delete(ctx, sess.ID()); err != nil {
		h.Log.Warn("deleting dataset on home failed", zap.Error(err))
	}
	if err := h.Svc.Reviews.Delete(ctx, sess.ID()); err != nil {
		h.Log.Warn("deleting review on home failed", zap.Error(err))
	}
	httpjson.Write(w, http.StatusOK, sess.Snapshot())
}

// Submit handles POST /wizard/submit: validate the buffer, build the
// payload, process, post-validate the review rows, and advance to Review.
// Any failure leaves the wizard on the edit step with the buffer intact.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	sess, ok := session(w, r)
	if !ok {
		return
	}
	payload, err := sess.BeginSubmit()
	if err != nil {
		writeStepError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium)
	defer cancel()
	review, procErr := h.Svc.Process(ctx, sess.ID(), payload)
	if err := sess.CompleteSubmit(review, procErr); err != nil {
		if errors.Is(err, process.ErrNoDataset) {
			httpjson.Error(w, http.StatusBadRequest, "No file uploaded. Please upload a CSV file first.")
			return
		}
		writeStepError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, sess.Snapshot())
}

// Review handles GET /wizard/review.
func (h *Handler) Review(w http.ResponseWriter, r *http.Request) {
	sess, ok := session(w, r)
	if !ok {
		return
	}
	if !sess.Snapshot().DownloadReady {
		httpjson.Error(w, http.StatusNotFound, "No processed data available")
		return
	}
	httpjson.Write(w, http.StatusOK, reviewResponse{
		ReviewData:  sess.Review(),
		DownloadURL: "/download_ready_csv",
	})
}

// Downloaded handles POST /wizard/downloaded.
func (h *Handler) Downloaded(w http.ResponseWriter, r *http.Request) {
	sess, ok := session(w, r)
	if !ok {
		return
	}
	if err := sess.MarkDownloaded(); err != nil {
		writeStepError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, sess.Snapshot())
}
