package wizard

import (
	"errors"
	"sync"
	"time"

	"github.com/omstools/importassist/internal/domain/oms"
)

// Navigation and submission errors. All of them leave the session exactly
// where it was; only Home performs a full reset.
var (
	ErrBadTransition    = errors.New("transition not allowed from this step")
	ErrEmptySelection   = errors.New("select at least one row first")
	ErrNotEditing       = errors.New("not at the edit step")
	ErrSubmitInFlight   = errors.New("a submission is already in progress")
	ErrAwaitingCopyGate = errors.New("copy target not collected yet")
	ErrNotReady         = errors.New("no processed data available")
)

// Session is the whole wizard state for one user run: dataset, view,
// selection, edit buffer, submission bookkeeping, and step position, as a
// single aggregate instead of scattered variables. A mutex serializes
// access because HTTP handlers may race on the same cookie session; within
// the lock the flow is the single-threaded, event-driven machine the UI
// presents.
type Session struct {
	mu sync.Mutex

	id         string
	step       Step
	action     Action
	copyGate   bool // at SelectAction, copy chosen but target not yet collected
	copyTarget CopyTarget

	dataset   []oms.Row
	selection *Selection
	buffer    *EditBuffer

	filters  Filters
	sortSpec Sort
	page     int
	pageSize int

	review        []oms.Row
	downloadReady bool
	downloaded    bool
	submitting    bool

	lastActive time.Time
}

// NewSession returns a fresh session at the upload step.
func NewSession(id string) *Session {
	return &Session{
		id:         id,
		selection:  NewSelection(),
		buffer:     &EditBuffer{},
		page:       1,
		pageSize:   DefaultPageSize,
		lastActive: time.Now(),
	}
}

// ID returns the session's identifier.
func (s *Session) ID() string { return s.id }

// LastActive returns the time of the last operation, for idle expiry.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

func (s *Session) touch() { s.lastActive = time.Now() }

// LoadDataset installs a freshly uploaded dataset and moves to the
// select-data step. Every wizard substate from the previous run is
// discarded: re-upload replaces the world.
func (s *Session) LoadDataset(rows []oms.Row) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.dataset = make([]oms.Row, len(rows))
	for i, r := range rows {
		s.dataset[i] = r.Clone().Tag()
	}
	s.resetFlowLocked()
	s.step = StepSelectData
}

// Home resets the entire wizard back to the upload step, from any step.
func (s *Session) Home() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.dataset = nil
	s.resetFlowLocked()
	s.step = StepUpload
}

// resetFlowLocked clears everything downstream of the dataset.
func (s *Session) resetFlowLocked() {
	s.selection = NewSelection()
	s.buffer = &EditBuffer{}
	s.action = ActionNone
	s.copyGate = false
	s.copyTarget = CopyTarget{}
	s.filters = Filters{}
	s.sortSpec = Sort{}
	s.page = 1
	s.pageSize = DefaultPageSize
	s.review = nil
	s.downloadReady = false
	s.downloaded = false
	s.submitting = false
}

// Step returns the current step.
func (s *Session) Step() Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

// Action returns the chosen action (ActionNone before SelectAction).
func (s *Session) Action() Action {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.action
}

// ViewPage is one page of the filtered, sorted projection.
type ViewPage struct {
	Rows     []oms.Row
	PageIDs  []string
	Total    int // rows in the projection, across all pages
	Page     int
	PageSize int
}

// SetView updates filters, sort, and pagination, and returns the visible
// page. Changing the view never touches the selection. A pageSize <= 0
// keeps the current size, a page < 1 keeps the current page.
func (s *Session) SetView(f Filters, srt Sort, page, pageSize int) ViewPage {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.filters = f
	s.sortSpec = srt
	if pageSize > 0 {
		s.pageSize = pageSize
	}
	if page >= 1 {
		s.page = page
	}
	return s.viewPageLocked()
}

// View returns the current page without changing any view state.
func (s *Session) View() ViewPage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewPageLocked()
}

func (s *Session) viewPageLocked() ViewPage {
	projected := ApplyView(s.dataset, s.filters, s.sortSpec)
	pageRows := Page(projected, s.page, s.pageSize)
	return ViewPage{
		Rows:     oms.CloneRows(pageRows),
		PageIDs:  IDsOf(pageRows),
		Total:    len(projected),
		Page:     s.page,
		PageSize: s.pageSize,
	}
}

// Select adds ids to the selection (idempotent).
func (s *Session) Select(ids ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.selection.Select(ids...)
}

// Deselect removes ids from the selection.
func (s *Session) Deselect(ids ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.selection.Deselect(ids...)
}

// SelectAllVisible selects every id on the current page of the current
// view; rows filtered out or on other pages are untouched.
func (s *Session) SelectAllVisible() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.selection.SelectAll(s.viewPageLocked().PageIDs)
}

// DeselectAllVisible deselects only the current page's ids.
func (s *Session) DeselectAllVisible() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.selection.DeselectAll(s.viewPageLocked().PageIDs)
}

// SelectedIDs returns the selected ids in selection order.
func (s *Session) SelectedIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.IDs()
}

// SelectedRows resolves the selection against the dataset.
func (s *Session) SelectedRows() []oms.Row {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.Resolve(s.dataset)
}

// RequestSelectionReset, ConfirmSelectionReset, and CancelSelectionReset
// implement the two-step destructive clear.
func (s *Session) RequestSelectionReset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.selection.RequestReset()
}

func (s *Session) ConfirmSelectionReset() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.selection.ConfirmReset()
}

func (s *Session) CancelSelectionReset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.selection.CancelReset()
}

// ChooseAction records the action at the select-action step. Clone and
// edit advance straight into editing; copy arms the target-collection gate
// and returns ErrAwaitingCopyGate until SetCopyTarget supplies a plan id.
func (s *Session) ChooseAction(a Action) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if s.step != StepSelectAction {
		return ErrBadTransition
	}
	s.action = a
	if a == ActionCopy {
		s.copyGate = true
		return ErrAwaitingCopyGate
	}
	s.copyGate = false
	s.enterEditLocked()
	return nil
}

// SetCopyTarget completes the copy gate and enters the edit step.
func (s *Session) SetCopyTarget(t CopyTarget) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if s.step != StepSelectAction || s.action != ActionCopy {
		return ErrBadTransition
	}
	if !t.Complete() {
		return ErrMissingCopyTarget
	}
	s.copyTarget = t
	s.copyGate = false
	s.enterEditLocked()
	return nil
}

// enterEditLocked moves to EditData, (re-)seeding the buffer from the
// selection. Seeding is synchronous over in-memory rows, so the edit step
// never renders before the buffer exists.
func (s *Session) enterEditLocked() {
	s.buffer = SeedBuffer(s.selection, s.dataset)
	s.step = StepEditData
}

// Next advances one step where a plain "Next" is legal. EditData advances
// only via Submit, and SelectAction only via ChooseAction.
func (s *Session) Next() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	switch s.step {
	case StepSelectData:
		if s.selection.Len() == 0 {
			return ErrEmptySelection
		}
		s.step = StepSelectAction
		return nil
	case StepReview:
		if !s.downloadReady {
			return ErrNotReady
		}
		s.step = StepDownload
		return nil
	default:
		return ErrBadTransition
	}
}

// Back steps backward. Stepping back from EditData returns to the action
// choice; from Review back to editing (the buffer is kept as-is so the
// user can adjust and resubmit).
func (s *Session) Back() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	switch s.step {
	case StepSelectData:
		s.step = StepUpload
	case StepSelectAction:
		s.step = StepSelectData
	case StepEditData:
		s.step = StepSelectAction
	case StepReview:
		s.step = StepEditData
	case StepDownload:
		s.step = StepReview
	default:
		return ErrBadTransition
	}
	return nil
}

// SetField edits one field of one buffer entry, subject to the action's
// read-only policy.
func (s *Session) SetField(id, field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if s.step != StepEditData {
		return ErrNotEditing
	}
	return s.buffer.SetField(s.action, id, field, value)
}

// DisplayValue exposes the buffer's presentational value for a field.
func (s *Session) DisplayValue(id, field string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buffer.DisplayValue(id, field)
}

// BufferRows returns a copy of the edit buffer.
func (s *Session) BufferRows() []oms.Row {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buffer.Rows()
}

// BeginSubmit validates the buffer and builds the submission payload,
// marking a submission in flight. At most one submission per session may
// be outstanding; a second attempt gets ErrSubmitInFlight, mirroring the
// disabled Next button in the UI. Validation failures abort before any
// processing happens and are returned in aggregate.
func (s *Session) BeginSubmit() (Payload, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if s.step != StepEditData {
		return Payload{}, ErrNotEditing
	}
	if s.submitting {
		return Payload{}, ErrSubmitInFlight
	}
	if s.buffer.Len() == 0 {
		return Payload{}, ErrEmptySelection
	}
	rows := s.buffer.Rows()
	if errs := ValidateRows(rows); len(errs) > 0 {
		return Payload{}, errs
	}
	p, err := BuildSubmission(s.action, s.buffer, s.copyTarget)
	if err != nil {
		return Payload{}, err
	}
	s.submitting = true
	return p, nil
}

// CompleteSubmit resolves an in-flight submission. A processing error (or
// review rows failing export validation) keeps the wizard on the edit step
// with nothing discarded, so the user can retry; success installs the
// review projection and advances.
func (s *Session) CompleteSubmit(review []oms.Row, procErr error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.submitting = false
	if procErr != nil {
		return procErr
	}
	if errs := ValidateReview(review); len(errs) > 0 {
		return errs
	}
	s.review = oms.CloneRows(review)
	s.downloadReady = true
	s.step = StepReview
	return nil
}

// Review returns the review projection as shown to the user: Line rows
// only, with the copy target's plan id applied when the action was copy.
func (s *Session) Review() []oms.Row {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []oms.Row
	for _, r := range s.review {
		if !oms.IsLine(r.EntityType()) {
			continue
		}
		row := r.Clone()
		if s.action == ActionCopy {
			oms.ForceCopyTarget([]oms.Row{row}, s.copyTarget.MediaPlanID, s.copyTarget.MediaPlanName, s.copyTarget.OpportunityID)
		}
		out = append(out, row)
	}
	return out
}

// MarkDownloaded flips the terminal downloaded flag once the final CSV has
// been fetched. A failed download leaves the flag untouched for retry.
func (s *Session) MarkDownloaded() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if !s.downloadReady {
		return ErrNotReady
	}
	s.downloaded = true
	return nil
}

// State is the JSON-facing snapshot of the wizard.
type State struct {
	Step           int      `json:"step"`
	StepName       string   `json:"stepName"`
	Action         string   `json:"action,omitempty"`
	AwaitingTarget bool     `json:"awaitingCopyTarget,omitempty"`
	TargetPlanID   string   `json:"targetMediaPlanId,omitempty"`
	TargetPlanName string   `json:"targetMediaPlanName,omitempty"`
	TargetOppID    string   `json:"targetOpportunityId,omitempty"`
	SelectedIDs    []string `json:"selectedIds"`
	ResetPending   bool     `json:"selectionResetPending,omitempty"`
	DatasetSize    int      `json:"datasetSize"`
	BufferSize     int      `json:"bufferSize"`
	ReadOnly       []string `json:"readOnlyFields,omitempty"`
	DownloadReady  bool     `json:"downloadReady"`
	Downloaded     bool     `json:"downloaded"`
	Submitting     bool     `json:"submitting"`
}

// Snapshot captures the current state for the API.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := State{
		Step:           int(s.step),
		StepName:       s.step.String(),
		Action:         s.action.String(),
		AwaitingTarget: s.copyGate,
		TargetPlanID:   s.copyTarget.MediaPlanID,
		TargetPlanName: s.copyTarget.MediaPlanName,
		TargetOppID:    s.copyTarget.OpportunityID,
		SelectedIDs:    s.selection.IDs(),
		ResetPending:   s.selection.ResetPending(),
		DatasetSize:    len(s.dataset),
		BufferSize:     s.buffer.Len(),
		DownloadReady:  s.downloadReady,
		Downloaded:     s.downloaded,
		Submitting:     s.submitting,
	}
	if s.action != ActionNone {
		st.ReadOnly = s.action.ReadOnlyFields()
	}
	return st
}
