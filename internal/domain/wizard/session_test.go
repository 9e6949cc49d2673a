package wizard

import (
	"errors"
	"testing"

	"github.com/omstools/importassist/internal/domain/oms"
)

func sessionDataset() []oms.Row {
	var rows []oms.Row
	names := []string{"alpha", "beta", "gamma", "delta"}
	for i, name := range names {
		rows = append(rows, oms.Row{
			oms.FieldEntityType:  "Line",
			oms.FieldID:          string(rune('1' + i)),
			oms.FieldName:        name,
			oms.FieldStartDate:   "1/1/2025",
			oms.FieldEndDate:     "3/31/2025",
			oms.FieldTargetSpend: "100",
		})
	}
	return rows
}

func completeReview(ids ...string) []oms.Row {
	var out []oms.Row
	for _, id := range ids {
		r := make(oms.Row, len(oms.CanonicalFields))
		for _, f := range oms.CanonicalFields {
			r[f] = ""
		}
		r[oms.FieldEntityType] = "Line"
		r[oms.FieldID] = id
		out = append(out, r)
	}
	return out
}

func TestSession_HappyPathCloneFlow(t *testing.T) {
	s := NewSession("t1")
	if s.Step() != StepUpload {
		t.Fatalf("fresh session at %v, want upload", s.Step())
	}

	s.LoadDataset(sessionDataset())
	if s.Step() != StepSelectData {
		t.Fatalf("after upload at %v, want select_data", s.Step())
	}

	if err := s.Next(); !errors.Is(err, ErrEmptySelection) {
		t.Fatalf("Next with empty selection: got %v", err)
	}

	s.Select("1", "3")
	if err := s.Next(); err != nil {
		t.Fatal(err)
	}
	if s.Step() != StepSelectAction {
		t.Fatalf("at %v, want select_action", s.Step())
	}

	if err := s.ChooseAction(ActionClone); err != nil {
		t.Fatal(err)
	}
	if s.Step() != StepEditData {
		t.Fatalf("at %v, want edit_data", s.Step())
	}
	if got := len(s.BufferRows()); got != 2 {
		t.Fatalf("buffer seeded with %d rows, want 2", got)
	}

	if err := s.SetField("1", oms.FieldName, "renamed"); err != nil {
		t.Fatal(err)
	}

	payload, err := s.BeginSubmit()
	if err != nil {
		t.Fatal(err)
	}
	if payload.Action != ActionClone || len(payload.Lines) != 2 {
		t.Fatalf("payload: action %v, %d lines", payload.Action, len(payload.Lines))
	}
	if payload.Lines[0].Get(oms.FieldName) != "renamed" {
		t.Error("edit lost on submission")
	}

	// Second submit while in flight is rejected.
	if _, err := s.BeginSubmit(); !errors.Is(err, ErrSubmitInFlight) {
		t.Fatalf("concurrent submit: got %v", err)
	}

	if err := s.CompleteSubmit(completeReview("1", "3"), nil); err != nil {
		t.Fatal(err)
	}
	if s.Step() != StepReview {
		t.Fatalf("at %v, want review", s.Step())
	}
	if got := len(s.Review()); got != 2 {
		t.Fatalf("review projection: %d rows, want 2", got)
	}

	if err := s.Next(); err != nil {
		t.Fatal(err)
	}
	if s.Step() != StepDownload {
		t.Fatalf("at %v, want download", s.Step())
	}
	if err := s.MarkDownloaded(); err != nil {
		t.Fatal(err)
	}
	if !s.Snapshot().Downloaded {
		t.Error("downloaded flag not set")
	}
}

func TestSession_CopyGate(t *testing.T) {
	s := NewSession("t2")
	s.LoadDataset(sessionDataset())
	s.Select("1")
	if err := s.Next(); err != nil {
		t.Fatal(err)
	}

	if err := s.ChooseAction(ActionCopy); !errors.Is(err, ErrAwaitingCopyGate) {
		t.Fatalf("copy without target: got %v", err)
	}
	if s.Step() != StepSelectAction {
		t.Fatal("copy advanced past the gate without a target")
	}

	if err := s.SetCopyTarget(CopyTarget{}); !errors.Is(err, ErrMissingCopyTarget) {
		t.Fatalf("empty target: got %v", err)
	}

	if err := s.SetCopyTarget(CopyTarget{MediaPlanID: "MP100", OpportunityID: "OPP1"}); err != nil {
		t.Fatal(err)
	}
	if s.Step() != StepEditData {
		t.Fatalf("at %v, want edit_data after target collected", s.Step())
	}

	payload, err := s.BeginSubmit()
	if err != nil {
		t.Fatal(err)
	}
	if payload.TargetMediaPlanID != "MP100" || payload.TargetOpportunityID != "OPP1" {
		t.Errorf("envelope: %q, %q", payload.TargetMediaPlanID, payload.TargetOpportunityID)
	}
	if payload.Lines[0].Get(oms.FieldMediaPlanID) != "MP100" {
		t.Error("copy target not forced onto rows")
	}
}

func TestSession_FailedSubmitStaysOnEdit(t *testing.T) {
	s := NewSession("t3")
	s.LoadDataset(sessionDataset())
	s.Select("1")
	_ = s.Next()
	_ = s.ChooseAction(ActionEdit)

	// Invalid buffer: validation aborts before anything is in flight.
	if err := s.SetField("1", oms.FieldTargetSpend, "lots"); err != nil {
		t.Fatal(err)
	}
	_, err := s.BeginSubmit()
	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("got %v, want ValidationErrors", err)
	}
	if _, err := s.BeginSubmit(); errors.Is(err, ErrSubmitInFlight) {
		t.Fatal("failed validation left a submission in flight")
	}

	// Processing failure keeps the step and the buffer.
	if err := s.SetField("1", oms.FieldTargetSpend, "100"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.BeginSubmit(); err != nil {
		t.Fatal(err)
	}
	procErr := errors.New("backend exploded")
	if err := s.CompleteSubmit(nil, procErr); !errors.Is(err, procErr) {
		t.Fatalf("got %v, want processing error", err)
	}
	if s.Step() != StepEditData {
		t.Fatal("processing failure moved off the edit step")
	}
	if got := len(s.BufferRows()); got != 1 {
		t.Fatalf("buffer discarded on failure: %d rows", got)
	}

	// Incomplete review rows fail export validation and also stay put.
	if _, err := s.BeginSubmit(); err != nil {
		t.Fatal(err)
	}
	incomplete := []oms.Row{{oms.FieldEntityType: "Line", oms.FieldID: "1"}}
	err = s.CompleteSubmit(incomplete, nil)
	if !errors.As(err, &verrs) {
		t.Fatalf("got %v, want export ValidationErrors", err)
	}
	if s.Step() != StepEditData || s.Snapshot().DownloadReady {
		t.Fatal("failed export validation advanced the wizard")
	}
}

func TestSession_BackAndHome(t *testing.T) {
	s := NewSession("t4")
	s.LoadDataset(sessionDataset())
	s.Select("1")
	_ = s.Next()
	_ = s.ChooseAction(ActionEdit)

	if err := s.Back(); err != nil || s.Step() != StepSelectAction {
		t.Fatalf("back from edit: err %v, step %v", err, s.Step())
	}
	if err := s.Back(); err != nil || s.Step() != StepSelectData {
		t.Fatalf("back again: err %v, step %v", err, s.Step())
	}
	if got := s.SelectedIDs(); len(got) != 1 {
		t.Error("going back dropped the selection")
	}

	s.Home()
	st := s.Snapshot()
	if s.Step() != StepUpload || st.DatasetSize != 0 || len(st.SelectedIDs) != 0 || st.Action != "" {
		t.Errorf("Home left residue: %+v", st)
	}
}

func TestSession_ReuploadReplacesWorld(t *testing.T) {
	s := NewSession("t5")
	s.LoadDataset(sessionDataset())
	s.Select("1", "2")
	_ = s.Next()

	s.LoadDataset(sessionDataset()[:2])
	if s.Step() != StepSelectData {
		t.Fatalf("re-upload at %v, want select_data", s.Step())
	}
	if got := s.SelectedIDs(); len(got) != 0 {
		t.Errorf("selection survived re-upload: %v", got)
	}
	if s.Snapshot().DatasetSize != 2 {
		t.Errorf("dataset size: got %d, want 2", s.Snapshot().DatasetSize)
	}
}

func TestSession_ViewDoesNotTouchSelection(t *testing.T) {
	s := NewSession("t6")
	s.LoadDataset(sessionDataset())
	s.Select("2", "4")

	page := s.SetView(Filters{Query: "alpha"}, Sort{}, 1, 2)
	if page.Total != 1 {
		t.Fatalf("filtered total: got %d, want 1", page.Total)
	}
	if got := s.SelectedIDs(); len(got) != 2 {
		t.Errorf("view change altered the selection: %v", got)
	}

	// Select-all only touches the visible (filtered) page.
	s.SelectAllVisible()
	if got := len(s.SelectedIDs()); got != 3 {
		t.Errorf("after select_all: %d selected, want 3", got)
	}
}

func TestSession_DatasetRowsAreTagged(t *testing.T) {
	s := NewSession("t7")
	s.LoadDataset(sessionDataset())
	s.Select("1")
	rows := s.SelectedRows()
	if len(rows) != 1 {
		t.Fatal("selection did not resolve")
	}
	if rows[0].Get(oms.FieldOriginalID) != "1" {
		t.Errorf("dataset row missing originalId tag: %v", rows[0])
	}
}
