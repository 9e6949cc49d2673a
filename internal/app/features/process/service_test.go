package process_test

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/omstools/importassist/internal/app/features/process"
	"github.com/omstools/importassist/internal/app/store/datasets"
	"github.com/omstools/importassist/internal/app/store/reviews"
	"github.com/omstools/importassist/internal/domain/oms"
	"github.com/omstools/importassist/internal/domain/wizard"
	"github.com/omstools/importassist/internal/testutil"
)

func newService(t *testing.T) (*process.Service, *datasets.Store, *reviews.Store) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ds := datasets.New(db, time.Hour)
	rs := reviews.New(db, time.Hour)
	return process.NewService(ds, rs, zap.NewNop()), ds, rs
}

func storeDataset(t *testing.T, ds *datasets.Store, sessionID string) {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()
	err := ds.Put(ctx, sessionID, "lines.csv",
		[]oms.Row{testutil.LineRow("1", "one"), testutil.LineRow("2", "two")},
		[]oms.Row{
			testutil.LineTargetRow("100", "1.0"),
			testutil.LineTargetRow("101", "2"),
		})
	if err != nil {
		t.Fatal(err)
	}
}

func TestProcess_CloneMergesTargets(t *testing.T) {
	svc, ds, rs := newService(t)
	storeDataset(t, ds, "s1")

	ctx, cancel := testutil.TestContext()
	defer cancel()
	review, err := svc.Process(ctx, "s1", wizard.Payload{
		Action: wizard.ActionClone,
		Lines:  []oms.Row{testutil.LineRow("1", "one").Tag()},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(review) != 2 {
		t.Fatalf("got %d rows, want line + its target", len(review))
	}
	if review[0].ID() != "1" || review[1].ID() != "100" {
		t.Errorf("merge order: %q, %q", review[0].ID(), review[1].ID())
	}

	snap, err := rs.Get(ctx, "s1")
	if err != nil || snap == nil {
		t.Fatalf("snapshot not stored: %v, %v", snap, err)
	}
	if snap.Action != "clone" || len(snap.Rows) != 2 {
		t.Errorf("snapshot: action %q, %d rows", snap.Action, len(snap.Rows))
	}
}

func TestProcess_CopyAssignsImportIDs(t *testing.T) {
	svc, ds, _ := newService(t)
	storeDataset(t, ds, "s2")

	ctx, cancel := testutil.TestContext()
	defer cancel()
	review, err := svc.Process(ctx, "s2", wizard.Payload{
		Action:              wizard.ActionCopy,
		Lines:               []oms.Row{testutil.LineRow("1", "one").Tag()},
		TargetMediaPlanID:   "MP100",
		TargetOpportunityID: "OPP1",
	})
	if err != nil {
		t.Fatal(err)
	}
	if review[0].ID() != "-1" {
		t.Errorf("line id: got %q, want -1", review[0].ID())
	}
	if review[1].Get(oms.FieldLineID) != "-1" {
		t.Errorf("target LineId: got %q, want -1", review[1].Get(oms.FieldLineID))
	}
	for i, row := range review {
		if row.Get(oms.FieldMediaPlanID) != "MP100" {
			t.Errorf("row %d MediaPlanId: got %q", i, row.Get(oms.FieldMediaPlanID))
		}
	}
}

func TestProcess_Errors(t *testing.T) {
	svc, ds, _ := newService(t)
	storeDataset(t, ds, "s3")

	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := svc.Process(ctx, "nodata", wizard.Payload{Action: wizard.ActionClone})
	if !errors.Is(err, process.ErrNoDataset) {
		t.Errorf("no dataset: got %v", err)
	}

	_, err = svc.Process(ctx, "s3", wizard.Payload{
		Action: wizard.ActionCopy,
		Lines:  []oms.Row{testutil.LineRow("1", "one")},
	})
	if !errors.Is(err, wizard.ErrMissingCopyTarget) {
		t.Errorf("missing copy target: got %v", err)
	}

	_, err = svc.Process(ctx, "s3", wizard.Payload{})
	if !errors.Is(err, wizard.ErrNoAction) {
		t.Errorf("no action: got %v", err)
	}
}

func TestHandler_CloneEndpoint(t *testing.T) {
	svc, ds, _ := newService(t)
	storeDataset(t, ds, "h1")
	h := process.NewHandler(svc, zap.NewNop())

	req := testutil.NewJSONRequest(t, "POST", "/process_clone",
		[]oms.Row{testutil.LineRow("2", "two").Tag()})
	req = testutil.WithSession(req, wizard.NewSession("h1"))
	rec := testutil.NewRecorder()

	h.Clone(rec, req)
	rec.AssertStatus(t, 200)

	var resp struct {
		Success     bool      `json:"success"`
		ReviewData  []oms.Row `json:"review_data"`
		DownloadURL string    `json:"download_url"`
	}
	rec.DecodeJSON(t, &resp)
	if !resp.Success || resp.DownloadURL != "/download_ready_csv" {
		t.Errorf("envelope: %+v", resp)
	}
	if len(resp.ReviewData) != 2 {
		t.Errorf("review rows: got %d, want line 2 + target 101", len(resp.ReviewData))
	}
}

func TestHandler_NoDataset(t *testing.T) {
	svc, _, _ := newService(t)
	h := process.NewHandler(svc, zap.NewNop())

	req := testutil.NewJSONRequest(t, "POST", "/process_edit", []oms.Row{testutil.LineRow("1", "x")})
	req = testutil.WithSession(req, wizard.NewSession("h2"))
	rec := testutil.NewRecorder()

	h.Edit(rec, req)
	rec.AssertStatus(t, 400)
	rec.AssertContains(t, "No file uploaded")
}
