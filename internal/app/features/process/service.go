// internal/app/features/process/service.go
package process

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/omstools/importassist/internal/app/store/datasets"
	"github.com/omstools/importassist/internal/app/store/reviews"
	"github.com/omstools/importassist/internal/domain/oms"
	"github.com/omstools/importassist/internal/domain/wizard"
)

// ErrNoDataset is returned when processing is requested before any CSV
// has been uploaded for the session.
var ErrNoDataset = errors.New("no dataset uploaded for this session")

// Service runs the processing step: merge the submitted Line rows with
// their LineTargets from the stored dataset, apply the action's id and
// target rewrites, and persist the review snapshot for download. The
// wizard submit path and the bare /process_* endpoints both go through
// here.
type Service struct {
	Datasets *datasets.Store
	Reviews  *reviews.Store
	Log      *zap.Logger
}

// NewService constructs a processing Service.
func NewService(ds *datasets.Store, rs *reviews.Store, logger *zap.Logger) *Service {
	return &Service{Datasets: ds, Reviews: rs, Log: logger}
}

// Process merges and stores the review snapshot for one submission and
// returns the merged rows. For clone and edit the rows keep their source
// ids (renumbering happens at download); for copy the merged rows get
// fresh negative import ids and the target plan identifiers immediately,
// because copied rows must never reference the source plan.
func (s *Service) Process(ctx context.Context, sessionID string, p wizard.Payload) ([]oms.Row, error) {
	if p.Action == wizard.ActionNone {
		return nil, wizard.ErrNoAction
	}
	ds, err := s.Datasets.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if ds == nil {
		return nil, ErrNoDataset
	}

	merged := oms.MergeForReview(p.Lines, ds.LineTargets)
	if p.Action == wizard.ActionCopy {
		if p.TargetMediaPlanID == "" {
			return nil, wizard.ErrMissingCopyTarget
		}
		oms.AssignImportIDs(merged)
		oms.ForceCopyTarget(merged, p.TargetMediaPlanID, "", p.TargetOpportunityID)
	}

	if err := s.Reviews.Put(ctx, sessionID, p.Action.String(), merged); err != nil {
		return nil, err
	}

	s.Log.Info("processed submission",
		zap.String("session", sessionID),
		zap.String("action", p.Action.String()),
		zap.Int("lines", len(p.Lines)),
		zap.Int("merged", len(merged)))

	return merged, nil
}
