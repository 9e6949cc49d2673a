package wizard

import (
	"errors"

	"github.com/omstools/importassist/internal/domain/oms"
)

// Payload is the submission body for a processing call. Clone and edit
// send the bare line list and differ only in destination endpoint; copy
// wraps the lines in an envelope that carries the target identifiers
// independently of the per-row values.
type Payload struct {
	Action              Action
	Lines               []oms.Row
	TargetMediaPlanID   string
	TargetOpportunityID string
}

// ErrNoAction is returned when a submission is built before an action was
// chosen.
var ErrNoAction = errors.New("no action selected")

// ErrMissingCopyTarget is returned when a copy submission is built without
// a target media plan.
var ErrMissingCopyTarget = errors.New("copy requires a target media plan id")

// BuildSubmission turns the edit buffer into the payload for the chosen
// action. Every row's Id is forced back to its stable original id, undoing
// any transient edit of the identifier; for copy, the plan-identifying
// fields are additionally forced to the collected target on every row.
func BuildSubmission(action Action, buf *EditBuffer, target CopyTarget) (Payload, error) {
	if action == ActionNone {
		return Payload{}, ErrNoAction
	}
	rows := buf.Rows()
	for _, r := range rows {
		r.Set(oms.FieldID, r.OriginalID())
	}
	p := Payload{Action: action, Lines: rows}
	if action == ActionCopy {
		if !target.Complete() {
			return Payload{}, ErrMissingCopyTarget
		}
		oms.ForceCopyTarget(rows, target.MediaPlanID, target.MediaPlanName, target.OpportunityID)
		p.TargetMediaPlanID = target.MediaPlanID
		p.TargetOpportunityID = target.OpportunityID
	}
	return p, nil
}

// Endpoint returns the backend endpoint this payload must be posted to.
func (p Payload) Endpoint() string {
	return p.Action.Endpoint()
}
