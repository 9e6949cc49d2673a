// Package wizard implements the import-assistant flow as one explicit,
// session-scoped state machine: dataset, filtered view, selection, edit
// buffer, and submission building. Everything here is pure state
// manipulation so the flow is testable without HTTP or rendering.
package wizard

import (
	"fmt"
	"strings"

	"github.com/omstools/importassist/internal/domain/oms"
)

// Action is the operation the user picked for the selected rows.
type Action int

const (
	ActionNone Action = iota
	ActionClone
	ActionCopy
	ActionEdit
)

func (a Action) String() string {
	switch a {
	case ActionClone:
		return "clone"
	case ActionCopy:
		return "copy"
	case ActionEdit:
		return "edit"
	default:
		return ""
	}
}

// ParseAction maps the wire name to an Action.
func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "clone":
		return ActionClone, nil
	case "copy":
		return ActionCopy, nil
	case "edit":
		return ActionEdit, nil
	}
	return ActionNone, fmt.Errorf("unknown action %q", s)
}

// Endpoint returns the processing endpoint for the action.
func (a Action) Endpoint() string {
	switch a {
	case ActionClone:
		return "/process_clone"
	case ActionCopy:
		return "/process_copy"
	case ActionEdit:
		return "/process_edit"
	default:
		return ""
	}
}

// readOnlyFields is the per-action editability policy. Clone and edit lock
// only the Id; copy also locks the plan-identifying fields because those
// come from the collected copy target, not from hand edits.
var readOnlyFields = map[Action]map[string]struct{}{
	ActionClone: {
		oms.FieldID: {},
	},
	ActionEdit: {
		oms.FieldID: {},
	},
	ActionCopy: {
		oms.FieldID:            {},
		oms.FieldCustomerID:    {},
		oms.FieldMediaPlanID:   {},
		oms.FieldMediaPlanName: {},
		oms.FieldOpportunityID: {},
		oms.FieldProductID:     {},
	},
}

// ReadOnly reports whether field may not be edited under this action.
// The Id is read-only regardless of action, including ActionNone.
func (a Action) ReadOnly(field string) bool {
	if field == oms.FieldID || field == oms.FieldOriginalID {
		return true
	}
	set, ok := readOnlyFields[a]
	if !ok {
		return false
	}
	_, locked := set[field]
	return locked
}

// ReadOnlyFields returns the policy set for the action in canonical field
// order, for surfacing to the edit UI.
func (a Action) ReadOnlyFields() []string {
	var out []string
	for _, f := range oms.CanonicalFields {
		if a.ReadOnly(f) {
			out = append(out, f)
		}
	}
	return out
}

// CopyTarget holds the destination collected for the copy action.
type CopyTarget struct {
	MediaPlanID   string
	MediaPlanName string
	OpportunityID string
}

// Complete reports whether enough of the target has been collected to
// enter the edit step. The plan id is the one hard requirement.
func (t CopyTarget) Complete() bool {
	return strings.TrimSpace(t.MediaPlanID) != ""
}
