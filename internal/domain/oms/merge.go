package oms

import "strconv"

// Merge and export transforms for the processing step. These are pure
// functions over row slices; the HTTP handlers in features/process own the
// persistence around them.

// TargetsForLines returns the LineTarget rows whose LineId refers to one of
// the submitted Line rows. Matching goes through the rows' original ids so
// user edits to the Id column cannot detach a line from its targets, and
// ids compare numerically tolerant ("12" matches "12.0").
func TargetsForLines(lines []Row, targets []Row) []Row {
	want := make(map[string]struct{}, len(lines))
	for _, l := range lines {
		if id := CanonicalID(l.OriginalID()); id != "" {
			want[id] = struct{}{}
		}
	}
	var out []Row
	for _, t := range targets {
		if _, ok := want[CanonicalID(t.Get(FieldLineID))]; ok {
			out = append(out, t.Clone())
		}
	}
	return out
}

// MergeForReview builds the review projection: the submitted Line rows
// (Id restored from the original-id tag) followed by their LineTargets,
// in dataset order.
func MergeForReview(lines []Row, targets []Row) []Row {
	merged := make([]Row, 0, len(lines)+len(targets))
	for _, l := range lines {
		row := l.Clone()
		row.Set(FieldID, l.OriginalID())
		merged = append(merged, row)
	}
	merged = append(merged, TargetsForLines(lines, targets)...)
	return merged
}

// ForceCopyTarget overwrites the plan-identifying fields on every row with
// the wizard-collected copy destination. Empty target values leave the
// corresponding field untouched.
func ForceCopyTarget(rows []Row, mediaPlanID, mediaPlanName, opportunityID string) {
	for _, r := range rows {
		if mediaPlanID != "" {
			r.Set(FieldMediaPlanID, mediaPlanID)
		}
		if mediaPlanName != "" {
			r.Set(FieldMediaPlanName, mediaPlanName)
		}
		if opportunityID != "" {
			r.Set(FieldOpportunityID, opportunityID)
		}
	}
}

// AssignImportIDs rewrites row ids the way the OMS import expects for new
// entities: every Line gets a fresh negative Id (-1, -2, …), every
// LineTarget gets its own negative Id from a second counter, and each
// LineTarget's LineId is remapped to its Line's new negative Id. The input
// is modified in place. Rows of other entity types keep their ids.
func AssignImportIDs(rows []Row) {
	lineIDMap := make(map[string]string)
	next := -1
	for _, r := range rows {
		if !IsLine(r.EntityType()) {
			continue
		}
		newID := strconv.Itoa(next)
		if old := CanonicalID(r.ID()); old != "" {
			lineIDMap[old] = newID
		}
		r.Set(FieldID, newID)
		next--
	}
	next = -1
	for _, r := range rows {
		if !IsLineTarget(r.EntityType()) {
			continue
		}
		r.Set(FieldID, strconv.Itoa(next))
		next--
		if mapped, ok := lineIDMap[CanonicalID(r.Get(FieldLineID))]; ok {
			r.Set(FieldLineID, mapped)
		}
	}
}
