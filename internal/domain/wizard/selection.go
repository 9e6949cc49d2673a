package wizard

import (
	"github.com/omstools/importassist/internal/domain/oms"
)

// Selection tracks which row ids the user has chosen, across page and
// filter changes. Ids are kept in first-selection order with set
// semantics: re-selecting an id is a no-op, never a duplicate.
type Selection struct {
	order        []string
	set          map[string]struct{}
	pendingReset bool
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{set: make(map[string]struct{})}
}

// Select adds ids that are not already selected.
func (s *Selection) Select(ids ...string) {
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := s.set[id]; ok {
			continue
		}
		s.set[id] = struct{}{}
		s.order = append(s.order, id)
	}
}

// Deselect removes ids; absent ids are ignored.
func (s *Selection) Deselect(ids ...string) {
	for _, id := range ids {
		if _, ok := s.set[id]; !ok {
			continue
		}
		delete(s.set, id)
		for i, v := range s.order {
			if v == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
}

// SelectAll selects every id visible on the current page. Ids outside the
// page are untouched, so selections made on other pages survive.
func (s *Selection) SelectAll(pageIDs []string) {
	s.Select(pageIDs...)
}

// DeselectAll deselects only the ids visible on the current page.
func (s *Selection) DeselectAll(pageIDs []string) {
	s.Deselect(pageIDs...)
}

// Contains reports whether id is selected.
func (s *Selection) Contains(id string) bool {
	_, ok := s.set[id]
	return ok
}

// Len returns the number of selected ids.
func (s *Selection) Len() int {
	return len(s.order)
}

// IDs returns the selected ids in first-selection order.
func (s *Selection) IDs() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// RequestReset arms the two-step destructive reset. The selection is not
// cleared until ConfirmReset.
func (s *Selection) RequestReset() {
	s.pendingReset = true
}

// ConfirmReset clears the selection if a reset was requested and reports
// whether anything happened.
func (s *Selection) ConfirmReset() bool {
	if !s.pendingReset {
		return false
	}
	s.pendingReset = false
	s.clear()
	return true
}

// CancelReset disarms a pending reset.
func (s *Selection) CancelReset() {
	s.pendingReset = false
}

// ResetPending reports whether a reset is awaiting confirmation.
func (s *Selection) ResetPending() bool {
	return s.pendingReset
}

func (s *Selection) clear() {
	s.order = nil
	s.set = make(map[string]struct{})
}

// Resolve returns a snapshot row for every selected id still present in
// the dataset, in selection order. Ids that no longer resolve (the dataset
// was replaced underneath the selection) are dropped silently.
func (s *Selection) Resolve(dataset []oms.Row) []oms.Row {
	byID := make(map[string]oms.Row, len(dataset))
	for _, r := range dataset {
		byID[r.ID()] = r
	}
	out := make([]oms.Row, 0, len(s.order))
	for _, id := range s.order {
		if r, ok := byID[id]; ok {
			out = append(out, r.Clone())
		}
	}
	return out
}
