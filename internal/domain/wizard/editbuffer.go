package wizard

import (
	"errors"

	"github.com/omstools/importassist/internal/domain/oms"
)

// EditBuffer is the working copy of the selected rows during the edit
// step: exactly one entry per selected id, in selection order, each tagged
// with the stable original id so edits can be matched back at submission.
type EditBuffer struct {
	entries []oms.Row
}

// SetField outcomes that callers may want to distinguish. Both leave the
// buffer untouched.
var (
	ErrUnknownRow    = errors.New("no buffer entry with that id")
	ErrReadOnlyField = errors.New("field is read-only for this action")
)

// SeedBuffer builds the buffer from the current selection, resolving each
// id against the dataset. It runs synchronously on in-memory data, so the
// buffer is fully populated before the edit step is ever shown.
func SeedBuffer(sel *Selection, dataset []oms.Row) *EditBuffer {
	rows := sel.Resolve(dataset)
	for _, r := range rows {
		// Carry the tag even for rows that were never tagged upstream.
		if r.Get(oms.FieldOriginalID) == "" {
			r.Tag()
		}
	}
	return &EditBuffer{entries: rows}
}

// Len returns the number of buffer entries.
func (b *EditBuffer) Len() int {
	return len(b.entries)
}

// Rows returns a deep copy of the buffer entries in order.
func (b *EditBuffer) Rows() []oms.Row {
	return oms.CloneRows(b.entries)
}

// Entry returns a copy of the entry whose stable id matches.
func (b *EditBuffer) Entry(id string) (oms.Row, bool) {
	if e := b.find(id); e != nil {
		return e.Clone(), true
	}
	return nil, false
}

// SetField mutates exactly the entry whose stable id matches. It rejects
// fields that the action's policy marks read-only and normalizes values by
// field class: hour fields clamp to [0,23] and list fields re-serialize as
// a comma-joined tag list with empty segments dropped. Boolean-literal
// fields store whatever was typed; enforcement of TRUE/FALSE happens at
// validation so the user sees it with the rest of the errors.
func (b *EditBuffer) SetField(action Action, id, field, value string) error {
	entry := b.find(id)
	if entry == nil {
		return ErrUnknownRow
	}
	if action.ReadOnly(field) {
		return ErrReadOnlyField
	}
	switch {
	case oms.IsHourField(field):
		entry.Set(field, oms.ClampHour(value))
	case oms.IsListField(field):
		entry.Set(field, oms.JoinList(oms.SplitList(value)))
	default:
		entry.Set(field, value)
	}
	return nil
}

// DisplayValue returns the value to render for a field, applying the
// presentational date normalization (midnight / end-of-day fill-in).
// The stored value is not modified; it only changes if the user submits
// the normalized text back through SetField.
func (b *EditBuffer) DisplayValue(id, field string) string {
	entry := b.find(id)
	if entry == nil {
		return ""
	}
	v := entry.Get(field)
	if oms.IsDateField(field) {
		return oms.NormalizeDateText(field, v)
	}
	return v
}

func (b *EditBuffer) find(id string) oms.Row {
	for _, e := range b.entries {
		if e.OriginalID() == id {
			return e
		}
	}
	return nil
}
