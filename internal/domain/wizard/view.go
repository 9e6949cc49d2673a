package wizard

import (
	"sort"
	"strings"
	"time"

	"github.com/omstools/importassist/internal/domain/oms"
)

// Filters narrows the dataset for display. All zero values mean "no
// filtering". Filtering never mutates the dataset.
type Filters struct {
	// Query matches as a case-insensitive substring of Name or Description.
	Query string
	// IDs, when non-empty, is an explicit allow-list of Id values.
	IDs []string
	// From/To restrict to rows whose [StartDate, EndDate] range overlaps
	// the inclusive [From, To] window. M/D/YYYY[ H:mm[:ss]] format.
	From string
	To   string
}

// Sort orders the filtered rows by one field. Numeric fields compare as
// numbers (unparseable → 0), date fields as timestamps (missing → the zero
// instant), everything else lexicographically case-sensitive.
type Sort struct {
	Field      string
	Descending bool
}

// ApplyView produces the filtered, sorted projection of rows. The result
// shares Row values with the input (rows are only read, never written) but
// never shares the slice, so sorting cannot reorder the dataset.
func ApplyView(rows []oms.Row, f Filters, s Sort) []oms.Row {
	out := make([]oms.Row, 0, len(rows))
	var allow map[string]struct{}
	if len(f.IDs) > 0 {
		allow = make(map[string]struct{}, len(f.IDs))
		for _, id := range f.IDs {
			allow[id] = struct{}{}
		}
	}
	query := strings.ToLower(strings.TrimSpace(f.Query))
	from, fromOK := oms.ParseDate(f.From)
	// A date-only To means "through that whole day"; the EndDate
	// normalization appends 23:59:59 only when no time was given, so an
	// explicit timestamp stays a hard cutoff.
	to, toOK := oms.ParseDate(oms.NormalizeDateText(oms.FieldEndDate, f.To))

	for _, r := range rows {
		if allow != nil {
			if _, ok := allow[r.ID()]; !ok {
				continue
			}
		}
		if query != "" && !matchesQuery(r, query) {
			continue
		}
		if (fromOK || toOK) && !overlapsRange(r, from, fromOK, to, toOK) {
			continue
		}
		out = append(out, r)
	}

	if s.Field != "" {
		less := comparatorFor(s.Field)
		sort.SliceStable(out, func(i, j int) bool {
			if s.Descending {
				return less(out[j], out[i])
			}
			return less(out[i], out[j])
		})
	}
	return out
}

func matchesQuery(r oms.Row, query string) bool {
	return strings.Contains(strings.ToLower(r.Get(oms.FieldName)), query) ||
		strings.Contains(strings.ToLower(r.Get(oms.FieldDescription)), query)
}

// overlapsRange is an inclusive interval-overlap test. A missing or
// unparseable row StartDate counts as the earliest instant and a missing
// EndDate as unbounded, so partially dated rows are not filtered away.
func overlapsRange(r oms.Row, from time.Time, fromOK bool, to time.Time, toOK bool) bool {
	rowStart, startOK := oms.ParseDate(r.Get(oms.FieldStartDate))
	rowEnd, endOK := oms.ParseDate(r.Get(oms.FieldEndDate))
	if toOK && startOK && rowStart.After(to) {
		return false
	}
	if fromOK && endOK && rowEnd.Before(from) {
		return false
	}
	return true
}

func comparatorFor(field string) func(a, b oms.Row) bool {
	switch {
	case oms.IsNumericField(field):
		return func(a, b oms.Row) bool {
			return oms.ParseNumber(a.Get(field)) < oms.ParseNumber(b.Get(field))
		}
	case oms.IsDateField(field):
		return func(a, b oms.Row) bool {
			at, _ := oms.ParseDate(a.Get(field))
			bt, _ := oms.ParseDate(b.Get(field))
			return at.Before(bt)
		}
	default:
		return func(a, b oms.Row) bool {
			return a.Get(field) < b.Get(field)
		}
	}
}

// Page returns the 1-based page window over the projection. Out-of-range
// pages return an empty slice; size <= 0 falls back to DefaultPageSize.
func Page(rows []oms.Row, page, size int) []oms.Row {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * size
	if start >= len(rows) {
		return nil
	}
	end := start + size
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}

// DefaultPageSize matches the select-data table's page size.
const DefaultPageSize = 10

// IDsOf extracts the Id of every row, in order.
func IDsOf(rows []oms.Row) []string {
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.ID()
	}
	return ids
}
