package testutil

import (
	"strings"
	"testing"

	"github.com/omstools/importassist/internal/domain/oms"
)

// LineRow builds a Line row with sane defaults for the fields validation
// cares about. Override fields on the returned map as needed.
func LineRow(id, name string) oms.Row {
	row := make(oms.Row, len(oms.CanonicalFields))
	for _, f := range oms.CanonicalFields {
		row[f] = ""
	}
	row[oms.FieldEntityType] = "Line"
	row[oms.FieldID] = id
	row[oms.FieldName] = name
	row[oms.FieldStartDate] = "1/1/2025"
	row[oms.FieldEndDate] = "3/31/2025"
	row[oms.FieldTargetSpend] = "1000"
	return row
}

// LineTargetRow builds a LineTarget row pointing at the given line id.
func LineTargetRow(id, lineID string) oms.Row {
	row := make(oms.Row, len(oms.CanonicalFields))
	for _, f := range oms.CanonicalFields {
		row[f] = ""
	}
	row[oms.FieldEntityType] = "LineTarget"
	row[oms.FieldID] = id
	row[oms.FieldLineID] = lineID
	row[oms.FieldTargetType] = "Audience"
	return row
}

// CSV renders rows in canonical column order as a CSV document, for
// feeding upload handlers and the csv reader in tests.
func CSV(t *testing.T, rows ...oms.Row) string {
	t.Helper()
	var b strings.Builder
	b.WriteString(strings.Join(oms.CanonicalFields, ","))
	b.WriteString("\n")
	for _, row := range rows {
		vals := make([]string, len(oms.CanonicalFields))
		for i, f := range oms.CanonicalFields {
			vals[i] = row[f]
		}
		b.WriteString(strings.Join(vals, ","))
		b.WriteString("\n")
	}
	return b.String()
}
