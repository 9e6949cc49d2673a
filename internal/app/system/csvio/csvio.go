// Package csvio reads and writes the OMS import CSV format, enforcing the
// canonical field list at the boundary so rows round-trip losslessly.
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/omstools/importassist/internal/domain/oms"
)

// Upload size and row limits for CSV processing.
const (
	MaxUploadSize = 5 << 20 // 5 MB
	MaxRows       = 20000
)

// ErrTooManyRows is returned when the file exceeds MaxRows data rows.
var ErrTooManyRows = errors.New("csv exceeds the maximum row count")

// MissingColumnsError reports canonical columns absent from the header.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return "Missing required columns: " + strings.Join(e.Columns, ", ")
}

// Read parses an uploaded CSV into rows. The first record must be a
// header containing every canonical column (a UTF-8 BOM on the first cell
// is tolerated); extra columns are dropped so nothing non-canonical leaks
// past the boundary. Values are kept verbatim as strings.
func Read(r io.Reader) ([]oms.Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &MissingColumnsError{Columns: oms.CanonicalFields}
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	colIndex := make(map[string]int, len(header))
	for i, name := range header {
		if oms.IsCanonicalField(name) {
			colIndex[name] = i
		}
	}
	var missing []string
	for _, f := range oms.CanonicalFields {
		if _, ok := colIndex[f]; !ok {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}

	var rows []oms.Row
	line := 1
	for {
		rec, err := reader.Read()
		line++
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line, err)
		}
		if isBlank(rec) {
			continue
		}
		if len(rows) >= MaxRows {
			return nil, ErrTooManyRows
		}
		row := make(oms.Row, len(oms.CanonicalFields))
		for name, idx := range colIndex {
			if idx < len(rec) {
				row[name] = rec[idx]
			} else {
				row[name] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func isBlank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// Write emits rows as a CSV in canonical column order. Fields outside the
// canonical list (the originalId tag in particular) are not written.
func Write(w io.Writer, rows []oms.Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(oms.CanonicalFields); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	rec := make([]string, len(oms.CanonicalFields))
	for _, row := range rows {
		for i, f := range oms.CanonicalFields {
			rec[i] = row.Get(f)
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTemplate emits the header-only template users download before
// filling in their line items. Generated from the canonical list so it
// can never drift from what Read accepts.
func WriteTemplate(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(oms.CanonicalFields); err != nil {
		return fmt.Errorf("write csv template: %w", err)
	}
	cw.Flush()
	return cw.Error()
}
