package wizard

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/omstools/importassist/internal/domain/oms"
)

// RowError is one validation problem, indexed by the row's position in the
// edit buffer (0-based) so the UI can point at the offending line.
type RowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (e RowError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("row %d: %s: %s", e.Row+1, e.Field, e.Message)
	}
	return fmt.Sprintf("row %d: %s", e.Row+1, e.Message)
}

// ValidationErrors aggregates every problem found so the user sees them
// all at once instead of one per attempt.
type ValidationErrors []RowError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// requiredFields must be non-empty on every submitted row.
var requiredFields = []string{
	oms.FieldName,
	oms.FieldStartDate,
	oms.FieldEndDate,
	oms.FieldTargetSpend,
}

// numericChecked are validated as numbers when present.
var numericChecked = []string{
	oms.FieldTargetSpend,
	oms.FieldCpm,
	oms.FieldCpd,
	oms.FieldTargetImpressions,
}

// ValidateRows runs the pre-submission checks over the rows about to be
// sent for processing. It returns nil when everything passes. No network
// call may be made while this returns errors.
func ValidateRows(rows []oms.Row) ValidationErrors {
	var errs ValidationErrors
	for i, r := range rows {
		for _, f := range requiredFields {
			if strings.TrimSpace(r.Get(f)) == "" {
				errs = append(errs, RowError{Row: i, Field: f, Message: f + " is required"})
			}
		}

		start, startRaw := r.Get(oms.FieldStartDate), strings.TrimSpace(r.Get(oms.FieldStartDate))
		end, endRaw := r.Get(oms.FieldEndDate), strings.TrimSpace(r.Get(oms.FieldEndDate))
		startT, startOK := oms.ParseDate(start)
		endT, endOK := oms.ParseDate(end)
		if startRaw != "" && !startOK {
			errs = append(errs, RowError{Row: i, Field: oms.FieldStartDate, Message: "StartDate is not a valid M/D/YYYY date"})
		}
		if endRaw != "" && !endOK {
			errs = append(errs, RowError{Row: i, Field: oms.FieldEndDate, Message: "EndDate is not a valid M/D/YYYY date"})
		}
		if startOK && endOK && startT.After(endT) {
			errs = append(errs, RowError{Row: i, Field: oms.FieldEndDate, Message: "EndDate must not be before StartDate"})
		}

		for _, f := range numericChecked {
			v := strings.TrimSpace(r.Get(f))
			if v == "" {
				continue
			}
			if _, err := strconv.ParseFloat(v, 64); err != nil {
				errs = append(errs, RowError{Row: i, Field: f, Message: f + " must be a number"})
			}
		}

		for _, f := range []string{oms.FieldIsReserved, oms.FieldIsExcluded} {
			v := strings.TrimSpace(r.Get(f))
			if v != "" && v != "TRUE" && v != "FALSE" {
				errs = append(errs, RowError{Row: i, Field: f, Message: f + " must be TRUE or FALSE"})
			}
		}
	}
	return errs
}

// ValidateReview checks the backend's review rows for export completeness:
// every canonical field must be present on every row, or the finished CSV
// would import with missing columns. Failures keep the wizard on the edit
// step.
func ValidateReview(rows []oms.Row) ValidationErrors {
	var errs ValidationErrors
	for i, r := range rows {
		for _, f := range r.MissingCanonicalFields() {
			errs = append(errs, RowError{Row: i, Field: f, Message: f + " missing from review data"})
		}
	}
	return errs
}
