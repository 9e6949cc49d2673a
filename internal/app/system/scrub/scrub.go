// Package scrub strips markup from free-text CSV fields before they are
// stored and echoed back to the SPA's tables. Line-item names and
// descriptions are plain text by contract, so the strict policy applies.
package scrub

import (
	"github.com/microcosm-cc/bluemonday"

	"github.com/omstools/importassist/internal/domain/oms"
)

var policy = bluemonday.StrictPolicy()

// Text removes every tag and attribute from s.
func Text(s string) string {
	return policy.Sanitize(s)
}

// freeTextFields are the fields a hostile CSV could use to smuggle markup
// into the UI. Identifier and enum-ish fields are validated elsewhere.
var freeTextFields = []string{
	oms.FieldName,
	oms.FieldDescription,
	oms.FieldMediaPlanName,
}

// Rows sanitizes the free-text fields of every row in place.
func Rows(rows []oms.Row) {
	for _, r := range rows {
		for _, f := range freeTextFields {
			if v := r.Get(f); v != "" {
				r.Set(f, Text(v))
			}
		}
	}
}
