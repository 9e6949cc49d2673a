// Package oms models the line-item rows the wizard moves between the
// uploaded CSV, the edit flow, and the ready-for-import export.
package oms

import (
	"strconv"
	"strings"
	"time"
)

// Canonical field names. The OMS import format is case-sensitive and the
// casing is inconsistent by contract (entitytype, customerId, PRODUCTID),
// so the names are kept exactly as the OMS emits them.
const (
	FieldEntityType            = "entitytype"
	FieldID                    = "Id"
	FieldCustomerID            = "customerId"
	FieldMediaPlanID           = "MediaPlanId"
	FieldMediaPlanName         = "MediaPlanName"
	FieldOpportunityID         = "OpportunityId"
	FieldPublisherID           = "PublisherId"
	FieldProductID             = "PRODUCTID"
	FieldName                  = "Name"
	FieldDescription           = "Description"
	FieldStartDate             = "StartDate"
	FieldEndDate               = "EndDate"
	FieldStartHour             = "StartHour"
	FieldEndHour               = "EndHour"
	FieldDayOfWeek             = "DayOfWeek"
	FieldCpm                   = "Cpm"
	FieldCpd                   = "Cpd"
	FieldTargetImpressions     = "TargetImpressions"
	FieldTargetSpend           = "TargetSpend"
	FieldIsReserved            = "IsReserved"
	FieldIsExcluded            = "IsExcluded"
	FieldLineType              = "LineType"
	FieldBudgetScheduleType    = "BudgetScheduleType"
	FieldTargets               = "Targets"
	FieldLineID                = "LineId"
	FieldTargetType            = "TargetType"
	FieldIDs                   = "Ids"
	FieldAudienceTargetingType = "AudienceTargetingType"
	FieldDeviceTypes           = "DeviceTypes"
)

// FieldOriginalID tags a row with the Id it carried when the dataset was
// fetched. It exists only inside the wizard and the JSON contract; it is
// stripped before CSV export.
const FieldOriginalID = "originalId"

// CanonicalFields is the authoritative field list, in CSV column order.
// Upload rejects files missing any of these, and export writes exactly
// these columns in exactly this order.
var CanonicalFields = []string{
	FieldEntityType,
	FieldID,
	FieldCustomerID,
	FieldMediaPlanID,
	FieldMediaPlanName,
	FieldOpportunityID,
	FieldPublisherID,
	FieldProductID,
	FieldName,
	FieldDescription,
	FieldStartDate,
	FieldEndDate,
	FieldStartHour,
	FieldEndHour,
	FieldDayOfWeek,
	FieldCpm,
	FieldCpd,
	FieldTargetImpressions,
	FieldTargetSpend,
	FieldIsReserved,
	FieldIsExcluded,
	FieldLineType,
	FieldBudgetScheduleType,
	FieldTargets,
	FieldLineID,
	FieldTargetType,
	FieldIDs,
	FieldAudienceTargetingType,
	FieldDeviceTypes,
}

var canonicalSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(CanonicalFields))
	for _, f := range CanonicalFields {
		m[f] = struct{}{}
	}
	return m
}()

// IsCanonicalField reports whether name is part of the import format.
func IsCanonicalField(name string) bool {
	_, ok := canonicalSet[name]
	return ok
}

// Entity kinds carried in the entitytype column.
const (
	EntityLine       = "Line"
	EntityLineTarget = "LineTarget"
)

// IsLine and IsLineTarget compare entitytype values the way the OMS export
// does in practice: surrounding whitespace and letter case vary per tenant.
func IsLine(entityType string) bool {
	return strings.EqualFold(strings.TrimSpace(entityType), EntityLine)
}

func IsLineTarget(entityType string) bool {
	return strings.EqualFold(strings.TrimSpace(entityType), EntityLineTarget)
}

var numericFields = map[string]struct{}{
	FieldCpm:               {},
	FieldCpd:               {},
	FieldTargetImpressions: {},
	FieldTargetSpend:       {},
	FieldStartHour:         {},
	FieldEndHour:           {},
}

var dateFields = map[string]struct{}{
	FieldStartDate: {},
	FieldEndDate:   {},
}

var boolFields = map[string]struct{}{
	FieldIsReserved: {},
	FieldIsExcluded: {},
}

var listFields = map[string]struct{}{
	FieldDayOfWeek:   {},
	FieldDeviceTypes: {},
}

var hourFields = map[string]struct{}{
	FieldStartHour: {},
	FieldEndHour:   {},
}

// IsNumericField reports whether the field compares and validates as a number.
func IsNumericField(name string) bool { _, ok := numericFields[name]; return ok }

// IsDateField reports whether the field holds an M/D/YYYY timestamp.
func IsDateField(name string) bool { _, ok := dateFields[name]; return ok }

// IsBoolField reports whether the field accepts only the literals TRUE/FALSE.
func IsBoolField(name string) bool { _, ok := boolFields[name]; return ok }

// IsListField reports whether the field is a comma-joined tag list.
func IsListField(name string) bool { _, ok := listFields[name]; return ok }

// IsHourField reports whether the field is an hour-of-day clamped to [0,23].
func IsHourField(name string) bool { _, ok := hourFields[name]; return ok }

// ParseNumber parses a numeric field value. Missing or unparseable values
// sort as zero.
func ParseNumber(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

// Date layouts accepted by the import format, most specific first.
var dateLayouts = []string{
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006",
}

// ParseDate parses an M/D/YYYY[ H:mm[:ss]] value.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// NormalizeDateText fills in the time-of-day portion for display:
// date-only StartDate becomes midnight, date-only EndDate becomes
// end-of-day, and a missing seconds component becomes ":00". Values that
// already carry full timestamps (or do not look like dates at all) pass
// through untouched. Callers decide whether the normalized text replaces
// the stored value.
func NormalizeDateText(field, value string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		return value
	}
	if _, ok := ParseDate(v); !ok {
		return value
	}
	switch {
	case matchLayout(v, "1/2/2006"):
		if field == FieldEndDate {
			return v + " 23:59:59"
		}
		return v + " 00:00:00"
	case matchLayout(v, "1/2/2006 15:04"):
		return v + ":00"
	}
	return value
}

func matchLayout(s, layout string) bool {
	_, err := time.Parse(layout, s)
	return err == nil
}

// SplitList splits a comma-joined list field into tags, discarding empty
// segments. JoinList is its inverse; together they keep serialization
// stable in entry order.
func SplitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func JoinList(tags []string) string {
	return strings.Join(tags, ",")
}

// ClampHour coerces an hour field value into [0,23]. Non-numeric input
// clamps to 0 rather than erroring, matching the edit-form behavior.
func ClampHour(s string) string {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		f, ferr := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if ferr != nil {
			return "0"
		}
		n = int(f)
	}
	if n < 0 {
		n = 0
	}
	if n > 23 {
		n = 23
	}
	return strconv.Itoa(n)
}

// CanonicalID normalizes an id for LineTarget matching. OMS exports drift
// between "12" and "12.0" for the same id, so numeric values compare by
// integer representation; everything else compares as a trimmed string.
// Wizard selection does NOT use this: rows are selected by exact Id string.
func CanonicalID(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return strconv.FormatInt(int64(f), 10)
	}
	return s
}
