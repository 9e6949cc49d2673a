package oms

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Row is one OMS entity (a Line, a LineTarget, …) as an open field map.
// Values stay strings end to end so the CSV round-trips losslessly; typed
// interpretation (numbers, dates, lists) happens at the point of use via
// the field-class helpers in fields.go.
type Row map[string]string

// Get returns the value for field, or "" when absent.
func (r Row) Get(field string) string {
	return r[field]
}

// Set assigns value to field.
func (r Row) Set(field, value string) {
	r[field] = value
}

// ID returns the row's Id field.
func (r Row) ID() string {
	return r[FieldID]
}

// OriginalID returns the stable id tag, falling back to Id for rows that
// were never tagged (for example rows built directly in tests).
func (r Row) OriginalID() string {
	if v, ok := r[FieldOriginalID]; ok && v != "" {
		return v
	}
	return r[FieldID]
}

// UnmarshalJSON accepts looser client payloads than the map type would:
// numbers, booleans, and nulls coerce to their field string forms, so
// rows that passed through tooling that retypes columns decode the same
// as this service's own all-string output.
func (r *Row) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	out := make(Row, len(raw))
	for k, v := range raw {
		switch t := v.(type) {
		case nil:
			out[k] = ""
		case string:
			out[k] = t
		case json.Number:
			out[k] = t.String()
		case bool:
			if t {
				out[k] = "TRUE"
			} else {
				out[k] = "FALSE"
			}
		default:
			return fmt.Errorf("field %s: expected a scalar value", k)
		}
	}
	*r = out
	return nil
}

// EntityType returns the entitytype field.
func (r Row) EntityType() string {
	return r[FieldEntityType]
}

// Clone returns a shallow copy of the row. Row values are plain strings,
// so a shallow copy is a full copy.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Tag stamps the row with originalId := Id. Called once when the dataset
// is fetched; the tag is never rewritten afterwards.
func (r Row) Tag() Row {
	r[FieldOriginalID] = r[FieldID]
	return r
}

// MissingCanonicalFields lists canonical fields the row lacks, in column
// order. Used for export validation of backend review data.
func (r Row) MissingCanonicalFields() []string {
	var missing []string
	for _, f := range CanonicalFields {
		if _, ok := r[f]; !ok {
			missing = append(missing, f)
		}
	}
	return missing
}

// CloneRows deep-copies a row slice.
func CloneRows(rows []Row) []Row {
	out := make([]Row, len(rows))
	for i, r := range rows {
		out[i] = r.Clone()
	}
	return out
}
