package oms

import (
	"encoding/json"
	"testing"
)

func TestRowUnmarshalJSON_CoercesScalars(t *testing.T) {
	payload := `{
		"entitytype": "Line",
		"Id": 12,
		"TargetSpend": 1000.5,
		"Cpm": "2.50",
		"IsReserved": true,
		"IsExcluded": false,
		"Description": null
	}`
	var r Row
	if err := json.Unmarshal([]byte(payload), &r); err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		field, want string
	}{
		{FieldEntityType, "Line"},
		{FieldID, "12"},
		{FieldTargetSpend, "1000.5"},
		{FieldCpm, "2.50"},
		{FieldIsReserved, "TRUE"},
		{FieldIsExcluded, "FALSE"},
		{FieldDescription, ""},
	}
	for _, tt := range tests {
		if got := r.Get(tt.field); got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.field, got, tt.want)
		}
	}
}

func TestRowUnmarshalJSON_FloatIdsStayNumericTolerant(t *testing.T) {
	// A retyped id column ("12" become 12.0) must still pair with its
	// targets through the tolerant id comparison.
	var r Row
	if err := json.Unmarshal([]byte(`{"Id": 12.0}`), &r); err != nil {
		t.Fatal(err)
	}
	if CanonicalID(r.ID()) != CanonicalID("12") {
		t.Errorf("id %q does not match \"12\"", r.ID())
	}
}

func TestRowUnmarshalJSON_RejectsNonScalars(t *testing.T) {
	var r Row
	if err := json.Unmarshal([]byte(`{"Targets": {"nested": 1}}`), &r); err == nil {
		t.Error("nested object decoded without error")
	}
	if err := json.Unmarshal([]byte(`{"Ids": [1, 2]}`), &r); err == nil {
		t.Error("array value decoded without error")
	}
}
