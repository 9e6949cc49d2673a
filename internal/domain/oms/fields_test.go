package oms

import "testing"

func TestParseDate(t *testing.T) {
	tests := []struct {
		in string
		ok bool
	}{
		{"1/1/2025", true},
		{"12/31/2025 23:59:59", true},
		{"3/5/2025 9:30", true},
		{" 1/1/2025 ", true},
		{"2025-01-01", false},
		{"13/1/2025", false},
		{"", false},
		{"not a date", false},
	}
	for _, tt := range tests {
		if _, ok := ParseDate(tt.in); ok != tt.ok {
			t.Errorf("ParseDate(%q): got ok=%v, want %v", tt.in, ok, tt.ok)
		}
	}
}

func TestNormalizeDateText(t *testing.T) {
	tests := []struct {
		name  string
		field string
		in    string
		want  string
	}{
		{"start date-only gets midnight", FieldStartDate, "1/1/2025", "1/1/2025 00:00:00"},
		{"end date-only gets end of day", FieldEndDate, "3/31/2025", "3/31/2025 23:59:59"},
		{"missing seconds filled", FieldStartDate, "1/1/2025 9:30", "1/1/2025 9:30:00"},
		{"full timestamp untouched", FieldEndDate, "1/1/2025 9:30:15", "1/1/2025 9:30:15"},
		{"non-date untouched", FieldStartDate, "soon", "soon"},
		{"empty untouched", FieldEndDate, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeDateText(tt.field, tt.in); got != tt.want {
				t.Errorf("NormalizeDateText(%s, %q): got %q, want %q", tt.field, tt.in, got, tt.want)
			}
		})
	}
}

func TestCanonicalID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"12", "12"},
		{"12.0", "12"},
		{" 12 ", "12"},
		{"-3", "-3"},
		{"", ""},
		{"abc", "abc"},
	}
	for _, tt := range tests {
		if got := CanonicalID(tt.in); got != tt.want {
			t.Errorf("CanonicalID(%q): got %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEntityKind(t *testing.T) {
	if !IsLine("Line") || !IsLine(" line ") || !IsLine("LINE") {
		t.Error("IsLine should trim and case-fold")
	}
	if IsLine("LineTarget") {
		t.Error("IsLine should not match LineTarget")
	}
	if !IsLineTarget("lineTarget") || !IsLineTarget(" LINETARGET ") {
		t.Error("IsLineTarget should trim and case-fold")
	}
}

func TestSplitJoinList(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Mon,Tue,Wed", "Mon,Tue,Wed"},
		{"Mon, ,Tue,,", "Mon,Tue"},
		{" ", ""},
		{",,", ""},
	}
	for _, tt := range tests {
		if got := JoinList(SplitList(tt.in)); got != tt.want {
			t.Errorf("round-trip %q: got %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestClampHour(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0"},
		{"23", "23"},
		{"24", "23"},
		{"-5", "0"},
		{"7.9", "7"},
		{"junk", "0"},
	}
	for _, tt := range tests {
		if got := ClampHour(tt.in); got != tt.want {
			t.Errorf("ClampHour(%q): got %q, want %q", tt.in, got, tt.want)
		}
	}
}
