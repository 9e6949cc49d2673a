package csvio_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/omstools/importassist/internal/app/system/csvio"
	"github.com/omstools/importassist/internal/domain/oms"
	"github.com/omstools/importassist/internal/testutil"
)

func TestRead_RoundTrip(t *testing.T) {
	doc := testutil.CSV(t,
		testutil.LineRow("1", "Spring Push"),
		testutil.LineTargetRow("100", "1"),
	)
	rows, err := csvio.Read(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].ID() != "1" || rows[0].Get(oms.FieldName) != "Spring Push" {
		t.Errorf("row 0: %v", rows[0])
	}
	if rows[1].Get(oms.FieldLineID) != "1" {
		t.Errorf("row 1 LineId: %q", rows[1].Get(oms.FieldLineID))
	}
}

func TestRead_BOMAndBlankRows(t *testing.T) {
	doc := "\ufeff" + testutil.CSV(t, testutil.LineRow("1", "a")) +
		strings.Repeat(",", len(oms.CanonicalFields)-1) + "\n"
	rows, err := csvio.Read(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("BOM or blank row tripped the reader: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("got %d rows, want 1 (blank row skipped)", len(rows))
	}
}

func TestRead_MissingColumns(t *testing.T) {
	doc := "entitytype,Id,Name\nLine,1,a\n"
	_, err := csvio.Read(strings.NewReader(doc))
	var missing *csvio.MissingColumnsError
	if !errors.As(err, &missing) {
		t.Fatalf("got %v, want MissingColumnsError", err)
	}
	if !strings.HasPrefix(missing.Error(), "Missing required columns: ") {
		t.Errorf("message: %q", missing.Error())
	}
	for _, col := range missing.Columns {
		if col == "entitytype" || col == "Id" || col == "Name" {
			t.Errorf("present column %q reported missing", col)
		}
	}
}

func TestRead_ExtraColumnsDropped(t *testing.T) {
	lines := strings.Split(strings.TrimSuffix(testutil.CSV(t, testutil.LineRow("1", "a")), "\n"), "\n")
	doc := lines[0] + ",bogus\n" + lines[1] + ",shouldvanish\n"
	rows, err := csvio.Read(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := rows[0]["bogus"]; ok {
		t.Error("non-canonical column leaked past the boundary")
	}
}

func TestWrite_StripsOriginalID(t *testing.T) {
	row := testutil.LineRow("1", "a").Tag()
	var b strings.Builder
	if err := csvio.Write(&b, []oms.Row{row}); err != nil {
		t.Fatal(err)
	}
	out := b.String()
	if strings.Contains(out, oms.FieldOriginalID) {
		t.Error("originalId written to CSV")
	}
	if !strings.HasPrefix(out, strings.Join(oms.CanonicalFields, ",")) {
		t.Error("header not in canonical order")
	}
}

func TestWriteTemplate(t *testing.T) {
	var b strings.Builder
	if err := csvio.WriteTemplate(&b); err != nil {
		t.Fatal(err)
	}
	want := strings.Join(oms.CanonicalFields, ",") + "\n"
	if b.String() != want {
		t.Errorf("template: got %q", b.String())
	}
}
