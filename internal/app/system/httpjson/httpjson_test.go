package httpjson

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/omstools/importassist/internal/app/system/limits"
)

func TestDecode(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"alpha"}`))
	rec := httptest.NewRecorder()

	var dst struct {
		Name string `json:"name"`
	}
	if err := Decode(rec, req, &dst); err != nil {
		t.Fatal(err)
	}
	if dst.Name != "alpha" {
		t.Errorf("name: got %q", dst.Name)
	}
}

func TestDecode_OversizedBodyRejected(t *testing.T) {
	body := `"` + strings.Repeat("a", limits.MaxJSONBodySize+1) + `"`
	req := httptest.NewRequest("POST", "/", strings.NewReader(body))
	rec := httptest.NewRecorder()

	var dst string
	if err := Decode(rec, req, &dst); err == nil {
		t.Fatal("body over the cap decoded without error")
	}
}

func TestError_Shape(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, 418, "nope")
	if rec.Code != 418 {
		t.Errorf("status: got %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"error":"nope"}` {
		t.Errorf("body: got %s", got)
	}
}
