// Package httpjson has the JSON response helpers shared by the feature
// handlers. The API speaks the original service's shapes: plain objects
// on success, {"error": "..."} on failure.
package httpjson

import (
	"encoding/json"
	"net/http"

	"github.com/omstools/importassist/internal/app/system/limits"
)

// Write encodes v as the JSON response body with the given status.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes the {"error": msg} failure shape.
func Error(w http.ResponseWriter, status int, msg string) {
	Write(w, status, map[string]string{"error": msg})
}

// Decode reads the request body as JSON into dst, capped at
// limits.MaxJSONBodySize. Callers respond 400 on error.
func Decode(w http.ResponseWriter, r *http.Request, dst any) error {
	defer r.Body.Close()
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxJSONBodySize)
	return json.NewDecoder(r.Body).Decode(dst)
}
