// Package limits holds request body size caps. They exist to stop a
// single oversized request from exhausting memory; the CSV row cap lives
// with the parser in csvio.
package limits

const (
	// MaxJSONBodySize caps process and wizard JSON bodies. Whole-dataset
	// payloads are part of the contract, so this is generous.
	MaxJSONBodySize = 32 << 20 // 32 MB

	// MaxMultipartMemory is the in-memory portion of upload parsing;
	// the rest spills to temp files.
	MaxMultipartMemory = 8 << 20 // 8 MB
)
