// Package timeouts centralizes the context deadlines used around Mongo
// calls in HTTP handlers.
//
// Guidelines:
//   - Ping: health checks
//   - Short: single-document reads and writes
//   - Medium: list reads, review snapshot writes
//   - Batch: CSV upload ingestion
package timeouts

import "time"

const (
	// Ping bounds connectivity checks.
	Ping = 2 * time.Second
	// Short bounds single-document operations.
	Short = 5 * time.Second
	// Medium bounds dataset reads and review snapshot writes.
	Medium = 10 * time.Second
	// Batch bounds upload ingestion of a whole CSV.
	Batch = 60 * time.Second
)
