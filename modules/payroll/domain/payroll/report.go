package payroll

import "time"

// ImportReport is the response body of a successful import. InsertedCounts
// always carries every count key, zero-filled when nothing was written.
type ImportReport struct {
	Success        bool             `json:"success"`
	InsertedCounts map[string]int64 `json:"insertedCounts"`
	SkippedPeriods []string         `json:"skippedPeriods,omitempty"`
	DurationMs     int64            `json:"durationMs"`
}

type DeleteReport struct {
	Success       bool             `json:"success"`
	DeletedCounts map[string]int64 `json:"deletedCounts"`
	DurationMs    int64            `json:"durationMs"`
}

func NewImportReport(counts map[string]int64, skipped []string, elapsed time.Duration) *ImportReport {
	return &ImportReport{
		Success:        true,
		InsertedCounts: fillCounts(counts),
		SkippedPeriods: skipped,
		DurationMs:     elapsed.Milliseconds(),
	}
}

func NewDeleteReport(counts map[string]int64, elapsed time.Duration) *DeleteReport {
	return &DeleteReport{
		Success:       true,
		DeletedCounts: fillCounts(counts),
		DurationMs:    elapsed.Milliseconds(),
	}
}

func fillCounts(counts map[string]int64) map[string]int64 {
	full := make(map[string]int64, len(CountKeys()))
	for _, k := range CountKeys() {
		full[k] = counts[k]
	}
	return full
}
