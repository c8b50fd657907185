package storage

import "time"

// BatchProgress reports bulk-load progress after each committed batch.
type BatchProgress struct {
	Table        string // target table
	BatchIndex   int    // current batch number (1-indexed)
	TotalBatches int    // total number of batches for the table
	InsertedRows int    // rows committed so far for the table
	TotalRows    int    // total rows to insert for the table
}

// ProgressReporter receives bulk-load progress events.
type ProgressReporter interface {
	// OnTableStart is called before the first batch of a table is written.
	OnTableStart(table string, totalRows int)

	// OnBatchInserted is called after each batch commits.
	OnBatchInserted(progress BatchProgress)

	// OnTableComplete is called after the last batch of a table commits.
	OnTableComplete(table string, rows int, duration time.Duration)
}

// NoOpProgressReporter is a progress reporter that does nothing.
// Used when progress reporting is disabled (e.g., --quiet flag).
type NoOpProgressReporter struct{}

func (n *NoOpProgressReporter) OnTableStart(table string, totalRows int)                {}
func (n *NoOpProgressReporter) OnBatchInserted(progress BatchProgress)                  {}
func (n *NoOpProgressReporter) OnTableComplete(table string, rows int, d time.Duration) {}
