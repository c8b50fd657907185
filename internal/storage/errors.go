package storage

import (
	"errors"
	"fmt"
)

// ErrConnect indicates the database could not be reached or the connection
// string could not be parsed.
var ErrConnect = errors.New("failed to connect to database")

// BatchError reports which table and batch failed during a bulk load.
// The batch's transaction has been rolled back; earlier batches stay committed.
type BatchError struct {
	Table        string // target table, e.g. code_chunks
	Batch        int    // 1-indexed batch number
	TotalBatches int
	Rows         int // rows in the failed batch
	Committed    int // rows of this table committed by earlier batches
	Err          error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("failed to insert %s batch %d/%d (%d rows): %v",
		e.Table, e.Batch, e.TotalBatches, e.Rows, e.Err)
}

func (e *BatchError) Unwrap() error {
	return e.Err
}
