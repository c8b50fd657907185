package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// Load methods.
const (
	MethodInsert = "insert" // multi-row INSERT ... VALUES per batch
	MethodCopy   = "copy"   // COPY ... FROM STDIN per batch
)

// Writer bulk-loads generated rows. Callers must write repositories before
// the code files that reference them, and code files before their chunks.
type Writer interface {
	WriteRepositories(ctx context.Context, repos []Repository) error
	WriteCodeFiles(ctx context.Context, files []CodeFile) error
	WriteCodeChunks(ctx context.Context, chunks []CodeChunk) error
}

// NewWriter returns the Writer for the given load method.
func NewWriter(method string, pool Pool, batchSize int, progress ProgressReporter) (Writer, error) {
	loader, err := newBatchLoader(pool, batchSize, progress)
	if err != nil {
		return nil, err
	}

	switch method {
	case MethodInsert:
		return &InsertWriter{batchLoader: loader}, nil
	case MethodCopy:
		return &CopyWriter{batchLoader: loader}, nil
	default:
		return nil, fmt.Errorf("unknown load method %q (want %q or %q)", method, MethodInsert, MethodCopy)
	}
}

// batchFunc writes one batch inside an open transaction.
type batchFunc[T any] func(ctx context.Context, tx pgx.Tx, batch []T) error

// batchLoader splits rows into fixed-size batches and commits each batch in
// its own transaction. Batches run one at a time on the single pooled connection.
type batchLoader struct {
	pool      Pool
	batchSize int
	progress  ProgressReporter
}

func newBatchLoader(pool Pool, batchSize int, progress ProgressReporter) (batchLoader, error) {
	if batchSize <= 0 || batchSize > MaxBatchSize {
		return batchLoader{}, fmt.Errorf("batch size must be between 1 and %d, got %d", MaxBatchSize, batchSize)
	}
	if progress == nil {
		progress = &NoOpProgressReporter{}
	}
	return batchLoader{pool: pool, batchSize: batchSize, progress: progress}, nil
}

// loadTable writes rows in batches, stopping at the first failing batch.
// A failed batch is rolled back and reported as a *BatchError; no retry is attempted.
// Cancellation between batches is reported the same way, with the batch that
// was not started.
func loadTable[T any](ctx context.Context, l *batchLoader, table string, rows []T, write batchFunc[T]) error {
	totalRows := len(rows)
	if totalRows == 0 {
		return nil
	}

	numBatches := (totalRows + l.batchSize - 1) / l.batchSize
	start := time.Now()
	l.progress.OnTableStart(table, totalRows)

	inserted := 0
	for batchIdx := 0; batchIdx < numBatches; batchIdx++ {
		lo := batchIdx * l.batchSize
		hi := min(lo+l.batchSize, totalRows)
		batch := rows[lo:hi]

		if err := ctx.Err(); err != nil {
			return &BatchError{
				Table:        table,
				Batch:        batchIdx + 1,
				TotalBatches: numBatches,
				Rows:         len(batch),
				Committed:    inserted,
				Err:          err,
			}
		}

		err := pgx.BeginFunc(ctx, l.pool, func(tx pgx.Tx) error {
			return write(ctx, tx, batch)
		})
		if err != nil {
			return &BatchError{
				Table:        table,
				Batch:        batchIdx + 1,
				TotalBatches: numBatches,
				Rows:         len(batch),
				Committed:    inserted,
				Err:          err,
			}
		}

		inserted += len(batch)
		l.progress.OnBatchInserted(BatchProgress{
			Table:        table,
			BatchIndex:   batchIdx + 1,
			TotalBatches: numBatches,
			InsertedRows: inserted,
			TotalRows:    totalRows,
		})
	}

	l.progress.OnTableComplete(table, inserted, time.Since(start))
	return nil
}

// toRows converts a batch of typed records into positional row values.
func toRows[T any](batch []T, row func(T) []any) [][]any {
	rows := make([][]any, len(batch))
	for i, r := range batch {
		rows[i] = row(r)
	}
	return rows
}
