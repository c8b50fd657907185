package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// CopyWriter loads each batch with COPY ... FROM STDIN inside its own transaction.
type CopyWriter struct {
	batchLoader
}

// NewCopyWriter creates a CopyWriter. A nil progress reporter disables progress events.
func NewCopyWriter(pool Pool, batchSize int, progress ProgressReporter) (*CopyWriter, error) {
	loader, err := newBatchLoader(pool, batchSize, progress)
	if err != nil {
		return nil, err
	}
	return &CopyWriter{batchLoader: loader}, nil
}

func (w *CopyWriter) WriteRepositories(ctx context.Context, repos []Repository) error {
	return loadTable(ctx, &w.batchLoader, TableRepositories, repos,
		copyBatch(TableRepositories, repositoryColumns, repositoryRow))
}

func (w *CopyWriter) WriteCodeFiles(ctx context.Context, files []CodeFile) error {
	return loadTable(ctx, &w.batchLoader, TableCodeFiles, files,
		copyBatch(TableCodeFiles, codeFileColumns, codeFileRow))
}

func (w *CopyWriter) WriteCodeChunks(ctx context.Context, chunks []CodeChunk) error {
	return loadTable(ctx, &w.batchLoader, TableCodeChunks, chunks,
		copyBatch(TableCodeChunks, codeChunkColumns, codeChunkRow))
}

func copyBatch[T any](table string, columns []string, row func(T) []any) batchFunc[T] {
	return func(ctx context.Context, tx pgx.Tx, batch []T) error {
		source := pgx.CopyFromSlice(len(batch), func(i int) ([]any, error) {
			return row(batch[i]), nil
		})

		n, err := tx.CopyFrom(ctx, pgx.Identifier{table}, columns, source)
		if err != nil {
			return err
		}
		if n != int64(len(batch)) {
			return fmt.Errorf("expected %d rows copied, got %d", len(batch), n)
		}
		return nil
	}
}
