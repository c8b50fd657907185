package storage

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

// InsertWriter loads each batch with a single multi-row INSERT statement.
type InsertWriter struct {
	batchLoader
}

// NewInsertWriter creates an InsertWriter. A nil progress reporter disables progress events.
func NewInsertWriter(pool Pool, batchSize int, progress ProgressReporter) (*InsertWriter, error) {
	loader, err := newBatchLoader(pool, batchSize, progress)
	if err != nil {
		return nil, err
	}
	return &InsertWriter{batchLoader: loader}, nil
}

func (w *InsertWriter) WriteRepositories(ctx context.Context, repos []Repository) error {
	return loadTable(ctx, &w.batchLoader, TableRepositories, repos,
		insertBatch(TableRepositories, repositoryColumns, repositoryRow))
}

func (w *InsertWriter) WriteCodeFiles(ctx context.Context, files []CodeFile) error {
	return loadTable(ctx, &w.batchLoader, TableCodeFiles, files,
		insertBatch(TableCodeFiles, codeFileColumns, codeFileRow))
}

func (w *InsertWriter) WriteCodeChunks(ctx context.Context, chunks []CodeChunk) error {
	return loadTable(ctx, &w.batchLoader, TableCodeChunks, chunks,
		insertBatch(TableCodeChunks, codeChunkColumns, codeChunkRow))
}

func insertBatch[T any](table string, columns []string, row func(T) []any) batchFunc[T] {
	return func(ctx context.Context, tx pgx.Tx, batch []T) error {
		query, args, err := buildMultiRowInsert(table, columns, toRows(batch, row))
		if err != nil {
			return err
		}

		tag, err := tx.Exec(ctx, query, args...)
		if err != nil {
			return err
		}
		if tag.RowsAffected() != int64(len(batch)) {
			return fmt.Errorf("expected %d rows inserted, got %d", len(batch), tag.RowsAffected())
		}
		return nil
	}
}

// buildMultiRowInsert builds one INSERT with a VALUES tuple per row and
// $n placeholders numbered row by row:
//
//	INSERT INTO repositories (id,path,...) VALUES ($1,$2,...),($7,$8,...)
func buildMultiRowInsert(table string, columns []string, rows [][]any) (string, []any, error) {
	if len(rows) == 0 {
		return "", nil, fmt.Errorf("no rows to insert into %s", table)
	}

	builder := sq.Insert(table).
		Columns(columns...).
		PlaceholderFormat(sq.Dollar)

	for _, r := range rows {
		if len(r) != len(columns) {
			return "", nil, fmt.Errorf("row for %s has %d values, want %d", table, len(r), len(columns))
		}
		builder = builder.Values(r...)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("failed to build insert for %s: %w", table, err)
	}
	return query, args, nil
}
