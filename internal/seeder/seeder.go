// Package seeder generates and writes a dataset slice by slice through a
// storage.Writer in foreign-key order: repositories, then code files, then
// code chunks.
package seeder

import (
	"context"
	"errors"
	"time"

	"github.com/mvp-joe/codebase-testdata/internal/generator"
	"github.com/mvp-joe/codebase-testdata/internal/storage"
)

// Stats summarizes a run. Counts are rows committed before Run returned,
// so on failure they show how far the load got.
type Stats struct {
	Repositories int
	CodeFiles    int
	CodeChunks   int
	Duration     time.Duration
}

// Run generates each slice of plan with gen and writes it with w, stopping at
// the first error. Rows committed by earlier batches are left in place.
func Run(ctx context.Context, w storage.Writer, gen *generator.Generator, plan Plan) (*Stats, error) {
	start := time.Now()
	stats := &Stats{}

	defer func() {
		stats.Duration = time.Since(start)
	}()

	for lo := 0; lo < plan.Repositories; lo += plan.SliceSize {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		ds := gen.GenerateRange(lo, lo+plan.SliceSize)
		if err := writeSlice(ctx, w, ds, stats); err != nil {
			return stats, err
		}
	}

	return stats, nil
}

// writeSlice writes one slice and adds its committed rows to stats.
func writeSlice(ctx context.Context, w storage.Writer, ds *generator.Dataset, stats *Stats) error {
	if err := w.WriteRepositories(ctx, ds.Repositories); err != nil {
		stats.Repositories += committedRows(err)
		return err
	}
	stats.Repositories += len(ds.Repositories)

	if err := w.WriteCodeFiles(ctx, ds.CodeFiles); err != nil {
		stats.CodeFiles += committedRows(err)
		return err
	}
	stats.CodeFiles += len(ds.CodeFiles)

	if err := w.WriteCodeChunks(ctx, ds.CodeChunks); err != nil {
		stats.CodeChunks += committedRows(err)
		return err
	}
	stats.CodeChunks += len(ds.CodeChunks)

	return nil
}

// committedRows extracts the rows committed before a batch failure.
func committedRows(err error) int {
	var batchErr *storage.BatchError
	if errors.As(err, &batchErr) {
		return batchErr.Committed
	}
	return 0
}

// DryRun generates every slice of plan without writing anything and reports
// what Run would have written.
func DryRun(ctx context.Context, gen *generator.Generator, plan Plan) (*Stats, error) {
	start := time.Now()
	stats := &Stats{}

	for lo := 0; lo < plan.Repositories; lo += plan.SliceSize {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		ds := gen.GenerateRange(lo, lo+plan.SliceSize)
		stats.Repositories += len(ds.Repositories)
		stats.CodeFiles += len(ds.CodeFiles)
		stats.CodeChunks += len(ds.CodeChunks)
	}

	stats.Duration = time.Since(start)
	return stats, nil
}
