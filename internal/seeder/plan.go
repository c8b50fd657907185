package seeder

import (
	"github.com/mvp-joe/codebase-testdata/internal/generator"
	"github.com/mvp-joe/codebase-testdata/internal/storage"
)

// Plan splits a run into repository slices. Only one slice of generated rows
// is held in memory at a time; each slice is written repositories first, then
// code files, then code chunks.
type Plan struct {
	Repositories int
	CodeFiles    int
	CodeChunks   int
	SliceSize    int // repositories per slice

	filesPerRepo  int
	chunksPerRepo int
	batchSize     int
}

// NewPlan sizes slices so that one slice holds about batchSize code chunks,
// never less than one repository.
func NewPlan(opts generator.Options, batchSize int) Plan {
	batchSize = max(batchSize, 1)
	chunksPerRepo := opts.FilesPerRepo * opts.ChunksPerFile

	sliceSize := max(batchSize/max(chunksPerRepo, 1), 1)
	sliceSize = min(sliceSize, max(opts.Repositories, 1))

	return Plan{
		Repositories:  opts.Repositories,
		CodeFiles:     opts.Repositories * opts.FilesPerRepo,
		CodeChunks:    opts.Repositories * chunksPerRepo,
		SliceSize:     sliceSize,
		filesPerRepo:  opts.FilesPerRepo,
		chunksPerRepo: chunksPerRepo,
		batchSize:     batchSize,
	}
}

// Slices returns the number of slices in the run.
func (p Plan) Slices() int {
	if p.SliceSize <= 0 {
		return 0
	}
	return (p.Repositories + p.SliceSize - 1) / p.SliceSize
}

// TotalRows returns the rows the run writes to table.
func (p Plan) TotalRows(table string) int {
	return p.Repositories * p.rowsPerRepo(table)
}

// TotalBatches returns the batches the run commits to table across all slices.
func (p Plan) TotalBatches(table string) int {
	if p.SliceSize <= 0 {
		return 0
	}
	perRepo := p.rowsPerRepo(table)
	batches := func(repos int) int {
		return (repos*perRepo + p.batchSize - 1) / p.batchSize
	}

	total := (p.Repositories / p.SliceSize) * batches(p.SliceSize)
	if rest := p.Repositories % p.SliceSize; rest > 0 {
		total += batches(rest)
	}
	return total
}

func (p Plan) rowsPerRepo(table string) int {
	switch table {
	case storage.TableRepositories:
		return 1
	case storage.TableCodeFiles:
		return p.filesPerRepo
	case storage.TableCodeChunks:
		return p.chunksPerRepo
	default:
		return 0
	}
}
