package seeder

import (
	"time"

	"github.com/mvp-joe/codebase-testdata/internal/storage"
)

// tableOrder is the order tables are announced and written in.
var tableOrder = []string{storage.TableRepositories, storage.TableCodeFiles, storage.TableCodeChunks}

// runProgress turns the per-slice events of a Writer into run-wide events:
// every table is announced with its planned total when the run starts, batch
// numbers and row counts accumulate across slices, and a table completes once
// all of its planned rows are committed.
type runProgress struct {
	next    storage.ProgressReporter
	plan    Plan
	started time.Time
	tables  map[string]*tableProgress
}

type tableProgress struct {
	batches  int
	inserted int
	callRows int // rows committed by the current Write call
}

// NewProgress wraps next so that it sees one start, a running batch count and
// one completion per table for the whole run described by plan.
func NewProgress(next storage.ProgressReporter, plan Plan) storage.ProgressReporter {
	if next == nil {
		next = &storage.NoOpProgressReporter{}
	}
	return &runProgress{
		next:   next,
		plan:   plan,
		tables: make(map[string]*tableProgress, len(tableOrder)),
	}
}

func (p *runProgress) OnTableStart(table string, totalRows int) {
	if p.started.IsZero() {
		p.started = time.Now()
		for _, t := range tableOrder {
			p.tables[t] = &tableProgress{}
			p.next.OnTableStart(t, p.plan.TotalRows(t))
		}
	}
	if tp, ok := p.tables[table]; ok {
		tp.callRows = 0
	}
}

func (p *runProgress) OnBatchInserted(progress storage.BatchProgress) {
	tp, ok := p.tables[progress.Table]
	if !ok {
		return
	}

	tp.inserted += progress.InsertedRows - tp.callRows
	tp.callRows = progress.InsertedRows
	tp.batches++

	p.next.OnBatchInserted(storage.BatchProgress{
		Table:        progress.Table,
		BatchIndex:   tp.batches,
		TotalBatches: p.plan.TotalBatches(progress.Table),
		InsertedRows: tp.inserted,
		TotalRows:    p.plan.TotalRows(progress.Table),
	})
}

func (p *runProgress) OnTableComplete(table string, rows int, duration time.Duration) {
	tp, ok := p.tables[table]
	if !ok || tp.inserted < p.plan.TotalRows(table) {
		return
	}
	p.next.OnTableComplete(table, tp.inserted, time.Since(p.started))
}
