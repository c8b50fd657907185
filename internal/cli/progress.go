package cli

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/mvp-joe/codebase-testdata/internal/storage"
	"github.com/schollz/progressbar/v3"
)

// CLIProgressReporter renders bulk-load progress as a single progress bar
// over the rows of every table, or as one log line per committed batch in
// verbose mode. Tables are written slice by slice, so their batches interleave.
type CLIProgressReporter struct {
	out       io.Writer
	logger    *slog.Logger
	verbose   bool
	bar       *progressbar.ProgressBar
	totalRows int
	inserted  map[string]int
}

// NewProgressReporter returns the reporter for the requested output mode.
// Quiet mode disables progress entirely.
func NewProgressReporter(out io.Writer, logger *slog.Logger, quiet, verbose bool) storage.ProgressReporter {
	if quiet {
		return &storage.NoOpProgressReporter{}
	}
	return &CLIProgressReporter{
		out:      out,
		logger:   logger,
		verbose:  verbose,
		inserted: make(map[string]int),
	}
}

func (c *CLIProgressReporter) OnTableStart(table string, totalRows int) {
	c.inserted[table] = 0
	c.totalRows += totalRows

	if c.verbose {
		c.logger.Info(fmt.Sprintf("Loading %s %s", formatNumber(totalRows), table))
		return
	}

	if c.bar != nil {
		c.bar.ChangeMax(c.totalRows)
		return
	}
	c.bar = progressbar.NewOptions(c.totalRows,
		progressbar.OptionSetWriter(c.out),
		progressbar.OptionSetDescription("Loading "+table),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("rows/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(c.out)
		}),
	)
}

func (c *CLIProgressReporter) OnBatchInserted(progress storage.BatchProgress) {
	delta := progress.InsertedRows - c.inserted[progress.Table]
	c.inserted[progress.Table] = progress.InsertedRows

	if c.verbose {
		c.logger.Info(fmt.Sprintf("Inserted %d/%d %s", progress.InsertedRows, progress.TotalRows, progress.Table),
			"batch", fmt.Sprintf("%d/%d", progress.BatchIndex, progress.TotalBatches))
		return
	}
	if c.bar != nil && delta > 0 {
		c.bar.Describe("Loading " + progress.Table)
		c.bar.Add(delta)
	}
}

func (c *CLIProgressReporter) OnTableComplete(table string, rows int, duration time.Duration) {
	// Clear the bar line so the completion line starts on its own row
	if c.bar != nil && !c.bar.IsFinished() {
		c.bar.Clear()
	}
	fmt.Fprintf(c.out, "✓ %s: %s rows (took %.1fs)\n", table, formatNumber(rows), duration.Seconds())
}
