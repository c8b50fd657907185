package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/mvp-joe/codebase-testdata/internal/seeder"
	"github.com/stretchr/testify/assert"
)

func TestPrintSummary(t *testing.T) {
	t.Parallel()

	stats := &seeder.Stats{Repositories: 10, CodeFiles: 10, CodeChunks: 50, Duration: 1200 * time.Millisecond}

	var loaded bytes.Buffer
	printSummary(&loaded, stats, false)
	assert.Equal(t, "✓ Test data loaded in 1.2s\n"+
		"  Repositories: 10\n"+
		"  Code files:   10\n"+
		"  Code chunks:  50\n", loaded.String())

	var generated bytes.Buffer
	printSummary(&generated, stats, true)
	assert.Contains(t, generated.String(), "✓ Test data generated in 1.2s")
}
