package cli

import (
	"fmt"
	"io"

	"github.com/mvp-joe/codebase-testdata/internal/seeder"
)

// printSummary writes the end-of-run totals.
func printSummary(w io.Writer, stats *seeder.Stats, dryRun bool) {
	verb := "loaded"
	if dryRun {
		verb = "generated"
	}

	fmt.Fprintf(w, "✓ Test data %s in %.1fs\n", verb, stats.Duration.Seconds())
	fmt.Fprintf(w, "  Repositories: %s\n", formatNumber(stats.Repositories))
	fmt.Fprintf(w, "  Code files:   %s\n", formatNumber(stats.CodeFiles))
	fmt.Fprintf(w, "  Code chunks:  %s\n", formatNumber(stats.CodeChunks))
}

// formatNumber adds thousands separators: 1234567 -> "1,234,567".
func formatNumber(n int) string {
	if n < 1000 && n > -1000 {
		return fmt.Sprintf("%d", n)
	}

	str := fmt.Sprintf("%d", n)
	sign := ""
	if str[0] == '-' {
		sign, str = "-", str[1:]
	}

	var result string
	for i, c := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			result += ","
		}
		result += string(c)
	}
	return sign + result
}
