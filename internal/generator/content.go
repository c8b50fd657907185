package generator

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/mvp-joe/codebase-testdata/internal/storage"
)

// snippet is one chunk-sized piece of a synthesized file.
type snippet struct {
	Text      string
	ChunkType string
	StartLine int // 1-indexed, inclusive
	EndLine   int // inclusive
}

// RelativePath returns the repository-relative path of file j in repository i.
func RelativePath(repoIdx, fileIdx int) string {
	return fmt.Sprintf("module_%d_%d.py", repoIdx, fileIdx)
}

// ContentHash returns the SHA-256 hex digest of content.
func ContentHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

// synthesizeFile builds the content of file j in repository i holding chunkCount
// snippets, and returns the snippets with their line ranges inside that content.
// Output depends only on the indices, so identical indices always hash identically.
//
// Layout: a module docstring, a blank line, then each snippet followed by a blank line.
func synthesizeFile(repoIdx, fileIdx, chunkCount int) (string, []snippet) {
	var b strings.Builder
	fmt.Fprintf(&b, "\"\"\"Synthetic module module_%d_%d generated for migration testing.\"\"\"\n\n", repoIdx, fileIdx)
	line := 3

	snippets := make([]snippet, 0, chunkCount)
	for k := 0; k < chunkCount; k++ {
		chunkType := chunkTypeFor(k)

		var text string
		if chunkType == storage.ChunkTypeFunction {
			text = functionSnippet(repoIdx, fileIdx, k)
		} else {
			text = classSnippet(repoIdx, fileIdx, k)
		}

		lines := strings.Count(text, "\n") + 1
		snippets = append(snippets, snippet{
			Text:      text,
			ChunkType: chunkType,
			StartLine: line,
			EndLine:   line + lines - 1,
		})

		b.WriteString(text)
		b.WriteString("\n\n")
		line += lines + 1
	}

	return b.String(), snippets
}

// chunkTypeFor alternates function and class, starting with function.
func chunkTypeFor(k int) string {
	if k%2 == 0 {
		return storage.ChunkTypeFunction
	}
	return storage.ChunkTypeClass
}

func functionSnippet(repoIdx, fileIdx, k int) string {
	return fmt.Sprintf(`def function_%d_%d_%d(value):
    """Return value scaled by %d."""
    result = value * %d
    return result`, repoIdx, fileIdx, k, k+1, k+1)
}

func classSnippet(repoIdx, fileIdx, k int) string {
	name := fmt.Sprintf("Class_%d_%d_%d", repoIdx, fileIdx, k)
	return fmt.Sprintf(`class %s:
    """Placeholder class %d of module_%d_%d."""

    def __init__(self):
        self.value = %d

    def describe(self):
        return f"%s(value={self.value})"`, name, k, repoIdx, fileIdx, k, name)
}
