package generator

// Test Plan for Generator:
// - New rejects non-positive repositories, files per repo and chunks per file
// - New applies default path prefix, language and embedding dimensions
// - Generate produces exactly N repositories with distinct paths
// - Generate produces FilesPerRepo files per repository, all referencing generated repositories
// - Generate produces ChunksPerFile chunks per file, all referencing generated files
// - Chunks within a file are ordered, non-overlapping, and start_line <= end_line
// - Chunk types alternate function/class
// - Embeddings have the configured dimensionality
// - last_indexed_at is set for even repositories and NULL for odd ones
// - Content hashes are deterministic across runs and distinct across files
// - size_bytes matches the synthesized content length
// - Injected clock and ID function are used
// - End-to-end shape: 10 repositories x 1 file x 5 chunks = 10/10/50
// - GenerateRange slices add up to Generate, clamp to bounds and share a timestamp

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mvp-joe/codebase-testdata/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGenerator(t *testing.T, opts Options, options ...Option) *Generator {
	t.Helper()
	g, err := New(opts, options...)
	require.NoError(t, err)
	return g
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts Options
	}{
		{"zero repositories", Options{Repositories: 0, FilesPerRepo: 1, ChunksPerFile: 1}},
		{"negative repositories", Options{Repositories: -1, FilesPerRepo: 1, ChunksPerFile: 1}},
		{"zero files", Options{Repositories: 1, FilesPerRepo: 0, ChunksPerFile: 1}},
		{"zero chunks", Options{Repositories: 1, FilesPerRepo: 1, ChunksPerFile: 0}},
		{"negative dimensions", Options{Repositories: 1, FilesPerRepo: 1, ChunksPerFile: 1, EmbeddingDimensions: -3}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run("rejects "+tt.name, func(t *testing.T) {
			t.Parallel()
			g, err := New(tt.opts)
			assert.ErrorIs(t, err, ErrInvalidOptions)
			assert.Nil(t, g)
		})
	}

	t.Run("applies defaults", func(t *testing.T) {
		t.Parallel()
		g := newTestGenerator(t, Options{Repositories: 1, FilesPerRepo: 1, ChunksPerFile: 1})

		opts := g.Options()
		assert.Equal(t, DefaultPathPrefix, opts.PathPrefix)
		assert.Equal(t, DefaultLanguage, opts.Language)
		assert.Equal(t, DefaultEmbeddingDimensions, opts.EmbeddingDimensions)
	})
}

func TestGenerate_Shape(t *testing.T) {
	t.Parallel()

	g := newTestGenerator(t, Options{
		Repositories:        10,
		FilesPerRepo:        1,
		ChunksPerFile:       5,
		EmbeddingDimensions: 16,
	})

	ds := g.Generate()

	assert.Len(t, ds.Repositories, 10)
	assert.Len(t, ds.CodeFiles, 10)
	assert.Len(t, ds.CodeChunks, 50)
}

func TestGenerate_ReferentialIntegrity(t *testing.T) {
	t.Parallel()

	g := newTestGenerator(t, Options{
		Repositories:        7,
		FilesPerRepo:        3,
		ChunksPerFile:       4,
		EmbeddingDimensions: 8,
	})
	ds := g.Generate()

	t.Run("repository paths are distinct", func(t *testing.T) {
		paths := make(map[string]bool)
		for _, r := range ds.Repositories {
			assert.False(t, paths[r.Path], "duplicate path %s", r.Path)
			paths[r.Path] = true
			assert.True(t, r.IsActive)
		}
		assert.Len(t, paths, 7)
	})

	t.Run("files reference earlier repositories", func(t *testing.T) {
		seen := make(map[uuid.UUID]int)
		for _, r := range ds.Repositories {
			seen[r.ID] = 0
		}
		for _, f := range ds.CodeFiles {
			count, ok := seen[f.RepositoryID]
			require.True(t, ok, "file %s references unknown repository", f.Path)
			seen[f.RepositoryID] = count + 1
		}
		for id, count := range seen {
			assert.Equal(t, 3, count, "repository %s", id)
		}
	})

	t.Run("chunks reference earlier files", func(t *testing.T) {
		perFile := make(map[uuid.UUID][]storage.CodeChunk)
		for _, f := range ds.CodeFiles {
			perFile[f.ID] = nil
		}
		for _, c := range ds.CodeChunks {
			_, ok := perFile[c.CodeFileID]
			require.True(t, ok, "chunk references unknown file")
			perFile[c.CodeFileID] = append(perFile[c.CodeFileID], c)
		}
		for _, chunks := range perFile {
			assert.Len(t, chunks, 4)
		}
	})
}

func TestGenerate_ChunkLineRanges(t *testing.T) {
	t.Parallel()

	g := newTestGenerator(t, Options{
		Repositories:        2,
		FilesPerRepo:        2,
		ChunksPerFile:       6,
		EmbeddingDimensions: 4,
	})
	ds := g.Generate()

	perFile := make(map[uuid.UUID][]storage.CodeChunk)
	for _, c := range ds.CodeChunks {
		perFile[c.CodeFileID] = append(perFile[c.CodeFileID], c)
	}

	for _, chunks := range perFile {
		prevEnd := 0
		for k, c := range chunks {
			assert.LessOrEqual(t, c.StartLine, c.EndLine)
			assert.Greater(t, c.StartLine, prevEnd, "chunk %d overlaps previous chunk", k)
			prevEnd = c.EndLine

			if k%2 == 0 {
				assert.Equal(t, storage.ChunkTypeFunction, c.ChunkType)
			} else {
				assert.Equal(t, storage.ChunkTypeClass, c.ChunkType)
			}
			assert.Len(t, c.Embedding, 4)
		}
	}
}

func TestGenerate_LineRangesMatchFileContent(t *testing.T) {
	t.Parallel()

	content, snippets := synthesizeFile(3, 1, 4)
	lines := strings.Split(content, "\n")

	for _, s := range snippets {
		got := strings.Join(lines[s.StartLine-1:s.EndLine], "\n")
		assert.Equal(t, s.Text, got)
	}
}

func TestGenerate_LastIndexedAtAlternates(t *testing.T) {
	t.Parallel()

	g := newTestGenerator(t, Options{Repositories: 4, FilesPerRepo: 1, ChunksPerFile: 1, EmbeddingDimensions: 2})
	ds := g.Generate()

	assert.NotNil(t, ds.Repositories[0].LastIndexedAt)
	assert.Nil(t, ds.Repositories[1].LastIndexedAt)
	assert.NotNil(t, ds.Repositories[2].LastIndexedAt)
	assert.Nil(t, ds.Repositories[3].LastIndexedAt)
}

func TestGenerate_ContentHashes(t *testing.T) {
	t.Parallel()

	opts := Options{Repositories: 3, FilesPerRepo: 2, ChunksPerFile: 3, EmbeddingDimensions: 2}

	first := newTestGenerator(t, opts).Generate()
	second := newTestGenerator(t, opts).Generate()

	t.Run("deterministic across runs", func(t *testing.T) {
		require.Len(t, second.CodeFiles, len(first.CodeFiles))
		for i := range first.CodeFiles {
			assert.Equal(t, first.CodeFiles[i].ContentHash, second.CodeFiles[i].ContentHash)
			assert.Equal(t, first.CodeFiles[i].SizeBytes, second.CodeFiles[i].SizeBytes)
			// IDs are random per run
			assert.NotEqual(t, first.CodeFiles[i].ID, second.CodeFiles[i].ID)
		}
	})

	t.Run("distinct across files", func(t *testing.T) {
		hashes := make(map[string]bool)
		for _, f := range first.CodeFiles {
			assert.Len(t, f.ContentHash, 64)
			assert.False(t, hashes[f.ContentHash], "duplicate hash for %s", f.RelativePath)
			hashes[f.ContentHash] = true
		}
	})

	t.Run("size matches content", func(t *testing.T) {
		content, _ := synthesizeFile(0, 0, 3)
		assert.Equal(t, int64(len(content)), first.CodeFiles[0].SizeBytes)
		assert.Equal(t, ContentHash(content), first.CodeFiles[0].ContentHash)
	})
}

func TestGenerate_InjectedClockAndIDs(t *testing.T) {
	t.Parallel()

	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	next := 0
	idFunc := func() uuid.UUID {
		next++
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("id-%d", next)))
	}

	g := newTestGenerator(t,
		Options{Repositories: 1, FilesPerRepo: 1, ChunksPerFile: 2, EmbeddingDimensions: 2, PathPrefix: "/data/repos"},
		WithClock(func() time.Time { return fixed }),
		WithIDFunc(idFunc),
	)
	ds := g.Generate()

	repo := ds.Repositories[0]
	file := ds.CodeFiles[0]

	assert.Equal(t, fixed, repo.CreatedAt)
	require.NotNil(t, repo.LastIndexedAt)
	assert.Equal(t, fixed, *repo.LastIndexedAt)
	assert.Equal(t, "/data/repos/repo_000000", repo.Path)
	assert.Equal(t, "test-repo-0", repo.Name)

	assert.Equal(t, "module_0_0.py", file.RelativePath)
	assert.Equal(t, "/data/repos/repo_000000/module_0_0.py", file.Path)
	assert.Equal(t, "python", file.Language)
	assert.Equal(t, fixed, file.ModifiedAt)
	assert.Equal(t, fixed, file.IndexedAt)
	assert.False(t, file.IsDeleted)
	assert.Nil(t, file.DeletedAt)

	assert.Equal(t, 4, next, "one id per repository, file and chunk")
	for _, c := range ds.CodeChunks {
		assert.Equal(t, fixed, c.CreatedAt)
	}
}

func TestGenerateRange(t *testing.T) {
	t.Parallel()

	opts := Options{Repositories: 5, FilesPerRepo: 2, ChunksPerFile: 3, EmbeddingDimensions: 4}

	t.Run("consecutive ranges match a full generate", func(t *testing.T) {
		t.Parallel()

		full := newTestGenerator(t, opts).Generate()

		g := newTestGenerator(t, opts)
		var parts []*Dataset
		for lo := 0; lo < opts.Repositories; lo += 2 {
			parts = append(parts, g.GenerateRange(lo, lo+2))
		}
		require.Len(t, parts, 3)
		assert.Len(t, parts[2].Repositories, 1, "last range is clamped")

		var paths, hashes []string
		chunkCount := 0
		for _, part := range parts {
			for _, r := range part.Repositories {
				paths = append(paths, r.Path)
			}
			for _, f := range part.CodeFiles {
				hashes = append(hashes, f.ContentHash)
			}
			chunkCount += len(part.CodeChunks)
		}

		var wantPaths, wantHashes []string
		for _, r := range full.Repositories {
			wantPaths = append(wantPaths, r.Path)
		}
		for _, f := range full.CodeFiles {
			wantHashes = append(wantHashes, f.ContentHash)
		}
		assert.Equal(t, wantPaths, paths)
		assert.Equal(t, wantHashes, hashes)
		assert.Equal(t, len(full.CodeChunks), chunkCount)
	})

	t.Run("ranges share one timestamp", func(t *testing.T) {
		t.Parallel()

		calls := 0
		clock := func() time.Time {
			calls++
			return time.Date(2024, 3, 1, 12, 0, calls, 0, time.UTC)
		}
		g := newTestGenerator(t, opts, WithClock(clock))

		first := g.GenerateRange(0, 1)
		second := g.GenerateRange(1, 2)
		assert.Equal(t, first.Repositories[0].CreatedAt, second.Repositories[0].CreatedAt)
		assert.Equal(t, 1, calls)
	})

	t.Run("empty and out of bounds ranges", func(t *testing.T) {
		t.Parallel()

		g := newTestGenerator(t, opts)
		assert.Empty(t, g.GenerateRange(3, 3).Repositories)
		assert.Empty(t, g.GenerateRange(5, 9).CodeFiles)
		assert.Len(t, g.GenerateRange(-2, 1).Repositories, 1)
	})
}
