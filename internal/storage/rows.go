package storage

import (
	"strings"

	"github.com/pgvector/pgvector-go"
)

// Column lists in insertion order. The row functions below must stay in sync.
var (
	repositoryColumns = []string{
		"id", "path", "name", "last_indexed_at", "is_active", "created_at",
	}
	codeFileColumns = []string{
		"id", "repository_id", "path", "relative_path", "content_hash", "size_bytes",
		"language", "modified_at", "indexed_at", "is_deleted", "deleted_at", "created_at",
	}
	codeChunkColumns = []string{
		"id", "code_file_id", "content", "start_line", "end_line", "chunk_type", "embedding", "created_at",
	}
)

// maxBindParameters is PostgreSQL's limit on bind parameters per statement.
const maxBindParameters = 65535

// MaxBatchSize is the largest batch that keeps the widest table (code_files)
// under maxBindParameters in a single multi-row INSERT.
const MaxBatchSize = 5000

// DefaultBatchSize is the number of rows per bulk statement.
const DefaultBatchSize = 500

func repositoryRow(r Repository) []any {
	return []any{
		r.ID,
		r.Path,
		r.Name,
		r.LastIndexedAt,
		r.IsActive,
		r.CreatedAt,
	}
}

func codeFileRow(f CodeFile) []any {
	return []any{
		f.ID,
		f.RepositoryID,
		f.Path,
		f.RelativePath,
		f.ContentHash,
		f.SizeBytes,
		f.Language,
		f.ModifiedAt,
		f.IndexedAt,
		f.IsDeleted,
		f.DeletedAt,
		f.CreatedAt,
	}
}

func codeChunkRow(c CodeChunk) []any {
	return []any{
		c.ID,
		c.CodeFileID,
		sanitizeContent(c.Content),
		c.StartLine,
		c.EndLine,
		c.ChunkType,
		pgvector.NewVector(c.Embedding),
		c.CreatedAt,
	}
}

// sanitizeContent strips NUL bytes, which PostgreSQL text columns reject.
func sanitizeContent(s string) string {
	if !strings.Contains(s, "\x00") {
		return s
	}
	return strings.ReplaceAll(s, "\x00", "")
}
