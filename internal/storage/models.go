package storage

import (
	"time"

	"github.com/google/uuid"
)

// Domain models that mirror the tables created by migration 001 of the
// Codebase MCP Server. These are lightweight data transfer structs, NOT ORM models.
// Column order in each table's column list matches the field order below.

// Table names.
const (
	TableRepositories = "repositories"
	TableCodeFiles    = "code_files"
	TableCodeChunks   = "code_chunks"
)

// Repository is a logical source-code project.
// Maps to the repositories table.
type Repository struct {
	ID            uuid.UUID  // id: primary key
	Path          string     // path: unique filesystem-like path
	Name          string     // name: human readable name
	LastIndexedAt *time.Time // last_indexed_at: nullable
	IsActive      bool       // is_active
	CreatedAt     time.Time  // created_at
}

// CodeFile is one file belonging to a Repository.
// Maps to the code_files table.
type CodeFile struct {
	ID           uuid.UUID  // id: primary key
	RepositoryID uuid.UUID  // repository_id: FK to repositories
	Path         string     // path: absolute path (repository path + relative path)
	RelativePath string     // relative_path: path inside the repository
	ContentHash  string     // content_hash: SHA-256 hex of the file content
	SizeBytes    int64      // size_bytes: len(content)
	Language     string     // language: e.g. "python"
	ModifiedAt   time.Time  // modified_at
	IndexedAt    time.Time  // indexed_at
	IsDeleted    bool       // is_deleted: always false for generated rows
	DeletedAt    *time.Time // deleted_at: nullable
	CreatedAt    time.Time  // created_at
}

// CodeChunk is a contiguous line range of a CodeFile.
// Maps to the code_chunks table.
type CodeChunk struct {
	ID         uuid.UUID // id: primary key
	CodeFileID uuid.UUID // code_file_id: FK to code_files
	Content    string    // content: snippet text
	StartLine  int       // start_line: 1-indexed, inclusive
	EndLine    int       // end_line: inclusive, >= start_line
	ChunkType  string    // chunk_type: function or class
	Embedding  []float32 // embedding: vector(N)
	CreatedAt  time.Time // created_at
}

// Chunk types produced by the generator.
const (
	ChunkTypeFunction = "function"
	ChunkTypeClass    = "class"
)
