package storage

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// TestDatabaseURLEnv names the environment variable holding the connection
// string of a disposable PostgreSQL database (with pgvector) for integration tests.
const TestDatabaseURLEnv = "TEST_DATABASE_URL"

// TestEmbeddingDimensions is the vector size used by the test schema.
const TestEmbeddingDimensions = 8

// testSchema mirrors the subset of migration 001 that this tool populates.
var testSchema = []string{
	`CREATE EXTENSION IF NOT EXISTS vector`,
	`CREATE TABLE IF NOT EXISTS repositories (
		id UUID PRIMARY KEY,
		path TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		last_indexed_at TIMESTAMPTZ,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS code_files (
		id UUID PRIMARY KEY,
		repository_id UUID NOT NULL REFERENCES repositories(id) ON DELETE CASCADE,
		path TEXT NOT NULL,
		relative_path TEXT NOT NULL,
		content_hash TEXT NOT NULL,
		size_bytes BIGINT NOT NULL,
		language TEXT,
		modified_at TIMESTAMPTZ NOT NULL,
		indexed_at TIMESTAMPTZ NOT NULL,
		is_deleted BOOLEAN NOT NULL DEFAULT FALSE,
		deleted_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (repository_id, relative_path)
	)`,
	fmt.Sprintf(`CREATE TABLE IF NOT EXISTS code_chunks (
		id UUID PRIMARY KEY,
		code_file_id UUID NOT NULL REFERENCES code_files(id) ON DELETE CASCADE,
		content TEXT NOT NULL,
		start_line INTEGER NOT NULL,
		end_line INTEGER NOT NULL,
		chunk_type TEXT NOT NULL,
		embedding vector(%d),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CHECK (start_line <= end_line)
	)`, TestEmbeddingDimensions),
}

// NewTestPool opens a pool against TEST_DATABASE_URL for integration testing.
//
// The database gets:
//   - The three target tables created if missing (vector size TestEmbeddingDimensions)
//   - All three tables truncated before the test and again on cleanup
//   - The pool closed with t.Cleanup()
//
// Tests are skipped when TEST_DATABASE_URL is unset. Tests using this helper
// share tables, so they must not call t.Parallel().
//
// Example:
//
//	func TestSomething(t *testing.T) {
//	    pool := storage.NewTestPool(t)
//	    // ... test code ...
//	}
func NewTestPool(t testing.TB) *pgxpool.Pool {
	t.Helper()

	url := os.Getenv(TestDatabaseURLEnv)
	if url == "" {
		t.Skipf("%s not set, skipping PostgreSQL integration test", TestDatabaseURLEnv)
	}

	ctx := context.Background()

	// Create the schema on a bootstrap pool; the vector type can only be
	// registered once the extension exists.
	bootstrap, err := pgxpool.New(ctx, url)
	require.NoError(t, err)
	for _, ddl := range testSchema {
		_, err := bootstrap.Exec(ctx, ddl)
		require.NoError(t, err)
	}
	bootstrap.Close()

	pool, err := Open(ctx, url)
	require.NoError(t, err)

	truncate := func() {
		_, err := pool.Exec(ctx, `TRUNCATE code_chunks, code_files, repositories`)
		require.NoError(t, err)
	}
	truncate()

	t.Cleanup(func() {
		truncate()
		pool.Close()
	})

	return pool
}
