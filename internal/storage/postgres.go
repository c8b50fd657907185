package storage

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgxvec "github.com/pgvector/pgvector-go/pgx"
)

// Pool is the subset of *pgxpool.Pool used by the writers.
type Pool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Open creates a single-connection pool for connString and verifies it with a ping.
// The vector type is registered on every new connection, so the target database
// must already have the pgvector extension installed (migration 001 does this).
//
// The caller owns the pool and must Close it; defer the Close right after a
// successful Open so the connection is released on every exit path.
func Open(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid connection string: %w", ErrConnect, err)
	}

	// Loading is strictly sequential, one connection is all we ever use
	cfg.MaxConns = 1
	cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		if err := pgxvec.RegisterTypes(ctx, conn); err != nil {
			return fmt.Errorf("failed to register pgvector types: %w", err)
		}
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnect, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: %w", ErrConnect, err)
	}

	return pool, nil
}

// TableCounts holds the number of rows in each target table.
type TableCounts struct {
	Repositories int64
	CodeFiles    int64
	CodeChunks   int64
}

// CountRows returns the current row count of the repositories, code_files
// and code_chunks tables.
func CountRows(ctx context.Context, pool Pool) (TableCounts, error) {
	var counts TableCounts

	targets := []struct {
		table string
		dest  *int64
	}{
		{TableRepositories, &counts.Repositories},
		{TableCodeFiles, &counts.CodeFiles},
		{TableCodeChunks, &counts.CodeChunks},
	}

	for _, target := range targets {
		query, args, err := sq.Select("count(*)").From(target.table).PlaceholderFormat(sq.Dollar).ToSql()
		if err != nil {
			return TableCounts{}, fmt.Errorf("failed to build count query for %s: %w", target.table, err)
		}
		if err := pool.QueryRow(ctx, query, args...).Scan(target.dest); err != nil {
			return TableCounts{}, fmt.Errorf("failed to count %s: %w", target.table, err)
		}
	}

	return counts, nil
}
