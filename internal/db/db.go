// Package db provides PostgreSQL persistence for document fragments, company
// profiles, and industry mappings.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// EnsureSchema creates the storage tables if they do not exist. Writes are
// single-document upserts keyed by company identity, so partial corruption
// is structurally impossible.
func (db *DB) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS document_fragments (
			id UUID PRIMARY KEY,
			company_id TEXT NOT NULL,
			source TEXT NOT NULL,
			content TEXT NOT NULL,
			embedding REAL[],
			chunk_index INT NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_fragments_company_source
			ON document_fragments (company_id, source, created_at, chunk_index)`,
		`CREATE TABLE IF NOT EXISTS company_profiles (
			company_id TEXT PRIMARY KEY,
			fields JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS industry_mappings (
			company_id TEXT PRIMARY KEY,
			matched_level TEXT NOT NULL,
			sector TEXT,
			industry TEXT,
			sub_industry TEXT,
			sic_code TEXT,
			sic_description TEXT,
			confidence DOUBLE PRECISION NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}
