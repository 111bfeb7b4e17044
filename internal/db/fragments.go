package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/b2bfusion/fusion-engine/internal/types"
)

// InsertFragment stores one immutable fragment in its source pool. The
// fragment ID is assigned here if unset.
func (db *DB) InsertFragment(ctx context.Context, f *types.Fragment) error {
	if err := f.Validate(); err != nil {
		return fmt.Errorf("invalid fragment: %w", err)
	}
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}

	err := db.pool.QueryRow(ctx,
		`INSERT INTO document_fragments (id, company_id, source, content, embedding, chunk_index)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at`,
		f.ID, f.CompanyID, string(f.Source), f.Text, f.Embedding, f.ChunkIndex,
	).Scan(&f.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert fragment: %w", err)
	}
	return nil
}

// ListFragments returns every fragment for a company in one source pool, in
// upload order. An empty pool is a valid empty result, not an error.
func (db *DB) ListFragments(ctx context.Context, companyID string, source types.Source) ([]types.Fragment, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, company_id, source, content, embedding, chunk_index, created_at
		 FROM document_fragments
		 WHERE company_id = $1 AND source = $2
		 ORDER BY created_at, chunk_index`,
		companyID, string(source),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list fragments: %w", err)
	}
	defer rows.Close()

	var fragments []types.Fragment
	for rows.Next() {
		var f types.Fragment
		var src string
		if err := rows.Scan(&f.ID, &f.CompanyID, &src, &f.Text, &f.Embedding, &f.ChunkIndex, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan fragment: %w", err)
		}
		f.Source = types.Source(src)
		fragments = append(fragments, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read fragments: %w", err)
	}
	return fragments, nil
}

// CountFragments returns the number of fragments per source for a company.
func (db *DB) CountFragments(ctx context.Context, companyID string) (map[types.Source]int, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT source, COUNT(*) FROM document_fragments
		 WHERE company_id = $1 GROUP BY source`,
		companyID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count fragments: %w", err)
	}
	defer rows.Close()

	counts := make(map[types.Source]int, len(types.SourceOrder))
	for rows.Next() {
		var src string
		var n int
		if err := rows.Scan(&src, &n); err != nil {
			return nil, fmt.Errorf("failed to scan fragment count: %w", err)
		}
		counts[types.Source(src)] = n
	}
	return counts, rows.Err()
}
