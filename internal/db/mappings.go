package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/b2bfusion/fusion-engine/internal/types"
)

// UpsertIndustryMapping replaces the live classification decision for a
// company identity.
func (db *DB) UpsertIndustryMapping(ctx context.Context, m *types.IndustryMapping) error {
	if err := m.Validate(); err != nil {
		return fmt.Errorf("invalid mapping: %w", err)
	}

	_, err := db.pool.Exec(ctx,
		`INSERT INTO industry_mappings
		     (company_id, matched_level, sector, industry, sub_industry, sic_code, sic_description, confidence, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (company_id) DO UPDATE SET
		     matched_level = $2, sector = $3, industry = $4, sub_industry = $5,
		     sic_code = $6, sic_description = $7, confidence = $8, created_at = $9`,
		m.CompanyID, string(m.MatchedLevel), m.Sector, m.Industry, m.SubIndustry,
		m.SICCode, m.SICDescription, m.Confidence, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert industry mapping: %w", err)
	}
	return nil
}

// GetIndustryMapping retrieves the live mapping for a company, or nil when
// absent.
func (db *DB) GetIndustryMapping(ctx context.Context, companyID string) (*types.IndustryMapping, error) {
	var m types.IndustryMapping
	var level string
	err := db.pool.QueryRow(ctx,
		`SELECT company_id, matched_level, sector, industry, sub_industry,
		        sic_code, sic_description, confidence, created_at
		 FROM industry_mappings WHERE company_id = $1`,
		companyID,
	).Scan(&m.CompanyID, &level, &m.Sector, &m.Industry, &m.SubIndustry,
		&m.SICCode, &m.SICDescription, &m.Confidence, &m.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get industry mapping: %w", err)
	}
	m.MatchedLevel = types.MatchedLevel(level)
	return &m, nil
}
