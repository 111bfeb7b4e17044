package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/b2bfusion/fusion-engine/internal/types"
)

// UpsertCompanyProfile replaces the live profile for a company identity.
// Regeneration is full replacement; the store never merges fields.
func (db *DB) UpsertCompanyProfile(ctx context.Context, profile *types.CompanyProfile) error {
	if err := profile.Validate(); err != nil {
		return fmt.Errorf("invalid profile: %w", err)
	}

	fieldsJSON, err := json.Marshal(profile.Fields)
	if err != nil {
		return fmt.Errorf("failed to marshal profile fields: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO company_profiles (company_id, fields, created_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (company_id) DO UPDATE SET fields = $2, created_at = $3`,
		profile.CompanyID, fieldsJSON, profile.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert company profile: %w", err)
	}
	return nil
}

// GetCompanyProfile retrieves the live profile for a company, or nil when
// absent.
func (db *DB) GetCompanyProfile(ctx context.Context, companyID string) (*types.CompanyProfile, error) {
	var p types.CompanyProfile
	var fieldsJSON []byte
	err := db.pool.QueryRow(ctx,
		`SELECT company_id, fields, created_at FROM company_profiles WHERE company_id = $1`,
		companyID,
	).Scan(&p.CompanyID, &fieldsJSON, &p.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get company profile: %w", err)
	}

	if err := json.Unmarshal(fieldsJSON, &p.Fields); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile fields: %w", err)
	}
	return &p, nil
}
