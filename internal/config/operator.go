// Package config - operator.go provides the single operator credential used
// to guard mutating API routes.
package config

import (
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

// OperatorConfig holds the bcrypt hash of the operator password. Uploads and
// profile generation are operator-only; reads are open.
type OperatorConfig struct {
	PasswordHash string
}

// NewOperatorConfig reads ADMIN_PASSWORD_HASH (a bcrypt hash) from the
// environment. For local development ADMIN_PASSWORD may be set instead; it
// is hashed at startup and never kept in plain text.
func NewOperatorConfig() (*OperatorConfig, error) {
	if hash := os.Getenv("ADMIN_PASSWORD_HASH"); hash != "" {
		if _, err := bcrypt.Cost([]byte(hash)); err != nil {
			return nil, fmt.Errorf("ADMIN_PASSWORD_HASH is not a valid bcrypt hash: %v", err)
		}
		return &OperatorConfig{PasswordHash: hash}, nil
	}

	if plain := os.Getenv("ADMIN_PASSWORD"); plain != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash ADMIN_PASSWORD: %w", err)
		}
		return &OperatorConfig{PasswordHash: string(hash)}, nil
	}

	return nil, fmt.Errorf("ADMIN_PASSWORD_HASH or ADMIN_PASSWORD is required but not set")
}

// VerifyPassword checks a login attempt against the stored hash.
func (c *OperatorConfig) VerifyPassword(pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(pw)) == nil
}
