// Package types provides type definitions for structured data used throughout the fusion engine.
package types

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Source identifies which document pool a fragment belongs to.
type Source string

// Source pool constants, in canonical fusion order.
const (
	SourceWeb     Source = "web"
	SourceProduct Source = "product"
	SourceJob     Source = "job"
	SourceNews    Source = "news"
)

// SourceOrder is the canonical fusion order for building an extraction
// context: identity-defining content (web, product) comes first because
// downstream extraction may truncate on length.
var SourceOrder = []Source{SourceWeb, SourceProduct, SourceJob, SourceNews}

// ValidSource reports whether s is one of the four recognized pools.
func ValidSource(s Source) bool {
	switch s {
	case SourceWeb, SourceProduct, SourceJob, SourceNews:
		return true
	}
	return false
}

// Fragment is one retrievable unit of source text tied to a company and a
// source pool. Fragments are immutable once stored.
type Fragment struct {
	ID         uuid.UUID `json:"id"`
	CompanyID  string    `json:"company_id"`
	Source     Source    `json:"source"`
	Text       string    `json:"text"`
	Embedding  []float32 `json:"-"` // large; not serialized in API responses
	ChunkIndex int       `json:"chunk_index"`
	CreatedAt  time.Time `json:"created_at"`
}

// Validate checks the fragment's pool-membership invariants.
func (f *Fragment) Validate() error {
	if f.CompanyID == "" {
		return fmt.Errorf("fragment has no company identity")
	}
	if !ValidSource(f.Source) {
		return fmt.Errorf("unknown fragment source: %q", f.Source)
	}
	if f.Text == "" {
		return fmt.Errorf("fragment has no text")
	}
	return nil
}
