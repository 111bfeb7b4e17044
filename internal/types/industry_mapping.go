package types

import (
	"fmt"
	"time"
)

// MatchedLevel is the taxonomy level at which classification was accepted.
type MatchedLevel string

// Matched level constants. LevelNone is a valid terminal outcome, not an
// error: no taxonomy level cleared its threshold.
const (
	LevelSector      MatchedLevel = "sector"
	LevelIndustry    MatchedLevel = "industry"
	LevelSubIndustry MatchedLevel = "sub_industry"
	LevelNone        MatchedLevel = "none"
)

// ValidMatchedLevel reports whether l is a recognized matched level.
func ValidMatchedLevel(l MatchedLevel) bool {
	switch l {
	case LevelSector, LevelIndustry, LevelSubIndustry, LevelNone:
		return true
	}
	return false
}

// IndustryMapping is the standardized classification decision for a company.
// At most one live mapping exists per company identity. When MatchedLevel is
// LevelNone all classification fields are nil and Confidence is 0.
type IndustryMapping struct {
	CompanyID      string       `json:"company_id"`
	MatchedLevel   MatchedLevel `json:"matched_level"`
	Sector         *string      `json:"sector"`
	Industry       *string      `json:"industry"`
	SubIndustry    *string      `json:"sub_industry"`
	SICCode        *string      `json:"sic_code"`
	SICDescription *string      `json:"sic_description"`
	Confidence     float64      `json:"confidence"`
	CreatedAt      time.Time    `json:"created_at"`
}

// NewUnmatchedMapping is the clean "no level cleared its threshold" outcome.
// The best-seen similarity is deliberately not carried over.
func NewUnmatchedMapping(companyID string) *IndustryMapping {
	return &IndustryMapping{
		CompanyID:    companyID,
		MatchedLevel: LevelNone,
		Confidence:   0,
		CreatedAt:    time.Now().UTC(),
	}
}

// Validate checks mapping invariants.
func (m *IndustryMapping) Validate() error {
	if m.CompanyID == "" {
		return fmt.Errorf("mapping has no company identity")
	}
	if !ValidMatchedLevel(m.MatchedLevel) {
		return fmt.Errorf("unknown matched level: %q", m.MatchedLevel)
	}
	if m.Confidence < -1 || m.Confidence > 1 {
		return fmt.Errorf("confidence %.3f outside [-1,1]", m.Confidence)
	}
	if m.MatchedLevel == LevelNone {
		if m.Sector != nil || m.Industry != nil || m.SubIndustry != nil ||
			m.SICCode != nil || m.SICDescription != nil {
			return fmt.Errorf("unmatched mapping must have null classification fields")
		}
		if m.Confidence != 0 {
			return fmt.Errorf("unmatched mapping must have zero confidence")
		}
	}
	return nil
}
