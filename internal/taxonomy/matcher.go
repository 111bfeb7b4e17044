package taxonomy

import (
	"context"
	"strings"
	"time"

	"github.com/b2bfusion/fusion-engine/internal/embedding"
	"github.com/b2bfusion/fusion-engine/internal/types"
)

// matchRule is one step of the hierarchical fallback policy: a level and its
// inclusive acceptance threshold. Rules are evaluated in order with explicit
// first-success termination.
type matchRule struct {
	Level     types.MatchedLevel
	Threshold float64
}

// matchRules is the fixed priority order. Sector is the coarsest, most
// reliably inferable signal, so it is tried first; sub_industry carries the
// highest bar because an incorrect specific label is more misleading than an
// incorrect broad one; industry is the residual middle ground tried last.
var matchRules = []matchRule{
	{Level: types.LevelSector, Threshold: 0.65},
	{Level: types.LevelSubIndustry, Threshold: 0.70},
	{Level: types.LevelIndustry, Threshold: 0.65},
}

// Matcher maps a company profile to zero or one classification decision via
// threshold-gated nearest-neighbor search against the index.
type Matcher struct {
	index    *Index
	provider embedding.Provider
}

// NewMatcher creates a Matcher over a fully built index. The provider must be
// the same one that built the index so vectors stay comparable.
func NewMatcher(index *Index, provider embedding.Provider) *Matcher {
	return &Matcher{index: index, provider: provider}
}

// Classify produces the company's industry mapping. A profile with no
// classifiable text, or one whose best candidate at every level falls below
// threshold, yields the valid matched_level "none" outcome. Embedding
// failures return a *ClassificationError instead.
func (m *Matcher) Classify(ctx context.Context, profile *types.CompanyProfile) (*types.IndustryMapping, error) {
	text := CompanyText(profile)
	if text == "" {
		return types.NewUnmatchedMapping(profile.CompanyID), nil
	}

	companyVec, err := m.provider.Embed(ctx, text)
	if err != nil {
		return nil, &ClassificationError{Message: "failed to embed company text", Cause: err}
	}

	for _, rule := range matchRules {
		best, ok := bestMatch(companyVec, m.index.Candidates(rule.Level))
		if !ok || best.similarity < rule.Threshold {
			continue
		}
		return m.resolve(profile.CompanyID, rule.Level, best)
	}

	// No level cleared its threshold: clean unmatched outcome, best-seen
	// similarity not leaked.
	return types.NewUnmatchedMapping(profile.CompanyID), nil
}

// CompanyText builds the single classification text from the profile:
// business_summary, product_lines, target_industries, in that order.
// Missing or null fields contribute nothing.
func CompanyText(profile *types.CompanyProfile) string {
	var parts []string
	for _, name := range []types.FieldName{
		types.FieldBusinessSummary,
		types.FieldProductLines,
		types.FieldTargetIndustries,
	} {
		if t := profile.Field(name).Value.Text(); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.TrimSpace(strings.Join(parts, ". "))
}

type scoredCandidate struct {
	value      string
	similarity float64
}

// bestMatch scores every candidate before reducing to the max, so the result
// is deterministic even if scoring is ever parallelized. Ties go to the
// first candidate in the index's stable iteration order.
func bestMatch(companyVec []float32, candidates []Candidate) (scoredCandidate, bool) {
	if len(candidates) == 0 {
		return scoredCandidate{}, false
	}

	scores := make([]float64, len(candidates))
	for i, c := range candidates {
		scores[i] = embedding.Cosine(companyVec, c.Embedding)
	}

	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}
	return scoredCandidate{value: candidates[best].Value, similarity: scores[best]}, true
}

// resolve maps the accepted level value back to a concrete reference row and
// fills the full mapping record.
func (m *Matcher) resolve(companyID string, level types.MatchedLevel, best scoredCandidate) (*types.IndustryMapping, error) {
	entry, ok := m.index.ResolveEntry(level, best.value)
	if !ok {
		return nil, &ClassificationError{Message: "matched value missing from reference table: " + best.value}
	}

	return &types.IndustryMapping{
		CompanyID:      companyID,
		MatchedLevel:   level,
		Sector:         &entry.Sector,
		Industry:       &entry.Industry,
		SubIndustry:    &entry.SubIndustry,
		SICCode:        &entry.SICCode,
		SICDescription: &entry.SICDescription,
		Confidence:     best.similarity,
		CreatedAt:      time.Now().UTC(),
	}, nil
}
