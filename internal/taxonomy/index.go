package taxonomy

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/b2bfusion/fusion-engine/internal/embedding"
	"github.com/b2bfusion/fusion-engine/internal/types"
)

// maxEmbedConcurrency bounds the embedding fan-out during index construction.
const maxEmbedConcurrency = 8

// Candidate is one distinct level value with its precomputed embedding.
type Candidate struct {
	Value     string
	Embedding []float32
}

// Index is the offline-built, read-only classification index. Each distinct
// value at each of the three levels carries exactly one embedding, shared
// across all rows with that value. Safe for unlimited concurrent readers
// after construction.
type Index struct {
	entries    []Entry
	candidates map[types.MatchedLevel][]Candidate
}

// BuildIndex embeds every distinct level value and assembles the index.
// Candidate order per level is first-seen order over the reference rows, and
// is the stable iteration order used for deterministic tie-breaking.
func BuildIndex(ctx context.Context, entries []Entry, provider embedding.Provider) (*Index, error) {
	if len(entries) == 0 {
		return nil, &LoadError{Message: "cannot build index from empty reference table"}
	}

	idx := &Index{
		entries:    entries,
		candidates: make(map[types.MatchedLevel][]Candidate, 3),
	}

	for _, level := range []types.MatchedLevel{types.LevelSector, types.LevelIndustry, types.LevelSubIndustry} {
		values := distinctValues(entries, level)
		log.Printf("taxonomy: embedding %d distinct %s values", len(values), level)

		cands, err := embedValues(ctx, values, provider)
		if err != nil {
			return nil, &LoadError{Message: "failed to embed " + string(level) + " values", Cause: err}
		}
		idx.candidates[level] = cands
	}

	return idx, nil
}

// distinctValues returns the level's distinct values in first-seen row order.
func distinctValues(entries []Entry, level types.MatchedLevel) []string {
	seen := make(map[string]bool, len(entries))
	var values []string
	for _, e := range entries {
		v := levelValue(e, level)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	return values
}

func levelValue(e Entry, level types.MatchedLevel) string {
	switch level {
	case types.LevelSector:
		return e.Sector
	case types.LevelIndustry:
		return e.Industry
	case types.LevelSubIndustry:
		return e.SubIndustry
	}
	return ""
}

// embedValues embeds values concurrently while preserving their order.
func embedValues(ctx context.Context, values []string, provider embedding.Provider) ([]Candidate, error) {
	cands := make([]Candidate, len(values))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxEmbedConcurrency)
	for i, value := range values {
		g.Go(func() error {
			vec, err := provider.Embed(gctx, value)
			if err != nil {
				return err
			}
			cands[i] = Candidate{Value: value, Embedding: vec}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return cands, nil
}

// Candidates returns the level's candidates in stable iteration order.
// The returned slice is shared and must not be mutated.
func (idx *Index) Candidates(level types.MatchedLevel) []Candidate {
	return idx.candidates[level]
}

// ResolveEntry returns the first reference row (in load order) whose value at
// the given level matches, making level-value resolution deterministic when
// multiple rows share the value.
func (idx *Index) ResolveEntry(level types.MatchedLevel, value string) (Entry, bool) {
	for _, e := range idx.entries {
		if levelValue(e, level) == value {
			return e, true
		}
	}
	return Entry{}, false
}

// Len returns the number of reference rows behind the index.
func (idx *Index) Len() int {
	return len(idx.entries)
}
