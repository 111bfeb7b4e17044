package taxonomy

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/b2bfusion/fusion-engine/internal/types"
)

// stubProvider returns canned vectors keyed by input text.
type stubProvider struct {
	vectors map[string][]float32
	err     error
}

func (p *stubProvider) Embed(_ context.Context, text string) ([]float32, error) {
	if p.err != nil {
		return nil, p.err
	}
	vec, ok := p.vectors[text]
	if !ok {
		return nil, fmt.Errorf("no stub vector for %q", text)
	}
	return vec, nil
}

// vec builds a 2-D vector whose cosine against [1,0] is approximately c.
func vec(c float64) []float32 {
	return []float32{float32(c), float32(math.Sqrt(1 - c*c))}
}

func testEntries() []Entry {
	return []Entry{
		{Sector: "Technology", Industry: "Software", SubIndustry: "Application Software", SICCode: "7372", SICDescription: "Prepackaged Software"},
		{Sector: "Technology", Industry: "Software", SubIndustry: "Systems Software", SICCode: "7372", SICDescription: "Prepackaged Software"},
		{Sector: "Finance", Industry: "Banking", SubIndustry: "Retail Banking", SICCode: "6021", SICDescription: "National Banks"},
	}
}

func flatVectors(sim float64) map[string][]float32 {
	vectors := make(map[string][]float32)
	for _, e := range testEntries() {
		vectors[e.Sector] = vec(sim)
		vectors[e.Industry] = vec(sim)
		vectors[e.SubIndustry] = vec(sim)
	}
	return vectors
}

func TestBuildIndexDedupesPerLevel(t *testing.T) {
	idx, err := BuildIndex(context.Background(), testEntries(), &stubProvider{vectors: flatVectors(0.5)})
	require.NoError(t, err)

	// Two Technology rows collapse to one sector candidate.
	sectors := idx.Candidates(types.LevelSector)
	require.Len(t, sectors, 2)
	assert.Equal(t, "Technology", sectors[0].Value)
	assert.Equal(t, "Finance", sectors[1].Value)

	industries := idx.Candidates(types.LevelIndustry)
	require.Len(t, industries, 2)
	assert.Equal(t, "Software", industries[0].Value)

	subs := idx.Candidates(types.LevelSubIndustry)
	assert.Len(t, subs, 3)
}

func TestBuildIndexPreservesFirstSeenOrder(t *testing.T) {
	entries := []Entry{
		{Sector: "Finance", Industry: "Banking", SubIndustry: "Retail Banking"},
		{Sector: "Technology", Industry: "Software", SubIndustry: "Application Software"},
		{Sector: "Finance", Industry: "Insurance", SubIndustry: "Life Insurance"},
	}
	vectors := map[string][]float32{
		"Finance": vec(0.1), "Technology": vec(0.1),
		"Banking": vec(0.1), "Software": vec(0.1), "Insurance": vec(0.1),
		"Retail Banking": vec(0.1), "Application Software": vec(0.1), "Life Insurance": vec(0.1),
	}

	idx, err := BuildIndex(context.Background(), entries, &stubProvider{vectors: vectors})
	require.NoError(t, err)

	sectors := idx.Candidates(types.LevelSector)
	require.Len(t, sectors, 2)
	assert.Equal(t, "Finance", sectors[0].Value)
	assert.Equal(t, "Technology", sectors[1].Value)
}

func TestBuildIndexEmptyEntries(t *testing.T) {
	_, err := BuildIndex(context.Background(), nil, &stubProvider{})
	assert.Error(t, err)
}

func TestBuildIndexEmbedFailure(t *testing.T) {
	provider := &stubProvider{err: fmt.Errorf("quota exhausted")}
	_, err := BuildIndex(context.Background(), testEntries(), provider)
	assert.Error(t, err)
}

func TestResolveEntryFirstRowWins(t *testing.T) {
	idx, err := BuildIndex(context.Background(), testEntries(), &stubProvider{vectors: flatVectors(0.5)})
	require.NoError(t, err)

	// "Technology" appears on two rows; resolution picks the first.
	entry, ok := idx.ResolveEntry(types.LevelSector, "Technology")
	require.True(t, ok)
	assert.Equal(t, "Application Software", entry.SubIndustry)

	_, ok = idx.ResolveEntry(types.LevelSector, "Agriculture")
	assert.False(t, ok)
}

func TestIndexLen(t *testing.T) {
	idx, err := BuildIndex(context.Background(), testEntries(), &stubProvider{vectors: flatVectors(0.5)})
	require.NoError(t, err)
	assert.Equal(t, 3, idx.Len())
}
