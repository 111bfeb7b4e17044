package ingestion

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkShortTextIsOneChunk(t *testing.T) {
	text := "Acme builds industrial CNC routers for furniture makers."
	chunks := Chunk(text, DefaultChunkSize)
	assert.Equal(t, []string{text}, chunks)
}

func TestChunkEmptyText(t *testing.T) {
	assert.Nil(t, Chunk("", DefaultChunkSize))
	assert.Nil(t, Chunk("   \n  ", DefaultChunkSize))
}

func TestChunkSplitsAtParagraphs(t *testing.T) {
	para := strings.Repeat("Acme makes precision tools. ", 10) // ~280 chars
	text := para + "\n\n" + para + "\n\n" + para

	chunks := Chunk(text, 300)

	require.GreaterOrEqual(t, len(chunks), 3)
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), 300)
		assert.NotEmpty(t, strings.TrimSpace(c))
	}
}

func TestChunkSplitsLongParagraphAtSentences(t *testing.T) {
	sentence := "This sentence describes one product feature in reasonable detail. "
	text := strings.TrimSpace(strings.Repeat(sentence, 20)) // no paragraph breaks

	chunks := Chunk(text, 200)

	require.Greater(t, len(chunks), 1)
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), 200)
	}
	// Sentences survive intact when they fit.
	assert.True(t, strings.HasSuffix(chunks[0], "."))
}

func TestChunkHardCutsGiantSentence(t *testing.T) {
	text := strings.Repeat("x", 700) // one unbreakable run
	chunks := Chunk(text, 300)

	require.NotEmpty(t, chunks)
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), 300)
	}
	assert.Equal(t, 700, len(strings.Join(chunks, "")))
}

func TestChunkZeroSizeUsesDefault(t *testing.T) {
	text := strings.Repeat("Sentence here. ", 300)
	chunks := Chunk(text, 0)

	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), DefaultChunkSize)
	}
}
