package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost/fusion_test")
	t.Setenv("GEMINI_API_KEY", "test-key")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "data/industry_classifications.csv", cfg.TaxonomyCSV)
	assert.Equal(t, 12000, cfg.MaxContextChars)
	assert.Equal(t, 120*time.Second, cfg.ExtractTimeout)
	assert.Equal(t, 30*time.Second, cfg.ClassifyTimeout)
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("TAXONOMY_CSV", "custom/taxonomy.csv")
	t.Setenv("MAX_CONTEXT_CHARS", "8000")
	t.Setenv("LLM_TIMEOUT_SECONDS", "60")
	t.Setenv("EMBED_TIMEOUT_SECONDS", "10")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "custom/taxonomy.csv", cfg.TaxonomyCSV)
	assert.Equal(t, 8000, cfg.MaxContextChars)
	assert.Equal(t, 60*time.Second, cfg.ExtractTimeout)
	assert.Equal(t, 10*time.Second, cfg.ClassifyTimeout)
}

func TestTaxonomyCSVPathStandsAlone(t *testing.T) {
	// Resolution must not depend on the required config being present.
	t.Setenv("DATABASE_URL", "")
	t.Setenv("GEMINI_API_KEY", "")

	t.Setenv("TAXONOMY_CSV", "")
	assert.Equal(t, DefaultTaxonomyCSV, TaxonomyCSVPath())

	t.Setenv("TAXONOMY_CSV", "custom/taxonomy.csv")
	assert.Equal(t, "custom/taxonomy.csv", TaxonomyCSVPath())
}

func TestLoadMissingRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("GEMINI_API_KEY", "test-key")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("DATABASE_URL", "postgres://localhost/fusion_test")
	t.Setenv("GEMINI_API_KEY", "")
	_, err = Load()
	assert.Error(t, err)
}

func TestLoadRejectsBadValues(t *testing.T) {
	setRequiredEnv(t)

	t.Setenv("PORT", "not-a-number")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("PORT", "70000")
	_, err = Load()
	assert.Error(t, err)

	t.Setenv("PORT", "8080")
	t.Setenv("MAX_CONTEXT_CHARS", "10")
	_, err = Load()
	assert.Error(t, err)
}
