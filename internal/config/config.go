// Package config provides configuration loading and validation for the
// fusion engine. Values come from environment variables; main loads .env via
// godotenv before any config is read.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// DefaultTaxonomyCSV is the reference-table path used when TAXONOMY_CSV is
// unset.
const DefaultTaxonomyCSV = "data/industry_classifications.csv"

// Config holds the runtime configuration for the engine.
type Config struct {
	DatabaseURL string
	APIKey      string // Gemini API key, shared by reasoning and embedding
	TaxonomyCSV string
	Port        int

	MaxContextChars int
	ExtractTimeout  time.Duration
	ClassifyTimeout time.Duration
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		APIKey:          os.Getenv("GEMINI_API_KEY"),
		TaxonomyCSV:     TaxonomyCSVPath(),
		Port:            8080,
		MaxContextChars: 12000,
		ExtractTimeout:  120 * time.Second,
		ClassifyTimeout: 30 * time.Second,
	}

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %v", err)
		}
		cfg.Port = port
	}
	if v := os.Getenv("MAX_CONTEXT_CHARS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid MAX_CONTEXT_CHARS: %v", err)
		}
		cfg.MaxContextChars = n
	}
	if v := os.Getenv("LLM_TIMEOUT_SECONDS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid LLM_TIMEOUT_SECONDS: %v", err)
		}
		cfg.ExtractTimeout = time.Duration(n) * time.Second
	}
	if v := os.Getenv("EMBED_TIMEOUT_SECONDS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid EMBED_TIMEOUT_SECONDS: %v", err)
		}
		cfg.ClassifyTimeout = time.Duration(n) * time.Second
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that required values are present and ranges are sane.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required but not set")
	}
	if c.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required but not set")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port out of range: %d", c.Port)
	}
	if c.MaxContextChars < 1000 {
		return fmt.Errorf("MAX_CONTEXT_CHARS too small: %d (minimum 1000)", c.MaxContextChars)
	}
	if c.ExtractTimeout < time.Second || c.ClassifyTimeout < time.Second {
		return fmt.Errorf("stage timeouts must be at least one second")
	}
	return nil
}

// TaxonomyCSVPath resolves the taxonomy CSV path from the environment alone,
// for tools that need the reference table but none of the required config
// (database, API key).
func TaxonomyCSVPath() string {
	return envOrDefault("TAXONOMY_CSV", DefaultTaxonomyCSV)
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
