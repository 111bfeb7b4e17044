package fusion

import (
	"context"
	"log"
	"time"

	"github.com/b2bfusion/fusion-engine/internal/types"
)

// Default stage timeouts for the two external-capability calls.
const (
	DefaultExtractTimeout  = 120 * time.Second
	DefaultClassifyTimeout = 30 * time.Second
)

// ProfileStore persists company profiles, upsert-by-identity.
type ProfileStore interface {
	UpsertCompanyProfile(ctx context.Context, profile *types.CompanyProfile) error
}

// MappingStore persists classification decisions, upsert-by-identity.
type MappingStore interface {
	UpsertIndustryMapping(ctx context.Context, mapping *types.IndustryMapping) error
}

// Classifier maps a profile to its industry mapping.
type Classifier interface {
	Classify(ctx context.Context, profile *types.CompanyProfile) (*types.IndustryMapping, error)
}

// Generator drives one "generate profile" request end to end:
// aggregate -> extract -> profile write -> classify -> mapping write.
// Two concurrent runs for the same company are not ordered here; the
// upsert-by-identity stores give last-writer-wins.
type Generator struct {
	aggregator      *Aggregator
	extractor       *Extractor
	classifier      Classifier
	profiles        ProfileStore
	mappings        MappingStore
	extractTimeout  time.Duration
	classifyTimeout time.Duration
}

// GeneratorOptions tunes the pipeline's stage timeouts.
type GeneratorOptions struct {
	ExtractTimeout  time.Duration
	ClassifyTimeout time.Duration
}

// NewGenerator wires the pipeline stages together.
func NewGenerator(aggregator *Aggregator, extractor *Extractor, classifier Classifier,
	profiles ProfileStore, mappings MappingStore, opts GeneratorOptions) *Generator {
	if opts.ExtractTimeout <= 0 {
		opts.ExtractTimeout = DefaultExtractTimeout
	}
	if opts.ClassifyTimeout <= 0 {
		opts.ClassifyTimeout = DefaultClassifyTimeout
	}
	return &Generator{
		aggregator:      aggregator,
		extractor:       extractor,
		classifier:      classifier,
		profiles:        profiles,
		mappings:        mappings,
		extractTimeout:  opts.ExtractTimeout,
		classifyTimeout: opts.ClassifyTimeout,
	}
}

// Run executes the pipeline for one company. The profile is durably written
// before classification reads it, so classification never runs against an
// uncommitted profile. A failed stage aborts only its own write: extraction
// failure leaves any previously committed profile untouched, and
// classification failure leaves the fresh profile visible without a mapping
// (a valid, retriable state).
func (g *Generator) Run(ctx context.Context, companyID string) (*types.CompanyProfile, *types.IndustryMapping, error) {
	fragments, err := g.aggregator.Aggregate(ctx, companyID)
	if err != nil {
		return nil, nil, err
	}
	log.Printf("fusion: aggregated %d fragments for company %s", len(fragments), companyID)

	extractCtx, cancelExtract := context.WithTimeout(ctx, g.extractTimeout)
	defer cancelExtract()
	profile, err := g.extractor.Extract(extractCtx, companyID, fragments)
	if err != nil {
		return nil, nil, err
	}

	if err := g.profiles.UpsertCompanyProfile(ctx, profile); err != nil {
		return nil, nil, err
	}

	classifyCtx, cancelClassify := context.WithTimeout(ctx, g.classifyTimeout)
	defer cancelClassify()
	mapping, err := g.classifier.Classify(classifyCtx, profile)
	if err != nil {
		return profile, nil, err
	}

	if err := g.mappings.UpsertIndustryMapping(ctx, mapping); err != nil {
		return profile, nil, err
	}

	log.Printf("fusion: company %s classified at level %s (confidence %.3f)",
		companyID, mapping.MatchedLevel, mapping.Confidence)
	return profile, mapping, nil
}
